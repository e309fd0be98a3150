package telnet

import "sync"

// inlineBufferThreshold is the cutoff between "small buffers copied
// inline" and "larger ones pooled", per spec.md §4.F.
const inlineBufferThreshold = 512

var flushPool = sync.Pool{
	New: func() any { return make([]byte, 0, DefaultMaxBufferSize/64) },
}

// appendUserByte appends a non-control byte to the per-connection
// user-data buffer (spec.md §4.F), enforcing MaxBufferSize (invariant
// 1: further bytes are discarded, logged, until a newline flushes) and
// firing the optional per-byte callback before the line flush happens.
func appendUserByte(ctx *actionContext) {
	e := ctx.e
	if len(e.userBuf) >= e.maxBufferSize {
		e.logWarn("user-data buffer full, discarding byte", "max", e.maxBufferSize)
		return
	}
	e.userBuf = append(e.userBuf, ctx.b)
	if e.cb.perByte != nil {
		e.cb.perByte(ctx.b, e.currentEncoding)
	}
}

// flushLine snapshots the user-data buffer and delivers it to Submit,
// then resets the buffer. Small buffers are copied inline; larger ones
// borrow from a pool to avoid a full-size allocation on every line.
func flushLine(ctx *actionContext) {
	e := ctx.e
	n := len(e.userBuf)
	var out []byte
	if n <= inlineBufferThreshold {
		out = make([]byte, n)
		copy(out, e.userBuf)
	} else {
		pooled := flushPool.Get().([]byte)[:0]
		pooled = append(pooled, e.userBuf...)
		out = pooled
		defer func() { flushPool.Put(pooled[:0]) }() //nolint:staticcheck // snapshot already delivered synchronously below
	}
	e.userBuf = e.userBuf[:0]
	if e.cb.submit != nil {
		// The submit callback runs synchronously and to completion
		// before the pooled buffer above is returned, so it is safe
		// for it to read out directly without copying again.
		e.cb.submit(out, e.currentEncoding, e)
	}
	e.machine.ForceState(e, StateAccepting)
}

// TelnetSafe doubles any literal 0xFF byte in data so that arbitrary
// caller-supplied payloads can be written as telnet subnegotiation or
// user-data content without accidentally introducing IAC framing
// (spec.md §4.F, §8 "IAC transparency").
func TelnetSafe(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		out = append(out, b)
		if b == byte(TrigIAC) {
			out = append(out, byte(TrigIAC))
		}
	}
	return out
}

// TelnetUnsafe collapses IAC-doubled bytes back to their literal form.
// It is the inverse of TelnetSafe and of the escaping option handlers
// apply to subnegotiation bodies (invariant 3, spec.md §3).
func TelnetUnsafe(data []byte) []byte {
	out := make([]byte, 0, len(data))
	iac := false
	for _, b := range data {
		if iac {
			out = append(out, b)
			iac = false
			continue
		}
		if b == byte(TrigIAC) {
			iac = true
			continue
		}
		out = append(out, b)
	}
	return out
}
