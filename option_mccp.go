package telnet

import (
	"compress/zlib"
	"context"
	"io"
)

// mccpHandler implements RFC 1950-based stream compression for both
// MCCP2 (server-compresses-outbound) and MCCP3 (client-compresses-
// outbound) from a single shape (spec.md §4.D): the offererRole sends
// WILL unsolicited and, once the peer answers DO, sends the empty
// marker subnegotiation and starts compressing its own outbound
// stream; the other role accepts the WILL, and on seeing the marker's
// IAC SE starts splicing a decompressor in front of its ingress queue.
type mccpHandler struct {
	opt         byte
	optName     string
	offererRole Role
}

var mccp2Handler = mccpHandler{opt: OptMCCP2, optName: "MCCP2", offererRole: Server}
var mccp3Handler = mccpHandler{opt: OptMCCP3, optName: "MCCP3", offererRole: Client}

func (h mccpHandler) name() string { return h.optName }
func (h mccpHandler) option() byte { return h.opt }

func (h mccpHandler) configure(e *Engine, m *stateMachine) {
	will := stateWill(h.optName)
	wont := stateWont(h.optName)
	do := stateDo(h.optName)
	dont := stateDont(h.optName)

	m.Permit(StateWilling, optTrigger(h.opt), will)
	m.OnEntry(will, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(h.opt)
		if !entry.RemoteState {
			entry.RemoteState = true
			e.options.set(h.opt, entry)
			e.sendDo(h.opt)
		}
		e.machine.ForceState(e, StateAccepting)
	})
	m.Permit(StateRefusing, optTrigger(h.opt), wont)
	m.OnEntry(wont, func(ctx *actionContext) {
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})

	m.Permit(StateDo, optTrigger(h.opt), do)
	m.OnEntry(do, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(h.opt)
		if !entry.LocalState && e.role == h.offererRole {
			entry.LocalState = true
			e.options.set(h.opt, entry)
			e.sendSubnegotiation(h.opt, nil)
			e.startCompressingOut(h.opt)
		}
		e.machine.ForceState(e, StateAccepting)
	})
	m.Permit(StateDont, optTrigger(h.opt), dont)
	m.OnEntry(dont, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(h.opt)
		entry.LocalState = false
		e.options.set(h.opt, entry)
		e.machine.ForceState(e, StateAccepting)
	})

	// The marker subnegotiation body is always empty; seeing its IAC
	// SE is the signal itself, on the accepting side only.
	registerSubnegotiationBody(m, h.opt, h.optName, 0, func(ctx *actionContext, _ []byte) {
		e := ctx.e
		if e.role != h.offererRole {
			e.startDecompressingIn(h.opt)
		}
	})
}

func (h mccpHandler) onEnabled(e *Engine) {
	if e.role == h.offererRole {
		offerUnsolicited(e, byte(TrigWILL), h.opt)
	}
}

func (h mccpHandler) onDisabled(e *Engine) {}

// negotiateWriter adapts the negotiate callback to io.Writer so a
// zlib.Writer can target it directly.
type negotiateWriter struct{ e *Engine }

func (w negotiateWriter) Write(p []byte) (int, error) {
	if w.e.cb.negotiate != nil {
		w.e.cb.negotiate(p)
	}
	return len(p), nil
}

func (e *Engine) startCompressingOut(opt byte) {
	w := zlib.NewWriter(negotiateWriter{e})
	switch opt {
	case OptMCCP2:
		e.mccp2Out = w
	case OptMCCP3:
		e.mccp3Out = w
	}
	if e.cb.onCompress != nil {
		e.cb.onCompress(opt, true)
	}
}

func (e *Engine) startDecompressingIn(opt byte) {
	d := newInboundDecompressor(e)
	switch opt {
	case OptMCCP2:
		e.mccp2In = d
	case OptMCCP3:
		e.mccp3In = d
	}
	if e.cb.onCompress != nil {
		e.cb.onCompress(opt, true)
	}
}

// inboundDecompressor splices a zlib reader between Feed's raw input
// and the ingress queue, running the decompression (and the re-feed of
// decompressed bytes) on its own goroutine so Feed's caller is never
// blocked on decompression work, matching spec.md §4.A's "single
// consumer" ingress shape: decompressed bytes still arrive at the one
// consumer goroutine through the same ingress channel as everything
// else.
type inboundDecompressor struct {
	e  *Engine
	pw *io.PipeWriter
}

func newInboundDecompressor(e *Engine) *inboundDecompressor {
	pr, pw := io.Pipe()
	d := &inboundDecompressor{e: e, pw: pw}
	go d.pump(pr)
	return d
}

func (d *inboundDecompressor) pump(pr *io.PipeReader) {
	zr, err := zlib.NewReader(pr)
	if err != nil {
		d.reportErr(err)
		return
	}
	defer zr.Close()
	buf := make([]byte, 4096)
	for {
		n, err := zr.Read(buf)
		if n > 0 {
			if ferr := d.e.feedRaw(context.Background(), buf[:n]); ferr != nil {
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				d.reportErr(err)
			}
			return
		}
	}
}

func (d *inboundDecompressor) reportErr(err error) {
	select {
	case d.e.decompErrCh <- err:
	default:
	}
}

func (d *inboundDecompressor) write(ctx context.Context, data []byte) error {
	errc := make(chan error, 1)
	go func() {
		_, err := d.pw.Write(data)
		errc <- err
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-d.e.doneCh:
		return errClosed
	}
}

func (d *inboundDecompressor) close() {
	d.pw.Close()
}
