package telnet

import (
	"context"
	"errors"
)

var errClosed = errors.New("telnet: engine closed")

// Feed ingests data from the transport, blocking (respecting ctx) when
// the ingress queue is full — the back-pressure mechanism of spec.md
// §4.A. It must only be called by the transport's reader goroutine,
// never concurrently with itself.
//
// When an MCCP stream has started, raw transport bytes are first
// unzipped and only the plaintext reaches the queue below — the
// negotiation engine never sees compressed bytes as byte-at-a-time
// triggers (spec.md §4's MCCP splice).
func (e *Engine) Feed(ctx context.Context, data []byte) error {
	if e.mccp2In != nil {
		return e.mccp2In.write(ctx, data)
	}
	if e.mccp3In != nil {
		return e.mccp3In.write(ctx, data)
	}
	return e.feedRaw(ctx, data)
}

// feedRaw pushes already-decompressed bytes onto the bounded ingress
// queue one at a time. A full queue blocks the caller rather than
// dropping bytes: telnet negotiation state depends on seeing every
// byte in order, so silently discarding under pressure would corrupt
// the state machine (spec.md §5's back-pressure invariant).
func (e *Engine) feedRaw(ctx context.Context, data []byte) error {
	for _, b := range data {
		select {
		case e.ingress <- b:
		case <-ctx.Done():
			return ctx.Err()
		case <-e.doneCh:
			return errClosed
		}
	}
	return nil
}
