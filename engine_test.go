package telnet

import (
	"context"
	"testing"
	"time"
)

// harness wires an Engine with channel-backed callbacks so tests can
// synchronise on a specific event rather than sleeping.
type harness struct {
	e        *Engine
	cancel   context.CancelFunc
	done     chan struct{}
	sent     chan []byte
	submitted chan []byte
}

func newHarness(t *testing.T, configure func(b *Builder)) *harness {
	t.Helper()
	h := &harness{
		done:      make(chan struct{}),
		sent:      make(chan []byte, 64),
		submitted: make(chan []byte, 64),
	}
	b := NewBuilder().WithRole(Server).
		OnSubmit(func(data []byte, encoding string, e *Engine) {
			cp := append([]byte(nil), data...)
			h.submitted <- cp
		}).
		OnNegotiate(func(data []byte) {
			cp := append([]byte(nil), data...)
			h.sent <- cp
		})
	if configure != nil {
		configure(b)
	}
	e, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	h.e = e

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		e.Run(ctx)
		close(h.done)
	}()
	return h
}

func (h *harness) feed(t *testing.T, data []byte) {
	t.Helper()
	if err := h.e.Feed(context.Background(), data); err != nil {
		t.Fatalf("Feed: %v", err)
	}
}

// expectSentContains drains sent messages until it finds one equal to
// want, ignoring others — useful when an engine emits several
// unsolicited advertisements at startup in handler-registration order.
func (h *harness) expectSentContains(t *testing.T, want []byte) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case got := <-h.sent:
			if string(got) == string(want) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for outbound bytes %v", want)
		}
	}
}

func (h *harness) expectSubmitted(t *testing.T, want []byte) {
	t.Helper()
	select {
	case got := <-h.submitted:
		if string(got) != string(want) {
			t.Fatalf("unexpected submitted line: want %v got %v", want, got)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for submitted line %v", want)
	}
}

func (h *harness) stop() {
	h.cancel()
	<-h.done
}

// Scenario 1 (spec §8): unknown DO is refused with WONT and the
// machine returns to Accepting.
func TestUnknownDOIsRefused(t *testing.T) {
	h := newHarness(t, nil)
	defer h.stop()

	h.feed(t, []byte{byte(TrigIAC), byte(TrigDO), 0x63})
	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigWONT), 0x63})

	// The machine must have returned to Accepting, confirmed indirectly:
	// a plain line fed right after is still framed normally.
	h.feed(t, []byte("still alive\n"))
	h.expectSubmitted(t, []byte("still alive"))
}

// Scenario 1's mirror: an unrecognised WILL is refused with DONT.
func TestUnknownWILLIsRefused(t *testing.T) {
	h := newHarness(t, nil)
	defer h.stop()

	h.feed(t, []byte{byte(TrigIAC), byte(TrigWILL), 0x63})
	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigDONT), 0x63})
}

// Scenario 2 (spec §8): an IAC-doubled literal 0xFF inside plain user
// data round-trips to its literal form at Submit.
func TestEscapedLiteralInUserData(t *testing.T) {
	h := newHarness(t, nil)
	defer h.stop()

	h.feed(t, []byte{0x48, byte(TrigIAC), byte(TrigIAC), 0x49, 0x0A})
	h.expectSubmitted(t, []byte{0x48, 0xFF, 0x49})
}

// Scenario 6 (spec §8): a subnegotiation for an option nobody claims
// is drained without desyncing framing, and normal input after it is
// still processed correctly.
func TestUnknownSubnegotiationIsDrained(t *testing.T) {
	h := newHarness(t, nil)
	defer h.stop()

	h.feed(t, []byte{byte(TrigIAC), byte(TrigSB), 0x7E, 0xAA, 0xBB, 0xCC, byte(TrigIAC), byte(TrigSE)})
	h.feed(t, []byte("hi\n"))
	h.expectSubmitted(t, []byte("hi"))
}

// CR is swallowed and does not appear in the submitted line; LF
// flushes even on an otherwise empty line.
func TestCRLFHandling(t *testing.T) {
	h := newHarness(t, nil)
	defer h.stop()

	h.feed(t, []byte("hello\r\n"))
	h.expectSubmitted(t, []byte("hello"))

	h.feed(t, []byte("\n"))
	h.expectSubmitted(t, []byte{})
}

func TestBuildRequiresRoleAndCallbacks(t *testing.T) {
	if _, err := NewBuilder().Build(); err == nil {
		t.Fatal("expected error when role is unset")
	}
	if _, err := NewBuilder().WithRole(Server).Build(); err == nil {
		t.Fatal("expected error when OnSubmit is unset")
	}
	if _, err := NewBuilder().WithRole(Server).
		OnSubmit(func([]byte, string, *Engine) {}).Build(); err == nil {
		t.Fatal("expected error when OnNegotiate is unset")
	}
}

func TestMaxBufferSizeDiscardsOverflow(t *testing.T) {
	h := newHarness(t, func(b *Builder) { b.WithMaxBufferSize(3) })
	defer h.stop()

	h.feed(t, []byte("abcdef\n"))
	h.expectSubmitted(t, []byte("abc"))
}
