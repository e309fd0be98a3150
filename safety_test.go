package telnet

import (
	"bytes"
	"log/slog"
	"testing"
)

// Scenario 6 (spec §8): an unclaimed subnegotiation logs exactly one
// warning and otherwise produces no callback.
func TestUnknownSubnegotiationLogsOneWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := newHarness(t, func(b *Builder) { b.WithLogger(logger) })
	defer h.stop()

	h.feed(t, []byte{byte(TrigIAC), byte(TrigSB), 0x7E, 0xAA, 0xBB, 0xCC, byte(TrigIAC), byte(TrigSE)})
	h.feed(t, []byte("ok\n"))
	h.expectSubmitted(t, []byte("ok"))

	if n := bytes.Count(buf.Bytes(), []byte("discarding subnegotiation")); n != 1 {
		t.Fatalf("expected exactly one discard warning, got %d in log:\n%s", n, buf.String())
	}
}

// Forward progress: a run of 0xFF-heavy bytes must not hang the
// consumer loop, and the engine ends up able to process a normal line
// afterwards.
func TestForwardProgressOnNoisyInput(t *testing.T) {
	h := newHarness(t, nil)
	defer h.stop()

	noisy := make([]byte, 0, 65)
	for i := 0; i < 64; i++ {
		noisy = append(noisy, 0xFF)
	}
	noisy = append(noisy, '\n')
	h.feed(t, noisy)
	// Half of the doubled IACs land as literal 0xFF bytes in the same
	// line; only forward progress (no hang, one flush) is asserted.
	if got := <-h.submitted; len(got) == 0 {
		t.Fatal("expected a flushed (if noisy) line after the 0xFF run")
	}

	h.feed(t, []byte("still here\n"))
	h.expectSubmitted(t, []byte("still here"))
}
