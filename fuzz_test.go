package telnet

import (
	"bytes"
	"context"
	"testing"
	"time"
)

// FuzzEngineForwardProgress feeds arbitrary byte sequences, including
// ones generated from 0xFF-heavy seeds, and asserts the consumer loop
// never stalls: a trailing known-good line always eventually surfaces
// on Submit. This is spec.md §8's forward-progress and no-leakage
// property stated as a fuzz target rather than a hand-picked table.
func FuzzEngineForwardProgress(f *testing.F) {
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	f.Add([]byte{0xFF, 0xFB, 0x01, 0xFF, 0xFD, 0x01})
	f.Add(bytes.Repeat([]byte{0xFF}, 128))
	f.Add([]byte{0xFF, 0xFA, 0x42, 0xAA, 0xBB, 0xFF, 0xF0})
	f.Add([]byte("ordinary line\r\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		h := newHarness(t, nil)
		defer h.stop()

		// Bound the input; fuzzing explores shape, not size.
		if len(data) > 4096 {
			data = data[:4096]
		}

		found := make(chan struct{})
		stopDrain := make(chan struct{})
		defer close(stopDrain)
		go func() {
			for {
				select {
				case got := <-h.submitted:
					if string(got) == "marker-line" {
						close(found)
						return
					}
				case <-h.sent:
				case <-stopDrain:
					return
				}
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.e.Feed(ctx, data); err != nil {
			t.Fatalf("Feed: %v", err)
		}

		marker := []byte("\nmarker-line\n")
		if err := h.e.Feed(ctx, marker); err != nil {
			t.Fatalf("Feed marker: %v", err)
		}

		select {
		case <-found:
		case <-time.After(2 * time.Second):
			t.Fatal("forward progress stalled: marker line never surfaced")
		}
	})
}
