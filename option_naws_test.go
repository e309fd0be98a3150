package telnet

import (
	"testing"
	"time"
)

// Scenario 3 (spec §8): a full WILL/DO/subnegotiation NAWS exchange
// delivers the decoded window size.
func TestNAWSComplete(t *testing.T) {
	nawsCh := make(chan [2]uint16, 1)
	h := newHarness(t, func(b *Builder) {
		b.OnNAWS(func(height, width uint16) {
			nawsCh <- [2]uint16{height, width}
		})
	})
	defer h.stop()

	h.feed(t, []byte{
		byte(TrigIAC), byte(TrigWILL), OptNAWS,
		byte(TrigIAC), byte(TrigDO), OptNAWS,
		byte(TrigIAC), byte(TrigSB), OptNAWS, 0x00, 0x50, 0x00, 0x18, byte(TrigIAC), byte(TrigSE),
	})

	select {
	case got := <-nawsCh:
		height, width := got[0], got[1]
		if width != 80 || height != 24 {
			t.Fatalf("expected width=80 height=24, got width=%d height=%d", width, height)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for NAWS callback")
	}
}

func TestNAWSServerOffersUnsolicited(t *testing.T) {
	h := newHarness(t, nil)
	defer h.stop()
	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigDO), OptNAWS})
}
