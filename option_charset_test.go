package telnet

import "testing"

// Scenario 4 (spec §8): a client REQUEST with no overlapping charset
// is rejected.
func TestCharsetRequestRejected(t *testing.T) {
	h := newHarness(t, func(b *Builder) {
		b.WithAllowedEncodings([]string{"UTF-8", "ISO-8859-1"})
	})
	defer h.stop()

	body := append([]byte{subREQUEST}, []byte(";US-ASCII")...)
	h.feed(t, append(append([]byte{byte(TrigIAC), byte(TrigSB), OptCHARSET}, body...), byte(TrigIAC), byte(TrigSE)))

	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigSB), OptCHARSET, subREJECTED, byte(TrigIAC), byte(TrigSE)})
}

func TestCharsetRequestAccepted(t *testing.T) {
	changed := make(chan string, 1)
	h := newHarness(t, func(b *Builder) {
		b.WithAllowedEncodings([]string{"UTF-8", "US-ASCII"})
		b.OnCharsetChange(func(encoding string) { changed <- encoding })
	})
	defer h.stop()

	body := append([]byte{subREQUEST}, []byte(";US-ASCII")...)
	h.feed(t, append(append([]byte{byte(TrigIAC), byte(TrigSB), OptCHARSET}, body...), byte(TrigIAC), byte(TrigSE)))

	want := append([]byte{byte(TrigIAC), byte(TrigSB), OptCHARSET, subACCEPTED}, []byte("US-ASCII")...)
	want = append(want, byte(TrigIAC), byte(TrigSE))
	h.expectSentContains(t, want)

	select {
	case enc := <-changed:
		if enc != "US-ASCII" {
			t.Fatalf("expected US-ASCII, got %s", enc)
		}
	default:
		t.Fatal("expected CharsetChangeFunc to have fired by now")
	}
}
