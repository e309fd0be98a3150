package telnet

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"
)

// MCCP2 compression splice (spec.md §4.D): after DO MCCP2 answers the
// server's unsolicited WILL, the marker subnegotiation goes out in the
// clear and every outbound message after it is zlib-compressed.
func TestMCCP2CompressesOutboundAfterMarker(t *testing.T) {
	h := newHarness(t, nil)
	defer h.stop()

	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigWILL), OptMCCP2})
	h.feed(t, []byte{byte(TrigIAC), byte(TrigDO), OptMCCP2})
	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigSB), OptMCCP2, byte(TrigIAC), byte(TrigSE)})

	// Anything answered after the marker — here, the refusal of an
	// unrecognised DO — must now arrive as zlib-compressed bytes rather
	// than the plain three-byte IAC WONT sequence.
	h.feed(t, []byte{byte(TrigIAC), byte(TrigDO), 0x63})

	compressed := <-h.sent
	if bytes.Equal(compressed, []byte{byte(TrigIAC), byte(TrigWONT), 0x63}) {
		t.Fatal("expected compressed bytes, got the plain wire form")
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("not a valid zlib stream: %v", err)
	}
	defer zr.Close()
	// The writer was only Flushed, not Closed, so the stream has no
	// final block; reading past the flushed data legitimately yields
	// io.ErrUnexpectedEOF rather than a clean io.EOF.
	plain, err := io.ReadAll(zr)
	if err != nil && err != io.ErrUnexpectedEOF {
		t.Fatalf("zlib decompress: %v", err)
	}
	if !bytes.Equal(plain, []byte{byte(TrigIAC), byte(TrigWONT), 0x63}) {
		t.Fatalf("decompressed payload mismatch: got %v", plain)
	}
}

// The onCompress callback fires once compression starts.
func TestMCCP2FiresOnCompressCallback(t *testing.T) {
	started := make(chan byte, 1)
	h := newHarness(t, func(b *Builder) {
		b.OnCompress(func(opt byte, enabled bool) {
			if enabled {
				started <- opt
			}
		})
	})
	defer h.stop()

	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigWILL), OptMCCP2})
	h.feed(t, []byte{byte(TrigIAC), byte(TrigDO), OptMCCP2})
	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigSB), OptMCCP2, byte(TrigIAC), byte(TrigSE)})

	select {
	case opt := <-started:
		if opt != OptMCCP2 {
			t.Fatalf("expected OptMCCP2, got %d", opt)
		}
	default:
		t.Fatal("expected onCompress to have fired by now")
	}
}
