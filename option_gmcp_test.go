package telnet

import (
	"encoding/json"
	"testing"
	"time"
)

// Scenario 5 (spec §8): a GMCP package literally named "MSDP" is routed
// to the MSDP callback instead of the GMCP one.
func TestGMCPMSDPRouting(t *testing.T) {
	gmcpCh := make(chan string, 1)
	msdpCh := make(chan []byte, 1)
	h := newHarness(t, func(b *Builder) {
		b.OnGMCP(func(pkg string, info json.RawMessage) { gmcpCh <- pkg })
		b.OnMSDP(func(e *Engine, jsonText []byte) {
			cp := append([]byte(nil), jsonText...)
			msdpCh <- cp
		})
	})
	defer h.stop()

	body := append([]byte("MSDP "), []byte{msdpVar, 'N', 'A', 'M', 'E', msdpVal, 'X'}...)
	h.feed(t, append(append([]byte{byte(TrigIAC), byte(TrigSB), OptGMCP}, body...), byte(TrigIAC), byte(TrigSE)))

	select {
	case <-gmcpCh:
		t.Fatal("GMCP callback fired for an MSDP-routed package")
	case got := <-msdpCh:
		if string(got) == "" {
			t.Fatal("expected non-empty MSDP JSON payload")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for MSDP callback")
	}
}

func TestGMCPOrdinaryPackage(t *testing.T) {
	gmcpCh := make(chan string, 1)
	h := newHarness(t, func(b *Builder) {
		b.OnGMCP(func(pkg string, info json.RawMessage) { gmcpCh <- pkg })
	})
	defer h.stop()

	body := []byte(`Core.Hello {"client":"test"}`)
	h.feed(t, append(append([]byte{byte(TrigIAC), byte(TrigSB), OptGMCP}, body...), byte(TrigIAC), byte(TrigSE)))

	select {
	case pkg := <-gmcpCh:
		if pkg != "Core.Hello" {
			t.Fatalf("expected package Core.Hello, got %q", pkg)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for GMCP callback")
	}
}
