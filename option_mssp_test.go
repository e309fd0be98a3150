package telnet

import (
	"reflect"
	"testing"
	"time"
)

type stubMSSPProvider struct{ cfg MSSPConfig }

func (p stubMSSPProvider) MSSP() MSSPConfig { return p.cfg }

// Round-trip invariant (spec §8): the payload the server pushes after
// DO MSSP, read back with parseMSSP, keeps the NAME field and preserves
// a multi-valued Extended entry as a []string.
func TestMSSPRoundTrip(t *testing.T) {
	cfg := MSSPConfig{
		Name:       "Rune",
		Players:    3,
		MaxPlayers: 100,
		Uptime:     42,
		Extended: map[string]any{
			"CODEBASE": "test",
			"CRAWL_DELAY": []string{"1", "2"},
		},
	}

	h := newHarness(t, func(b *Builder) {
		b.WithMSSPProvider(stubMSSPProvider{cfg: cfg})
	})
	defer h.stop()

	// The server offers WILL MSSP unsolicited; answering DO triggers
	// its one-shot payload push (spec.md §4.D).
	h.expectSentContains(t, []byte{byte(TrigIAC), byte(TrigWILL), OptMSSP})
	h.feed(t, []byte{byte(TrigIAC), byte(TrigDO), OptMSSP})

	var payload []byte
	deadline := time.After(time.Second)
	for payload == nil {
		select {
		case got := <-h.sent:
			if len(got) > 3 && got[0] == byte(TrigIAC) && got[1] == byte(TrigSB) && got[2] == OptMSSP {
				payload = got[3 : len(got)-2]
			}
		case <-deadline:
			t.Fatal("timed out waiting for MSSP payload")
		}
	}

	got := parseMSSP(payload)
	if got["NAME"] != "Rune" {
		t.Fatalf("NAME round-trip failed: %v", got)
	}
	if !reflect.DeepEqual(got["CRAWL_DELAY"], []string{"1", "2"}) {
		t.Fatalf("multi-valued Extended round-trip failed: %v", got["CRAWL_DELAY"])
	}
}

func TestMSSPHandlePayloadZipsWellKnownFields(t *testing.T) {
	cfg := MSSPConfig{Name: "Rune", Players: 5, MaxPlayers: 50, Uptime: 123}
	encoded := encodeMSSP(cfg)

	got := make(chan MSSPConfig, 1)
	h := newHarness(t, func(b *Builder) {
		b.OnMSSP(func(c MSSPConfig) { got <- c })
	})
	defer h.stop()

	h.e.handleMSSPPayload(encoded)

	select {
	case c := <-got:
		if c.Name != "Rune" || c.Players != 5 || c.MaxPlayers != 50 || c.Uptime != 123 {
			t.Fatalf("unexpected round-tripped config: %+v", c)
		}
	default:
		t.Fatal("expected onMSSP to fire synchronously")
	}
}
