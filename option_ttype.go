package telnet

import "strconv"

// mttsBits maps the MTTS bitfield (the integer following "MTTS " in a
// terminal-type string) to the feature names spec.md §4.D lists.
var mttsBits = []struct {
	bit  int
	name string
}{
	{1, "ANSI"},
	{2, "VT100"},
	{4, "UTF8"},
	{8, "256 COLORS"},
	{16, "MOUSE_TRACKING"},
	{32, "OSC_COLOR_PALETTE"},
	{64, "SCREEN_READER"},
	{128, "PROXY"},
	{256, "TRUECOLOR"},
	{512, "MNES"},
	{1024, "MSLP"},
}

// ttypeHandler implements RFC 1091 Terminal Type plus its MTTS
// bitfield extension (spec.md §4.D). The server drives a request/reply
// loop until the client repeats a terminal type it already sent; the
// client cycles through a caller-supplied list on each SEND.
type ttypeHandler struct{}

func (ttypeHandler) name() string { return "TTYPE" }
func (ttypeHandler) option() byte { return OptTTYPE }

func (h ttypeHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptTTYPE, h.name(), func(e *Engine) {
		if e.role == Server {
			e.sendSubnegotiation(OptTTYPE, []byte{subSEND})
		}
	}, nil)
	offerLocalAnswer(m, OptTTYPE, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptTTYPE, h.name(), maxTTypeBuffer, func(ctx *actionContext, payload []byte) {
		e := ctx.e
		if len(payload) == 0 {
			return
		}
		switch payload[0] {
		case subSEND:
			e.replyTType()
		case subIS:
			e.receiveTType(string(payload[1:]))
		}
	})
}

func (ttypeHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigDO), OptTTYPE)
	}
}

func (ttypeHandler) onDisabled(e *Engine) {}

// replyTType answers a SEND request with the next terminal type in the
// caller-configured cycle (client role).
func (e *Engine) replyTType() {
	if len(e.clientTTypes) == 0 {
		e.sendSubnegotiation(OptTTYPE, []byte{subIS})
		return
	}
	tt := e.clientTTypes[e.clientTTypeAt]
	e.clientTTypeAt = (e.clientTTypeAt + 1) % len(e.clientTTypes)
	body := append([]byte{subIS}, []byte(tt)...)
	e.sendSubnegotiation(OptTTYPE, body)
}

// receiveTType records an IS reply (server role). A repeated type
// closes the cycle and fires TTypeFunc with the MTTS bitfield decoded.
func (e *Engine) receiveTType(name string) {
	if e.ttypeSeen[name] {
		e.finishTType(name)
		return
	}
	e.ttypeSeen[name] = true
	e.ttypeHistory = append(e.ttypeHistory, name)
	e.sendSubnegotiation(OptTTYPE, []byte{subSEND})
}

func (e *Engine) finishTType(current string) {
	for _, entry := range e.ttypeHistory {
		const prefix = "MTTS "
		if len(entry) <= len(prefix) || entry[:len(prefix)] != prefix {
			continue
		}
		n, err := strconv.Atoi(entry[len(prefix):])
		if err != nil {
			continue
		}
		for _, bm := range mttsBits {
			if n&bm.bit != 0 {
				e.ttypeHistory = append(e.ttypeHistory, bm.name)
			}
		}
	}
	if e.cb.onTType != nil {
		e.cb.onTType(e.ttypeHistory, current)
	}
}
