package telnet

// nawsHandler implements RFC 1073 Negotiate About Window Size. Per
// spec.md invariant 5, only the server side ever initiates (DO NAWS);
// the client only answers, replying WILL. This handler receives and
// decodes the four-byte dimension payload; it does not send one.
type nawsHandler struct{}

func (nawsHandler) name() string { return "NAWS" }
func (nawsHandler) option() byte { return OptNAWS }

func (h nawsHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptNAWS, h.name(), nil, nil)
	offerLocalAnswer(m, OptNAWS, h.name(), nil, nil)

	// The body is always exactly 4 bytes before the peer's IAC SE; the
	// generic accumulator (subneg.go) is used rather than a fixed-
	// length early-completion dynamic permit, since both converge on
	// the same IAC SE terminator the RFC requires anyway.
	registerSubnegotiationBody(m, OptNAWS, h.name(), 4, func(ctx *actionContext, payload []byte) {
		if len(payload) < 4 {
			return
		}
		e := ctx.e
		e.nawsWidth = uint16(payload[0])<<8 | uint16(payload[1])
		e.nawsHeight = uint16(payload[2])<<8 | uint16(payload[3])
		if e.cb.onNAWS != nil {
			e.cb.onNAWS(e.nawsHeight, e.nawsWidth)
		}
	})
}

func (nawsHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigDO), OptNAWS)
	}
}

func (nawsHandler) onDisabled(e *Engine) {}
