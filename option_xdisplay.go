package telnet

// xdisplayHandler implements RFC 1096 X Display Location: the same
// SEND/IS request-reply shape as Terminal Type (option_ttype.go), but
// a single fixed value rather than a cycling list.
type xdisplayHandler struct{}

func (xdisplayHandler) name() string { return "XDISPLOC" }
func (xdisplayHandler) option() byte { return OptXDISPLOC }

func (h xdisplayHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptXDISPLOC, h.name(), func(e *Engine) {
		if e.role == Server {
			e.sendSubnegotiation(OptXDISPLOC, []byte{subSEND})
		}
	}, nil)
	offerLocalAnswer(m, OptXDISPLOC, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptXDISPLOC, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		e := ctx.e
		if len(payload) == 0 {
			return
		}
		switch payload[0] {
		case subSEND:
			e.sendSubnegotiation(OptXDISPLOC, append([]byte{subIS}, []byte(e.xdisplay)...))
		case subIS:
			if e.cb.onXDisplay != nil {
				e.cb.onXDisplay(string(payload[1:]))
			}
		}
	})
}

func (xdisplayHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigDO), OptXDISPLOC)
	}
}

func (xdisplayHandler) onDisabled(e *Engine) {}
