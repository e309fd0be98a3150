package telnet

// environHandler implements the older RFC 1408 ENVIRON option, sharing
// NEW-ENVIRON's grammar (option_newenviron.go) but delivered with
// isNew=false so the caller can distinguish the two on EnvironFunc.
type environHandler struct{}

func (environHandler) name() string { return "ENVIRON" }
func (environHandler) option() byte { return OptENVIRON }

func (h environHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptENVIRON, h.name(), func(e *Engine) {
		if e.role == Server {
			e.sendSubnegotiation(OptENVIRON, []byte{subSEND})
		}
	}, nil)
	offerLocalAnswer(m, OptENVIRON, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptENVIRON, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		handleEnvironPayload(ctx.e, OptENVIRON, payload, false)
	})
}

func (environHandler) onEnabled(e *Engine) {}
func (environHandler) onDisabled(e *Engine) {}
