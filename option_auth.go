package telnet

// authHandler implements RFC 2941 Authentication framing. The engine
// negotiates the option and hands any subnegotiation payload to the
// caller's AuthFunc; with no callback registered it falls back to the
// null-behaviour default spec.md §4.D names — replying IS NULL-type —
// rather than silently dropping the exchange.
type authHandler struct{}

func (authHandler) name() string { return "AUTH" }
func (authHandler) option() byte { return OptAUTHENTICATION }

func (h authHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptAUTHENTICATION, h.name(), nil, nil)
	offerLocalAnswer(m, OptAUTHENTICATION, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptAUTHENTICATION, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		e := ctx.e
		if e.cb.onAuth != nil {
			e.cb.onAuth(payload)
			return
		}
		e.sendSubnegotiation(OptAUTHENTICATION, []byte{subIS, 0})
	})
}

func (authHandler) onEnabled(e *Engine) {}
func (authHandler) onDisabled(e *Engine) {}
