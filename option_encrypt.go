package telnet

// encryptHandler implements RFC 2946 Encryption framing only: per
// spec.md §1's explicit non-goal, the engine never performs key
// exchange or interprets the payload — it negotiates the option and
// passes the raw subnegotiation bytes to EncryptFunc.
type encryptHandler struct{}

func (encryptHandler) name() string { return "ENCRYPT" }
func (encryptHandler) option() byte { return OptENCRYPT }

func (h encryptHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptENCRYPT, h.name(), nil, nil)
	offerLocalAnswer(m, OptENCRYPT, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptENCRYPT, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		if ctx.e.cb.onEncrypt != nil {
			ctx.e.cb.onEncrypt(payload)
		}
	})
}

func (encryptHandler) onEnabled(e *Engine) {}
func (encryptHandler) onDisabled(e *Engine) {}
