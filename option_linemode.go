package telnet

const lmMode byte = 1

// linemodeHandler implements RFC 1184 Line Mode's MODE subnegotiation.
// The default policy is server-managed editing (spec.md §4.D): the
// engine negotiates the option and reports mode-byte changes via
// LineModeFunc without asserting a mode of its own unless the caller
// does so through SendLineMode.
type linemodeHandler struct{}

func (linemodeHandler) name() string { return "LINEMODE" }
func (linemodeHandler) option() byte { return OptLINEMODE }

func (h linemodeHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptLINEMODE, h.name(), nil, nil)
	offerLocalAnswer(m, OptLINEMODE, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptLINEMODE, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		e := ctx.e
		if len(payload) < 2 || payload[0] != lmMode {
			return
		}
		e.lineMode = payload[1]
		if e.cb.onLineMode != nil {
			e.cb.onLineMode(e.lineMode)
		}
	})
}

func (linemodeHandler) onEnabled(e *Engine) {}
func (linemodeHandler) onDisabled(e *Engine) {}

// SendLineMode emits a MODE subnegotiation asserting mode.
func (e *Engine) SendLineMode(mode byte) {
	e.lineMode = mode
	e.sendSubnegotiation(OptLINEMODE, []byte{lmMode, mode})
}
