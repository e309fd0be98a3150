package telnet

// flowControlHandler implements RFC 1372 Toggle Flow Control, a plain
// flag option with no subnegotiation payload.
type flowControlHandler struct{}

func (flowControlHandler) name() string { return "FLOWCONTROL" }
func (flowControlHandler) option() byte { return OptFLOWCONTROL }

func (h flowControlHandler) configure(e *Engine, m *stateMachine) {
	report := func(enabled bool) func(e *Engine) {
		return func(e *Engine) {
			if e.cb.onFlowCtrl != nil {
				e.cb.onFlowCtrl(enabled)
			}
		}
	}
	acceptRemoteOffer(m, OptFLOWCONTROL, h.name(), report(true), report(false))
	offerLocalAnswer(m, OptFLOWCONTROL, h.name(), report(true), report(false))
}

func (flowControlHandler) onEnabled(e *Engine) {}
func (flowControlHandler) onDisabled(e *Engine) {}
