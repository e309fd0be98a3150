package telnet

// eorHandler implements RFC 885 End Of Record as the paired flag
// option to SGA (option_sga.go): together they decide what a prompt
// boundary looks like on the wire (spec.md §4.D "EOR / Suppress-Go-
// Ahead").
type eorHandler struct{}

func (eorHandler) name() string { return "EOR" }
func (eorHandler) option() byte { return OptEOR }

func (h eorHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptEOR, h.name(), func(e *Engine) {
		e.eorAgreed = true
	}, func(e *Engine) {
		e.eorAgreed = false
	})
	offerLocalAnswer(m, OptEOR, h.name(), func(e *Engine) {
		e.eorAgreed = true
		e.weWillEOR = true
	}, func(e *Engine) {
		e.eorAgreed = false
		e.weWillEOR = false
	})
}

func (eorHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigWILL), OptEOR)
	}
}

func (eorHandler) onDisabled(e *Engine) {}

// SendPrompt emits the end-of-prompt marker the peer negotiated:
// IAC EOR if EOR was agreed, else IAC GA unless Go-Ahead has been
// suppressed by SGA, else nothing (spec.md §4.D).
func (e *Engine) SendPrompt() {
	switch {
	case e.eorAgreed:
		e.send([]byte{byte(TrigIAC), byte(TrigEOR)})
	case e.gaAgreed:
		e.send([]byte{byte(TrigIAC), byte(TrigGA)})
	}
}
