package telnet

// sgaHandler implements RFC 858 Suppress Go Ahead. Once agreed in
// either direction, Go Ahead is suppressed for prompt delivery
// (engine.gaAgreed flips to false) — see SendPrompt in option_eor.go,
// which reads gaAgreed together with the EOR handler's state.
type sgaHandler struct{}

func (sgaHandler) name() string { return "SGA" }
func (sgaHandler) option() byte { return OptSGA }

func (h sgaHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptSGA, h.name(), func(e *Engine) {
		e.gaAgreed = false
	}, func(e *Engine) {
		e.gaAgreed = true
	})
	offerLocalAnswer(m, OptSGA, h.name(), func(e *Engine) {
		e.gaAgreed = false
	}, func(e *Engine) {
		e.gaAgreed = true
	})
}

func (sgaHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigWILL), OptSGA)
	}
}

func (sgaHandler) onDisabled(e *Engine) {}
