package telnet

// echoHandler implements RFC 857 Echo. It defaults off (spec.md §4.D):
// the engine never assumes echo is active until a WILL/DO exchange
// confirms it, and reports every transition via the caller's EchoFunc.
type echoHandler struct{}

func (echoHandler) name() string  { return "ECHO" }
func (echoHandler) option() byte  { return OptECHO }

func (h echoHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptECHO, h.name(), func(e *Engine) {
		e.echoEnabled = true
		if e.cb.onEcho != nil {
			e.cb.onEcho(true)
		}
	}, func(e *Engine) {
		e.echoEnabled = false
		if e.cb.onEcho != nil {
			e.cb.onEcho(false)
		}
	})
	offerLocalAnswer(m, OptECHO, h.name(), func(e *Engine) {
		e.echoEnabled = true
		if e.cb.onEcho != nil {
			e.cb.onEcho(true)
		}
	}, func(e *Engine) {
		e.echoEnabled = false
		if e.cb.onEcho != nil {
			e.cb.onEcho(false)
		}
	})
}

// onEnabled offers ECHO unsolicited in server role: a server
// conventionally takes over echoing from the client (spec.md
// invariant 5).
func (echoHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigWILL), OptECHO)
	}
}

func (echoHandler) onDisabled(e *Engine) {}
