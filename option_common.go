package telnet

// acceptRemoteOffer wires the common "peer sent WILL, we reply DO and
// remember RemoteState, peer sent WONT and we clear it" policy that
// most non-rejecting options share (spec.md §4.D describes this
// response pattern once per option, but the Go expression of it is
// identical everywhere except what onEnable/onDisable do, so it lives
// here rather than being copy-pasted into every option_*.go file).
func acceptRemoteOffer(m *stateMachine, opt byte, optName string, onEnable, onDisable func(e *Engine)) {
	will := stateWill(optName)
	wont := stateWont(optName)
	m.Permit(StateWilling, optTrigger(opt), will)
	m.OnEntry(will, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(opt)
		if !entry.RemoteState {
			entry.RemoteState = true
			e.options.set(opt, entry)
			e.sendDo(opt)
			if onEnable != nil {
				onEnable(e)
			}
		}
		e.machine.ForceState(e, StateAccepting)
	})
	m.Permit(StateRefusing, optTrigger(opt), wont)
	m.OnEntry(wont, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(opt)
		if entry.RemoteState {
			entry.RemoteState = false
			e.options.set(opt, entry)
			if onDisable != nil {
				onDisable(e)
			}
		}
		e.machine.ForceState(e, StateAccepting)
	})
}

// offerLocalAnswer wires the "peer sent DO, we reply WILL and remember
// LocalState; peer sent DONT and we clear it" policy for options we
// are willing to perform ourselves when asked.
func offerLocalAnswer(m *stateMachine, opt byte, optName string, onEnable, onDisable func(e *Engine)) {
	do := stateDo(optName)
	dont := stateDont(optName)
	m.Permit(StateDo, optTrigger(opt), do)
	m.OnEntry(do, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(opt)
		if !entry.LocalState {
			entry.LocalState = true
			e.options.set(opt, entry)
			e.sendWill(opt)
			if onEnable != nil {
				onEnable(e)
			}
		}
		e.machine.ForceState(e, StateAccepting)
	})
	m.Permit(StateDont, optTrigger(opt), dont)
	m.OnEntry(dont, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(opt)
		if entry.LocalState {
			entry.LocalState = false
			e.options.set(opt, entry)
			if onDisable != nil {
				onDisable(e)
			}
		}
		e.machine.ForceState(e, StateAccepting)
	})
}

// offerUnsolicited sends the server's one-time advertisement for an
// option it actively supports (spec.md invariant 5). cmd is TrigWILL
// or TrigDO depending on which side of the option this engine plays.
func offerUnsolicited(e *Engine, cmd, opt byte) {
	e.sendCommand(cmd, opt)
}
