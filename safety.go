package telnet

// configureSafetyNet installs the wildcard fallbacks that make every
// (state, trigger) pair resolve to something, per invariant 2 of
// spec.md §3 and the sink states of §4.E. It must run after every
// option handler has registered its own explicit transitions, since
// Fire only consults a state's TrigAny wildcard once the explicit key
// misses — an option claiming its own code at StateWilling/StateDo/etc
// is therefore never shadowed by the net underneath it.
func configureSafetyNet(m *stateMachine) {
	// An unrecognised WILL must be refused: we never claim to support
	// an option we have no handler for.
	m.Permit(StateWilling, TrigAny, stateBadWill)
	m.OnEntry(stateBadWill, func(ctx *actionContext) {
		ctx.e.logWarn("rejecting WILL for unsupported option", "option", ctx.b)
		ctx.e.sendDont(ctx.b)
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})

	// WONT for an option we never asked about needs no reply; it is
	// purely informational.
	m.Permit(StateRefusing, TrigAny, stateBadWont)
	m.OnEntry(stateBadWont, func(ctx *actionContext) {
		ctx.e.logDebug("peer refused unknown/unrequested option", "option", ctx.b)
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})

	// An unrecognised DO must be refused the same way, in the other
	// direction: we never claim to perform an option we have no
	// handler for.
	m.Permit(StateDo, TrigAny, stateBadDo)
	m.OnEntry(stateBadDo, func(ctx *actionContext) {
		ctx.e.logWarn("rejecting DO for unsupported option", "option", ctx.b)
		ctx.e.sendWont(ctx.b)
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})

	// DONT for an option we never enabled needs no reply either.
	m.Permit(StateDont, TrigAny, stateBadDont)
	m.OnEntry(stateBadDont, func(ctx *actionContext) {
		ctx.e.logDebug("peer disabled unknown/unrequested option", "option", ctx.b)
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})

	// A subnegotiation for an option no handler registered still has to
	// be drained off the wire byte for byte — the framing must never
	// desync just because the payload belongs to an option we don't
	// speak (invariant 4). stateBadSubNeg is the one entry point from
	// StateSubNegotiation and logs exactly once for the whole
	// subnegotiation; every further body byte reenters the quiet sink
	// stateBadSubNegQuiet instead, which carries no OnEntry action, so
	// logging never repeats per byte. stateBadSubIAC then distinguishes
	// a doubled IAC (back to quiet discarding) from the terminating
	// IAC SE.
	m.Permit(StateSubNegotiation, TrigAny, stateBadSubNeg)
	m.OnEntry(stateBadSubNeg, func(ctx *actionContext) {
		ctx.e.logWarn("discarding subnegotiation for unsupported option", "option", ctx.b)
	})
	m.Permit(stateBadSubNeg, TrigIAC, stateBadSubIAC)
	m.Permit(stateBadSubNeg, TrigAny, stateBadSubNegQuiet)
	m.PermitReentry(stateBadSubNegQuiet, TrigAny)
	m.Permit(stateBadSubNegQuiet, TrigIAC, stateBadSubIAC)
	m.Permit(stateBadSubIAC, TrigIAC, stateBadSubNegQuiet)
	m.Permit(stateBadSubIAC, TrigSE, StateEndSubNegotiation)

	// The final catch-all: anything still unresolved (a byte other than
	// IAC or SE right after an IAC inside a subnegotiation body, an
	// unknown command after IAC, or any (state, trigger) pair this build
	// genuinely never
	// considered) is logged and the machine is forced back to a known
	// state rather than left stuck.
	m.OnUnhandled(func(ctx *actionContext) {
		ctx.e.logWarn("unhandled trigger, recovering to Accepting", "state", ctx.e.state, "trigger", ctx.trigger, "byte", ctx.b)
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})
}
