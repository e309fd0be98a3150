package telnet

// registerSubnegotiationBody wires the generic AlmostNegotiatingX /
// NegotiatingX / EscapingXValue / CompletingX subgraph shared by every
// option whose subnegotiation body is "raw bytes between IAC SB <opt>
// and IAC SE, with the standard IAC-doubling escape" — which, per
// spec.md invariants 3 and 4, is all of them at the framing level; an
// option's own further parsing (MSDP's nested grammar, CHARSET's
// separator-delimited list, GMCP's "name SP json") runs over the
// completed, already-unescaped payload onComplete receives.
//
// maxLen enforces the option's resource budget (spec.md §5): bytes
// beyond it are silently dropped from the buffer, but still consumed
// from the wire so framing never desyncs (invariant 4).
func registerSubnegotiationBody(m *stateMachine, opt byte, optName string, maxLen int, onComplete func(ctx *actionContext, payload []byte)) {
	almost := stateAlmostNegotiating(optName)
	neg := stateNegotiating(optName)
	esc := stateEscaping(optName)
	comp := stateCompleting(optName)

	m.Permit(StateSubNegotiation, optTrigger(opt), almost)
	m.OnEntry(almost, func(ctx *actionContext) {
		ctx.e.subBuf[opt] = ctx.e.subBuf[opt][:0]
	})
	m.Permit(almost, TrigIAC, esc)
	m.Permit(almost, TrigAny, neg)

	m.OnEntry(neg, func(ctx *actionContext) {
		buf := ctx.e.subBuf[opt]
		if len(buf) < maxLen {
			buf = append(buf, ctx.b)
			ctx.e.subBuf[opt] = buf
		}
	})
	m.Permit(neg, TrigIAC, esc)
	m.PermitReentry(neg, TrigAny)

	// A bare IAC inside the body is an escape: IAC IAC is a literal
	// 0xFF (back to neg, appended via its OnEntry since ctx.b==0xFF),
	// IAC SE ends the subnegotiation. Any other byte here is a framing
	// error (invariant 3) and is left unhandled on purpose, so it
	// falls through to the safety net's unhandled-trigger recovery.
	m.Permit(esc, TrigIAC, neg)
	m.Permit(esc, TrigSE, comp)

	m.OnEntry(comp, func(ctx *actionContext) {
		payload := append([]byte(nil), ctx.e.subBuf[opt]...)
		onComplete(ctx, payload)
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})
}
