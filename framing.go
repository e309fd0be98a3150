package telnet

// configureFraming wires the top-level frame topology of spec.md
// §4.C. It must run before any option handler's configure, since
// options only ever extend StateStartNegotiation/StateWilling/
// StateRefusing/StateDo/StateDont/StateSubNegotiation with their own
// option-specific transitions — the frame itself never changes.
func configureFraming(m *stateMachine) {
	// Accepting: idle. IAC begins a command; CR is swallowed; LF
	// flushes (an empty line is a legal, if unusual, flush); anything
	// else starts accumulating user data.
	m.Permit(StateAccepting, TrigIAC, StateStartNegotiation)
	m.Permit(StateAccepting, TrigCR, StateAccepting)
	m.Permit(StateAccepting, TrigLF, StateAct)
	m.Permit(StateAccepting, TrigAny, StateReadingCharacters)
	m.OnEntryFrom(StateReadingCharacters, TrigAny, appendUserByte)

	// ReadingCharacters: same shape, but reentrant. OnEntryFrom rather
	// than OnEntry is what lets
	// byte-for-byte the *same* target state behave differently
	// depending on which trigger landed on it (CR swallowed, ordinary
	// bytes appended).
	m.Permit(StateReadingCharacters, TrigIAC, StateStartNegotiation)
	m.Permit(StateReadingCharacters, TrigCR, StateReadingCharacters)
	m.Permit(StateReadingCharacters, TrigLF, StateAct)
	m.PermitReentry(StateReadingCharacters, TrigAny)

	// Act is transient: flush, then return to Accepting without
	// waiting for another byte.
	m.OnEntry(StateAct, flushLine)

	// DoNothing (NOP) is transient too.
	m.OnEntry(StateDoNothing, func(ctx *actionContext) {
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})

	// StartNegotiation: IAC IAC is an escaped literal 0xFF, landing
	// back in ReadingCharacters (reusing appendUserByte, since the
	// triggering byte IS the literal to append). WILL/WONT/DO/DONT/SB
	// fan out to their own frame states; NOP is swallowed; GA and EOR
	// (IAC EOR) both signal "prompt ready" per spec.md §4.D and return
	// straight to Accepting.
	m.Permit(StateStartNegotiation, TrigIAC, StateReadingCharacters)
	m.OnEntryFrom(StateReadingCharacters, TrigIAC, appendUserByte)

	m.Permit(StateStartNegotiation, TrigWILL, StateWilling)
	m.Permit(StateStartNegotiation, TrigWONT, StateRefusing)
	m.Permit(StateStartNegotiation, TrigDO, StateDo)
	m.Permit(StateStartNegotiation, TrigDONT, StateDont)
	m.Permit(StateStartNegotiation, TrigSB, StateSubNegotiation)
	m.Permit(StateStartNegotiation, TrigNOP, StateDoNothing)

	m.Permit(StateStartNegotiation, TrigGA, StateAccepting)
	m.OnEntryFrom(StateAccepting, TrigGA, firePrompt)
	m.Permit(StateStartNegotiation, TrigEOR, StateAccepting)
	m.OnEntryFrom(StateAccepting, TrigEOR, firePrompt)

	// EndSubNegotiation is the generic landing state the safety net's
	// BadSubNegotiation consumer transitions through once it has seen
	// the closing IAC SE of a subnegotiation for an option no handler
	// claimed (safety.go); it immediately falls through to Accepting.
	m.OnEntry(StateEndSubNegotiation, func(ctx *actionContext) {
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})
}

func firePrompt(ctx *actionContext) {
	if ctx.e.cb.onPrompt != nil {
		ctx.e.cb.onPrompt()
	}
}
