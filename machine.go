package telnet

// actionContext is passed to every entry action fired during a
// transition. It carries the byte that parameterised the trigger (0 for
// a transition forced directly via ForceState) alongside the engine the
// transition belongs to.
type actionContext struct {
	e       *Engine
	trigger Trigger
	b       byte
}

// action is an entry action: code that runs once a transition lands on
// its target state. Per spec.md §4.B, all actions for a transition run
// to completion before the next byte is processed — callers never see
// a partially-applied transition.
type action func(ctx *actionContext)

type stateTriggerKey struct {
	state State
	trig  Trigger
}

type transition struct {
	target State
}

// stateMachine is the hierarchical state machine core (spec.md §4.B).
// Transitions are registered once, at build time, by every option
// handler's configure method; the runtime only ever walks the
// resulting tables. "Substate of" is flattened into parent fallthrough:
// a trigger unhandled by a child state is retried against its parent,
// recursively, which is sufficient to express the hierarchy spec.md §3
// describes without needing real inheritance.
type stateMachine struct {
	transitions      map[stateTriggerKey]transition
	parents          map[State]State
	entryActions     map[State][]action
	entryFromActions map[stateTriggerKey][]action
	unhandled        func(ctx *actionContext)
}

func newStateMachine() *stateMachine {
	return &stateMachine{
		transitions:      make(map[stateTriggerKey]transition),
		parents:          make(map[State]State),
		entryActions:     make(map[State][]action),
		entryFromActions: make(map[stateTriggerKey][]action),
	}
}

// Permit declares a transition from state to target on trigger.
func (m *stateMachine) Permit(state State, trig Trigger, target State) {
	m.transitions[stateTriggerKey{state, trig}] = transition{target: target}
}

// PermitReentry re-enters state on trigger: its entry actions run again
// (state history, such as an accumulation buffer, is whatever the
// actions themselves do — the machine itself keeps no history).
func (m *stateMachine) PermitReentry(state State, trig Trigger) {
	m.Permit(state, trig, state)
}

// SubstateOf makes parent catch triggers that child does not handle.
func (m *stateMachine) SubstateOf(child, parent State) {
	m.parents[child] = parent
}

// OnEntry registers an action that runs on every entry into state,
// regardless of which trigger caused the transition.
func (m *stateMachine) OnEntry(state State, a action) {
	m.entryActions[state] = append(m.entryActions[state], a)
}

// OnEntryFrom registers an action that runs only when state is entered
// via trig, in addition to any OnEntry actions for state.
func (m *stateMachine) OnEntryFrom(state State, trig Trigger, a action) {
	key := stateTriggerKey{state, trig}
	m.entryFromActions[key] = append(m.entryFromActions[key], a)
}

// OnUnhandled installs the unhandled-trigger hook (spec.md §4.B, §4.E).
// It is mandatory in practice: configureSafetyNet (run by Build) always
// installs one that logs and forces the machine back to Accepting.
func (m *stateMachine) OnUnhandled(fn func(ctx *actionContext)) {
	m.unhandled = fn
}

// Fire drives one trigger through the machine for e, walking from the
// engine's current state up through parents until a transition or the
// unhandled hook resolves it. Every (state, trigger) pair is therefore
// defined in one of three ways, satisfying invariant 2 of spec.md §3:
// an explicit Permit, a parent's Permit, or the unhandled hook.
func (m *stateMachine) Fire(e *Engine, trig Trigger, b byte) {
	for s := e.state; ; {
		if t, ok := m.transitions[stateTriggerKey{s, trig}]; ok {
			m.enter(e, t.target, trig, b)
			return
		}
		// TrigAny is the registered wildcard for "any trigger this
		// state did not explicitly claim" — it stands in for the
		// catch-all described in spec.md §3 without requiring every
		// one of the 256 possible option/byte values to be enumerated
		// individually wherever a state's behaviour does not depend
		// on which one it is (e.g. ReadingCharacters: any non-CR/LF
		// byte is just appended; Willing/Do/Dont/Refusing: any option
		// no handler claimed is rejected the same way).
		if trig != TrigAny {
			if t, ok := m.transitions[stateTriggerKey{s, TrigAny}]; ok {
				// Entered via the wildcard claim, so entry-from actions
				// must be looked up under TrigAny too, not the concrete
				// byte that happened to match it — otherwise
				// OnEntryFrom(state, TrigAny) actions (e.g.
				// appendUserByte) never run.
				m.enter(e, t.target, TrigAny, b)
				return
			}
		}
		parent, ok := m.parents[s]
		if !ok {
			break
		}
		s = parent
	}
	if m.unhandled != nil {
		m.unhandled(&actionContext{e: e, trigger: trig, b: b})
	}
}

// enter lands the machine on target and runs its entry actions. It is
// also used directly by states whose transition is unconditional
// (Act, DoNothing) to return to Accepting without waiting on a new
// trigger.
func (m *stateMachine) enter(e *Engine, target State, trig Trigger, b byte) {
	e.state = target
	ctx := &actionContext{e: e, trigger: trig, b: b}
	for _, a := range m.entryActions[target] {
		a(ctx)
	}
	for _, a := range m.entryFromActions[stateTriggerKey{target, trig}] {
		a(ctx)
	}
}

// ForceState transitions directly to target, running its entry
// actions, without consulting the transition table. Used by states
// that are purely transient (spec.md's DoNothing, Act): their own
// OnEntry action does the work and then forces the machine back to
// Accepting in the same byte's processing, since no further trigger is
// expected to arrive before that happens.
func (m *stateMachine) ForceState(e *Engine, target State) {
	m.enter(e, target, TrigAny, 0)
}
