package telnet

import (
	"bytes"
	"sort"
	"strconv"
)

const (
	msspVarMarker byte = 1
	msspValMarker byte = 2
)

// msspHandler implements the MUD Server Status Protocol (spec.md
// §4.D). Unlike the other options, a DO is not answered with WILL:
// the server declares WILL unsolicited, and once the peer answers DO
// the server immediately pushes its one MSSP payload instead. A peer's
// WILL is answered with DO as usual. Because the DO path differs, this
// handler wires its own subgraph rather than the shared
// acceptRemoteOffer/offerLocalAnswer helpers.
type msspHandler struct{}

func (msspHandler) name() string { return "MSSP" }
func (msspHandler) option() byte { return OptMSSP }

func (h msspHandler) configure(e *Engine, m *stateMachine) {
	will := stateWill(h.name())
	wont := stateWont(h.name())
	m.Permit(StateWilling, optTrigger(OptMSSP), will)
	m.OnEntry(will, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(OptMSSP)
		if !entry.RemoteState {
			entry.RemoteState = true
			e.options.set(OptMSSP, entry)
			e.sendDo(OptMSSP)
		}
		e.machine.ForceState(e, StateAccepting)
	})
	m.Permit(StateRefusing, optTrigger(OptMSSP), wont)
	m.OnEntry(wont, func(ctx *actionContext) {
		ctx.e.machine.ForceState(ctx.e, StateAccepting)
	})

	do := stateDo(h.name())
	dont := stateDont(h.name())
	m.Permit(StateDo, optTrigger(OptMSSP), do)
	m.OnEntry(do, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(OptMSSP)
		if !entry.LocalState {
			entry.LocalState = true
			e.options.set(OptMSSP, entry)
			if e.role == Server && e.msspProvider != nil {
				e.sendSubnegotiation(OptMSSP, encodeMSSP(e.msspProvider.MSSP()))
			}
		}
		e.machine.ForceState(e, StateAccepting)
	})
	m.Permit(StateDont, optTrigger(OptMSSP), dont)
	m.OnEntry(dont, func(ctx *actionContext) {
		e := ctx.e
		entry := e.options.get(OptMSSP)
		entry.LocalState = false
		e.options.set(OptMSSP, entry)
		e.machine.ForceState(e, StateAccepting)
	})

	registerSubnegotiationBody(m, OptMSSP, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		ctx.e.handleMSSPPayload(payload)
	})
}

func (msspHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigWILL), OptMSSP)
	}
}

func (msspHandler) onDisabled(e *Engine) {}

// handleMSSPPayload zips the VAR/VAL run into well-known MSSPConfig
// fields, with everything else falling into Extended.
func (e *Engine) handleMSSPPayload(payload []byte) {
	raw := parseMSSP(payload)
	cfg := MSSPConfig{Extended: make(map[string]any)}
	for k, v := range raw {
		switch k {
		case "NAME":
			if s, ok := v.(string); ok {
				cfg.Name = s
			}
		case "PLAYERS":
			if s, ok := v.(string); ok {
				cfg.Players, _ = strconv.Atoi(s)
			}
		case "MAXPLAYERS":
			if s, ok := v.(string); ok {
				cfg.MaxPlayers, _ = strconv.Atoi(s)
			}
		case "UPTIME":
			if s, ok := v.(string); ok {
				cfg.Uptime, _ = strconv.ParseInt(s, 10, 64)
			}
		default:
			cfg.Extended[k] = v
		}
	}
	if e.cb.onMSSP != nil {
		e.cb.onMSSP(cfg)
	}
}

// parseMSSP zips alternating VAR/VAL tokens into a map; a VAR followed
// by more than one VAL becomes a []string, matching spec.md §4.D's
// "list becomes multiple VALs under one VAR".
func parseMSSP(payload []byte) map[string]any {
	result := make(map[string]any)
	var curVar string
	var curVals []string
	flush := func() {
		if curVar == "" {
			return
		}
		switch len(curVals) {
		case 0:
		case 1:
			result[curVar] = curVals[0]
		default:
			result[curVar] = append([]string(nil), curVals...)
		}
		curVar, curVals = "", nil
	}
	pos := 0
	for pos < len(payload) {
		switch payload[pos] {
		case msspVarMarker:
			flush()
			pos++
			start := pos
			for pos < len(payload) && payload[pos] != msspVarMarker && payload[pos] != msspValMarker {
				pos++
			}
			curVar = string(payload[start:pos])
		case msspValMarker:
			pos++
			start := pos
			for pos < len(payload) && payload[pos] != msspVarMarker && payload[pos] != msspValMarker {
				pos++
			}
			curVals = append(curVals, string(payload[start:pos]))
		default:
			pos++
		}
	}
	flush()
	return result
}

// encodeMSSP is parseMSSP's inverse: scalars become one VAL, bools
// become "1"/"0", ints become decimal, []string becomes multiple VALs.
func encodeMSSP(cfg MSSPConfig) []byte {
	var buf bytes.Buffer
	writeVar := func(name string, vals ...string) {
		buf.WriteByte(msspVarMarker)
		buf.WriteString(name)
		for _, v := range vals {
			buf.WriteByte(msspValMarker)
			buf.WriteString(v)
		}
	}
	writeVar("NAME", cfg.Name)
	writeVar("PLAYERS", strconv.Itoa(cfg.Players))
	writeVar("MAXPLAYERS", strconv.Itoa(cfg.MaxPlayers))
	writeVar("UPTIME", strconv.FormatInt(cfg.Uptime, 10))

	keys := make([]string, 0, len(cfg.Extended))
	for k := range cfg.Extended {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := cfg.Extended[k].(type) {
		case string:
			writeVar(k, v)
		case bool:
			if v {
				writeVar(k, "1")
			} else {
				writeVar(k, "0")
			}
		case int:
			writeVar(k, strconv.Itoa(v))
		case []string:
			writeVar(k, v...)
		}
	}
	return buf.Bytes()
}
