package telnet

import "strconv"

// tspeedHandler implements RFC 1079 Terminal Speed: SEND/IS with an
// ASCII "<transmit>,<receive>" payload.
type tspeedHandler struct{}

func (tspeedHandler) name() string { return "TSPEED" }
func (tspeedHandler) option() byte { return OptTSPEED }

func (h tspeedHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptTSPEED, h.name(), func(e *Engine) {
		if e.role == Server {
			e.sendSubnegotiation(OptTSPEED, []byte{subSEND})
		}
	}, nil)
	offerLocalAnswer(m, OptTSPEED, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptTSPEED, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		e := ctx.e
		if len(payload) == 0 {
			return
		}
		switch payload[0] {
		case subSEND:
			body := strconv.Itoa(e.tspeedTransmit) + "," + strconv.Itoa(e.tspeedReceive)
			e.sendSubnegotiation(OptTSPEED, append([]byte{subIS}, []byte(body)...))
		case subIS:
			parts := splitOnce(string(payload[1:]), ',')
			tx, _ := strconv.Atoi(parts[0])
			rx := tx
			if len(parts) > 1 {
				rx, _ = strconv.Atoi(parts[1])
			}
			if e.cb.onTSpeed != nil {
				e.cb.onTSpeed(tx, rx)
			}
		}
	})
}

func (tspeedHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigDO), OptTSPEED)
	}
}

func (tspeedHandler) onDisabled(e *Engine) {}

// splitOnce splits s on the first occurrence of sep, returning one or
// two parts.
func splitOnce(s string, sep byte) []string {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return []string{s[:i], s[i+1:]}
		}
	}
	return []string{s}
}
