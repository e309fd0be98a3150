package telnet

import "bytes"

// gmcpHandler implements the Generic MUD Communication Protocol
// (spec.md §4.D): "<package> <json>" bodies, with the documented
// routing quirk that a package literally named "MSDP" carries a raw
// MSDP-tree payload instead of JSON and is handed to the MSDP callback
// (and request interpreter) rather than the GMCP one.
type gmcpHandler struct{}

func (gmcpHandler) name() string { return "GMCP" }
func (gmcpHandler) option() byte { return OptGMCP }

func (h gmcpHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptGMCP, h.name(), nil, nil)
	offerLocalAnswer(m, OptGMCP, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptGMCP, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		e := ctx.e
		idx := bytes.IndexByte(payload, ' ')
		var pkg string
		var info []byte
		if idx < 0 {
			pkg = string(payload)
		} else {
			pkg = string(payload[:idx])
			info = payload[idx+1:]
		}
		if pkg == "MSDP" {
			e.handleMSDPPayload(info)
			return
		}
		if e.cb.onGMCP != nil {
			e.cb.onGMCP(pkg, info)
		}
	})
}

func (gmcpHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigWILL), OptGMCP)
	}
}

func (gmcpHandler) onDisabled(e *Engine) {}

// SendGMCP emits "<pkg> <info>" as a GMCP subnegotiation.
func (e *Engine) SendGMCP(pkg string, info []byte) {
	body := append([]byte(pkg+" "), info...)
	e.sendSubnegotiation(OptGMCP, body)
}
