package telnet

import (
	"bytes"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// charsetHandler implements RFC 2066 CHARSET negotiation. The side
// that receives DO becomes the requester (spec.md §4.D): it sends its
// own candidate list and waits for ACCEPTED/REJECTED; the side that
// receives a REQUEST answers it regardless of role, since CHARSET's
// subnegotiation grammar is symmetric.
type charsetHandler struct{}

func (charsetHandler) name() string { return "CHARSET" }
func (charsetHandler) option() byte { return OptCHARSET }

func (h charsetHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptCHARSET, h.name(), nil, nil)
	offerLocalAnswer(m, OptCHARSET, h.name(), func(e *Engine) {
		e.sendCharsetRequest()
	}, nil)

	// The generic accumulator is capped at the larger of the two
	// resource budgets spec.md §5 names for this option (the 1 KiB
	// offer buffer); the 42 B accepted-name budget is enforced
	// separately in onComplete when that subcommand is the one seen.
	registerSubnegotiationBody(m, OptCHARSET, h.name(), maxCharsetOfferBuffer, func(ctx *actionContext, payload []byte) {
		e := ctx.e
		if len(payload) == 0 {
			return
		}
		switch payload[0] {
		case subREQUEST:
			e.handleCharsetRequest(payload[1:])
		case subACCEPTED:
			name := string(payload[1:])
			if len(name) > maxAcceptedCharsetName {
				name = name[:maxAcceptedCharsetName]
			}
			e.currentEncoding = name
			if e.cb.onCharset != nil {
				e.cb.onCharset(name)
			}
		case subREJECTED:
			e.logDebug("peer rejected charset proposal")
		}
	})
}

func (charsetHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigDO), OptCHARSET)
	}
}

func (charsetHandler) onDisabled(e *Engine) {}

// sendCharsetRequest issues REQUEST;<list> with the engine's own
// candidate names, becoming the requester side of the exchange.
func (e *Engine) sendCharsetRequest() {
	e.charsetSep = ';'
	candidates := e.charsetCandidates()
	var buf bytes.Buffer
	buf.WriteByte(subREQUEST)
	buf.WriteByte(e.charsetSep)
	for i, c := range candidates {
		if i > 0 {
			buf.WriteByte(e.charsetSep)
		}
		buf.WriteString(c)
	}
	e.sendSubnegotiation(OptCHARSET, buf.Bytes())
}

// charsetCandidates is the working list offered when this engine is
// the requester: the caller's AllowedEncodings if set, else a minimal
// default every ianaindex build recognises.
func (e *Engine) charsetCandidates() []string {
	if len(e.allowedEncodings) > 0 {
		names := make([]string, 0, len(e.allowedEncodings))
		for n := range e.allowedEncodings {
			names = append(names, n)
		}
		sort.Strings(names)
		return names
	}
	return []string{"UTF-8", "US-ASCII"}
}

// handleCharsetRequest answers a peer's REQUEST with ACCEPTED <name>
// or REJECTED, per spec.md §4.D's filter-then-rank policy.
func (e *Engine) handleCharsetRequest(body []byte) {
	if len(body) == 0 {
		e.sendSubnegotiation(OptCHARSET, []byte{subREJECTED})
		return
	}
	sep := body[0]
	var candidates []string
	for _, tok := range bytes.Split(body[1:], []byte{sep}) {
		if len(tok) == 0 {
			continue
		}
		candidates = append(candidates, string(tok))
	}
	chosen, ok := e.resolveCharset(candidates)
	if !ok {
		e.sendSubnegotiation(OptCHARSET, []byte{subREJECTED})
		return
	}
	e.currentEncoding = chosen
	if e.cb.onCharset != nil {
		e.cb.onCharset(chosen)
	}
	e.sendSubnegotiation(OptCHARSET, append([]byte{subACCEPTED}, []byte(chosen)...))
}

// resolveCharset filters candidates against AllowedEncodings (when
// set) and against what golang.org/x/text/encoding/ianaindex actually
// resolves, then ranks survivors by CharsetOrder if given, else
// alphabetically, and returns the winner.
func (e *Engine) resolveCharset(candidates []string) (string, bool) {
	var survivors []string
	for _, c := range candidates {
		if e.allowedEncodings != nil && !e.allowedEncodings[c] {
			continue
		}
		if _, ok := e.resolveEncoding(c); !ok {
			continue
		}
		survivors = append(survivors, c)
	}
	if len(survivors) == 0 {
		return "", false
	}
	for _, pref := range e.charsetOrder {
		for _, s := range survivors {
			if strings.EqualFold(s, pref) {
				return s, true
			}
		}
	}
	sort.Strings(survivors)
	return survivors[0], true
}

// resolveEncoding resolves and caches an IANA charset name, bounded by
// a bounded LRU cache (spec.md §3.6) so repeated negotiations across
// reconnects don't re-walk the IANA index every time.
func (e *Engine) resolveEncoding(name string) (encoding.Encoding, bool) {
	if enc, ok := e.charsetCache.Get(name); ok {
		return enc, enc != nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		e.charsetCache.Add(name, nil)
		return nil, false
	}
	e.charsetCache.Add(name, enc)
	return enc, true
}
