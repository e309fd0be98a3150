package telnet

import "bytes"

// msdpHandler implements the MUD Server Data Protocol's nested
// VAR/VAL/TABLE/ARRAY grammar (spec.md §4.D) plus the server-side
// request interpreter for LIST/REPORT/RESET/SEND/UNREPORT spec.md §9
// resolves against a caller-supplied MSDPModel.
type msdpHandler struct{}

func (msdpHandler) name() string { return "MSDP" }
func (msdpHandler) option() byte { return OptMSDP }

func (h msdpHandler) configure(e *Engine, m *stateMachine) {
	acceptRemoteOffer(m, OptMSDP, h.name(), nil, nil)
	offerLocalAnswer(m, OptMSDP, h.name(), nil, nil)

	registerSubnegotiationBody(m, OptMSDP, h.name(), maxSubnegBuffer, func(ctx *actionContext, payload []byte) {
		ctx.e.handleMSDPPayload(payload)
	})
}

func (msdpHandler) onEnabled(e *Engine) {
	if e.role == Server {
		offerUnsolicited(e, byte(TrigDO), OptMSDP)
	}
}

func (msdpHandler) onDisabled(e *Engine) {}

// handleMSDPPayload parses an MSDP body into its tree, delivers the
// JSON form to the caller, and — in server role, with a model
// configured — interprets any LIST/REPORT/RESET/SEND/UNREPORT command
// variables at the top level.
func (e *Engine) handleMSDPPayload(payload []byte) {
	tree := parseMSDPTree(payload)
	if e.cb.onMSDP != nil {
		if j, err := msdpJSON(tree); err == nil {
			e.cb.onMSDP(e, j)
		}
	}
	if e.role == Server && e.msdpModel != nil {
		e.interpretMSDPRequests(tree)
	}
}

func (e *Engine) interpretMSDPRequests(tree map[string]MsdpValue) {
	for cmd, v := range tree {
		switch cmd {
		case "LIST":
			e.msdpHandleList(v)
		case "REPORT":
			e.msdpHandleReport(v)
		case "UNREPORT":
			e.msdpHandleUnreport(v)
		case "SEND":
			e.msdpHandleSend(v)
		case "RESET":
			e.msdpHandleReset(v)
		}
	}
}

func msdpNames(v MsdpValue) []string {
	switch {
	case v.IsScalar():
		if v.Scalar() == "" {
			return nil
		}
		return []string{v.Scalar()}
	case v.IsArray():
		names := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			if item.IsScalar() {
				names = append(names, item.Scalar())
			}
		}
		return names
	default:
		return nil
	}
}

func (e *Engine) msdpHandleList(v MsdpValue) {
	for _, listName := range msdpNames(v) {
		var items []string
		if listName == "VARIABLES" {
			items = e.msdpModel.Variables()
		} else {
			items = e.msdpModel.List(listName)
		}
		arr := make([]MsdpValue, 0, len(items))
		for _, it := range items {
			arr = append(arr, MsdpScalar(it))
		}
		e.SendMSDPVar(listName, MsdpArray(arr...))
	}
}

func (e *Engine) msdpHandleReport(v MsdpValue) {
	for _, name := range msdpNames(v) {
		val, ok := e.msdpModel.Value(name)
		if !ok {
			continue
		}
		e.msdpReported[name] = true
		e.msdpModel.OnSend(name, val)
	}
}

func (e *Engine) msdpHandleUnreport(v MsdpValue) {
	for _, name := range msdpNames(v) {
		delete(e.msdpReported, name)
	}
}

func (e *Engine) msdpHandleSend(v MsdpValue) {
	for _, name := range msdpNames(v) {
		if val, ok := e.msdpModel.Value(name); ok {
			e.SendMSDPVar(name, val)
		}
	}
}

func (e *Engine) msdpHandleReset(v MsdpValue) {
	names := msdpNames(v)
	if len(names) == 0 {
		e.msdpReported = make(map[string]bool)
		return
	}
	for _, name := range names {
		delete(e.msdpReported, name)
	}
}

// SendMSDPVar emits one VAR name VAL value pair as an MSDP
// subnegotiation. Exported so a caller's MSDPModel.OnSend can push an
// updated value to the wire when its own backing data changes.
func (e *Engine) SendMSDPVar(name string, v MsdpValue) {
	e.sendSubnegotiation(OptMSDP, encodeMSDPVar(name, v))
}

func encodeMSDPVar(name string, v MsdpValue) []byte {
	var buf bytes.Buffer
	buf.WriteByte(msdpVar)
	buf.WriteString(name)
	buf.WriteByte(msdpVal)
	buf.Write(encodeMSDPValue(v))
	return buf.Bytes()
}

func encodeMSDPValue(v MsdpValue) []byte {
	switch {
	case v.IsArray():
		var buf bytes.Buffer
		buf.WriteByte(msdpArrayOpen)
		for _, item := range v.Array() {
			buf.WriteByte(msdpVal)
			buf.Write(encodeMSDPValue(item))
		}
		buf.WriteByte(msdpArrayClose)
		return buf.Bytes()
	case v.IsTable():
		var buf bytes.Buffer
		buf.WriteByte(msdpTableOpen)
		for name, val := range v.Table() {
			buf.WriteByte(msdpVar)
			buf.WriteString(name)
			buf.WriteByte(msdpVal)
			buf.Write(encodeMSDPValue(val))
		}
		buf.WriteByte(msdpTableClose)
		return buf.Bytes()
	default:
		return []byte(v.Scalar())
	}
}

// msdpScanner walks a parsed-free MSDP body one control byte at a time.
type msdpScanner struct {
	data []byte
	pos  int
}

func (s *msdpScanner) peek() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos], true
}

func (s *msdpScanner) next() (byte, bool) {
	b, ok := s.peek()
	if ok {
		s.pos++
	}
	return b, ok
}

func isMsdpControl(b byte) bool {
	switch b {
	case msdpVar, msdpVal, msdpTableOpen, msdpTableClose, msdpArrayOpen, msdpArrayClose:
		return true
	}
	return false
}

func (s *msdpScanner) readLiteral() []byte {
	start := s.pos
	for s.pos < len(s.data) && !isMsdpControl(s.data[s.pos]) {
		s.pos++
	}
	return s.data[start:s.pos]
}

// parseValue parses one VAL's content: an array, a table, or a bare
// scalar literal (spec.md §4.D, §9's MsdpValue union).
func (s *msdpScanner) parseValue() MsdpValue {
	b, ok := s.peek()
	if !ok {
		return MsdpScalar("")
	}
	switch b {
	case msdpArrayOpen:
		s.next()
		var items []MsdpValue
		for {
			next, ok := s.peek()
			if !ok || next == msdpArrayClose {
				break
			}
			if next == msdpVal {
				s.next()
			}
			items = append(items, s.parseValue())
		}
		if next, ok := s.peek(); ok && next == msdpArrayClose {
			s.next()
		}
		return MsdpArray(items...)
	case msdpTableOpen:
		s.next()
		fields := make(map[string]MsdpValue)
		for {
			next, ok := s.peek()
			if !ok || next == msdpTableClose {
				break
			}
			if next == msdpVar {
				s.next()
			}
			name := string(s.readLiteral())
			if next, ok := s.peek(); ok && next == msdpVal {
				s.next()
			}
			fields[name] = s.parseValue()
		}
		if next, ok := s.peek(); ok && next == msdpTableClose {
			s.next()
		}
		return MsdpTable(fields)
	default:
		return MsdpScalar(string(s.readLiteral()))
	}
}

// parseMSDPTree parses a full MSDP body into its root VAR/VAL map.
func parseMSDPTree(payload []byte) map[string]MsdpValue {
	s := &msdpScanner{data: payload}
	root := make(map[string]MsdpValue)
	for {
		b, ok := s.peek()
		if !ok || b != msdpVar {
			break
		}
		s.next()
		name := string(s.readLiteral())
		if next, ok := s.peek(); ok && next == msdpVal {
			s.next()
		}
		root[name] = s.parseValue()
	}
	return root
}

func msdpJSON(tree map[string]MsdpValue) ([]byte, error) {
	return MsdpTable(tree).MarshalJSON()
}
