package telnet

import "encoding/json"

// MsdpValue is the recursive tagged union spec.md §9 asks for in place
// of the source's ad-hoc mixed-type maps: an MSDP leaf is a scalar
// string, an ARRAY_OPEN…ARRAY_CLOSE run is a list, and a
// TABLE_OPEN…TABLE_CLOSE run is a VAR-keyed map. encoding/json is the
// interchange format the MSDP and GMCP-routed-as-MSDP callbacks both
// deliver (spec.md §4.D, §9).
type MsdpValue struct {
	scalar string
	array  []MsdpValue
	table  map[string]MsdpValue
	kind   msdpKind
}

type msdpKind int

const (
	msdpScalar msdpKind = iota
	msdpArray
	msdpTable
)

func MsdpScalar(s string) MsdpValue { return MsdpValue{kind: msdpScalar, scalar: s} }

func MsdpArray(items ...MsdpValue) MsdpValue { return MsdpValue{kind: msdpArray, array: items} }

func MsdpTable(fields map[string]MsdpValue) MsdpValue {
	return MsdpValue{kind: msdpTable, table: fields}
}

func (v MsdpValue) IsScalar() bool { return v.kind == msdpScalar }
func (v MsdpValue) IsArray() bool  { return v.kind == msdpArray }
func (v MsdpValue) IsTable() bool  { return v.kind == msdpTable }

func (v MsdpValue) Scalar() string          { return v.scalar }
func (v MsdpValue) Array() []MsdpValue      { return v.array }
func (v MsdpValue) Table() map[string]MsdpValue { return v.table }

// MarshalJSON implements the spec.md §9 "JSON is the interchange
// format" rule: scalars become JSON strings, arrays become JSON
// arrays, tables become JSON objects.
func (v MsdpValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case msdpArray:
		return json.Marshal(v.array)
	case msdpTable:
		return json.Marshal(v.table)
	default:
		return json.Marshal(v.scalar)
	}
}

// MSDPModel is the caller-supplied catalogue an MSDP server side
// consults to answer LIST/REPORT/RESET/SEND/UNREPORT requests
// (spec.md §4.D, §6 "msdp_server_model"). The engine treats it as an
// opaque policy object; all bookkeeping about which variables are
// currently REPORTed lives on the Engine itself (msdpReported).
type MSDPModel interface {
	// Variables returns the names usable in a LIST VARIABLES / SEND
	// reply, and List returns the members of a named well-known list
	// (COMMANDS, LISTS, CONFIGURABLE_VARIABLES, REPORTABLE_VARIABLES,
	// REPORTED_VARIABLES, SENDABLE_VARIABLES).
	Variables() []string
	List(name string) []string
	// Value returns the current value of a named variable for a SEND
	// or REPORT reply; ok is false if the name is unknown.
	Value(name string) (MsdpValue, bool)
	// OnSend is invoked once for each known variable named in a peer's
	// REPORT request, with its value at the time the request is
	// processed. The engine records REPORTed names (UNREPORT and RESET
	// remove them) but does not call OnSend again when a value changes.
	OnSend(name string, v MsdpValue)
}
