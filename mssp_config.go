package telnet

// MSSPConfig is a decoded MSSP var/value mapping (spec.md §4.D): the
// well-known fields the MUD Server Status Protocol defines, plus an
// Extended bag for anything else. Multi-valued variables (a VAR
// followed by more than one VAL) round-trip as a []string in Extended;
// single-valued ones round-trip as a plain string, preserving source
// multiplicity per spec.md §8's round-trip property.
type MSSPConfig struct {
	Name      string
	Players   int
	MaxPlayers int
	Uptime    int64
	Extended  map[string]any
}

// MSSPProvider supplies the server-side MSSP payload (spec.md §6
// "mssp_config_provider"); the engine treats it as opaque policy.
type MSSPProvider interface {
	MSSP() MSSPConfig
}
