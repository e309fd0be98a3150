package telnet

// Telnet option codes, adapted from the teacher's Opt* table
// (network/telnet.go) and extended with the MUD-community options
// spec.md §3 lists that the teacher never negotiated (CHARSET, MSDP,
// GMCP, MCCP3, TOGGLEFLOWCONTROL).
const (
	OptECHO           byte = 1
	OptSGA            byte = 3 // Suppress Go Ahead
	OptSTATUS         byte = 5
	OptTTYPE          byte = 24
	OptEOR            byte = 25
	OptNAWS           byte = 31
	OptTSPEED         byte = 32
	OptFLOWCONTROL    byte = 33
	OptLINEMODE       byte = 34
	OptXDISPLOC       byte = 35
	OptENVIRON        byte = 36
	OptAUTHENTICATION byte = 37
	OptENCRYPT        byte = 38
	OptNEWENVIRON     byte = 39
	OptCHARSET        byte = 42
	OptMSDP           byte = 69
	OptMSSP           byte = 70
	OptMCCP2          byte = 86
	OptMCCP3          byte = 87
	OptGMCP           byte = 201
)

// Option-internal subnegotiation bytes, shared by more than one handler
// and therefore kept here rather than duplicated per option_*.go.
const (
	subIS       byte = 0
	subSEND     byte = 1
	subREPLY    byte = 2
	subREQUEST  byte = 1
	subACCEPTED byte = 2
	subREJECTED byte = 3

	msdpVar        byte = 1
	msdpVal        byte = 2
	msdpTableOpen  byte = 3
	msdpTableClose byte = 4
	msdpArrayOpen  byte = 5
	msdpArrayClose byte = 6
)
