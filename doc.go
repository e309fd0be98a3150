// Package telnet implements the Telnet wire protocol (RFC 854 and its
// option suite) plus the MUD-community extensions layered on top of it
// (GMCP, MSDP, MSSP, MCCP, MTTS, MNES). It is a negotiation engine only:
// it does not open sockets, does not know about any particular MUD's
// game state, and does not decide policy for option handlers that need
// caller-supplied data (MSSP server info, the MSDP variable store, the
// X-display string, the terminal-speed tuple). Callers feed it bytes
// from whatever transport they have and receive callbacks for user
// data, outbound negotiation buffers, and decoded option events.
//
// An Engine is built with a Builder, configured with a Role and a set
// of callbacks, and then run with Feed/Run against a context. It is not
// safe for concurrent use by multiple goroutines other than the one
// driving its consumer loop; see Engine for details.
package telnet
