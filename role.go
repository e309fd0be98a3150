package telnet

// Role fixes whether an Engine behaves as a Telnet server or client.
// It is immutable after Build() (spec.md §3, "Connection context").
type Role int

const (
	// Server offers its supported options unsolicited, exactly once,
	// at start; it otherwise only answers peer-initiated subnegotiations.
	Server Role = iota
	// Client only answers peer offers, except Terminal Type, which it
	// advertises willingness for and answers when queried.
	Client
)

func (r Role) String() string {
	switch r {
	case Server:
		return "server"
	case Client:
		return "client"
	default:
		return "unknown"
	}
}
