package telnet

// Trigger is the tagged value that drives every state transition. Most
// triggers are just the wire byte being classified — a telnet command
// octet or an option code — cast directly into a Trigger so that "the
// byte is the trigger" needs no translation table. One synthetic value
// above 0xFF exists for conditions that are not a single wire byte: the
// catch-all "any other byte" trigger (TrigAny).
type Trigger int

// Telnet command triggers (op_command). These double as the raw wire
// byte value, so classifying an incoming command byte is just a cast.
const (
	TrigSE   Trigger = 240 // Subnegotiation End
	TrigNOP  Trigger = 241 // No Operation
	TrigEOR  Trigger = 239 // End Of Record (IAC EOR)
	TrigGA   Trigger = 249 // Go Ahead
	TrigSB   Trigger = 250 // Subnegotiation Begin
	TrigWILL Trigger = 251
	TrigWONT Trigger = 252
	TrigDO   Trigger = 253
	TrigDONT Trigger = 254
	TrigIAC  Trigger = 255
)

// Plain-data triggers relevant to the ReadingCharacters/Accepting frame.
const (
	TrigCR Trigger = 0x0D
	TrigLF Trigger = 0x0A
)

// TrigAny is the synthetic catch-all trigger for any byte that is not
// otherwise classified in the current state — ordinary user data in
// ReadingCharacters, or an unrecognised option code elsewhere. Its
// value is chosen well above the 0-255 byte range so it can never
// collide with a Trigger built from an incoming wire byte. Per-option
// subnegotiation bodies (IS/SEND/ACCEPTED/REJECTED, MSDP's VAR/VAL/
// TABLE/ARRAY markers) are parsed as plain bytes once the body has been
// accumulated (subneg.go), rather than reclassified as Triggers, since
// nothing in that parsing runs through the state machine itself.
const TrigAny Trigger = 0x1000

// optTrigger classifies a telnet option code (e.g. OptNAWS) as a
// Trigger. Options and commands never collide: every command trigger
// above is >= 239, and the only standard option code in that range is
// EXOPL (255), which aliases IAC and has no handler or constant in
// this engine.
func optTrigger(opt byte) Trigger { return Trigger(opt) }
