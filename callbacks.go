package telnet

import "encoding/json"

// Callback types the engine invokes on the caller, per spec.md §6. All
// of them except Submit and Negotiate are optional — a nil callback is
// simply never invoked. They are plain function values rather than an
// interface with a back-reference to the engine, so that option
// handlers can close over caller state without the engine and its
// handlers ever needing a cyclic reference to each other (spec.md §9).

// SubmitFunc delivers one full line of user data (the trailing newline
// stripped, CR already swallowed by the framing layer).
type SubmitFunc func(data []byte, encoding string, e *Engine)

// NegotiateFunc emits one atomic outbound buffer to the transport.
type NegotiateFunc func(data []byte)

// PerByteFunc fires for every buffered user-data byte before a line is
// flushed to Submit.
type PerByteFunc func(b byte, encoding string)

// NAWSFunc reports a negotiated terminal window size, parameter order
// matching spec.md §6/§8's on_naws(height, width).
type NAWSFunc func(height, width uint16)

// TTypeFunc reports the terminal-type history and the most recently
// received entry (MTTS cycling, spec.md §4.D).
type TTypeFunc func(history []string, current string)

// GMCPFunc delivers a decoded GMCP message. info is the raw JSON that
// followed the package name on the wire.
type GMCPFunc func(pkg string, info json.RawMessage)

// MSDPFunc delivers an MSDP tree, already serialised to JSON.
type MSDPFunc func(e *Engine, jsonText []byte)

// MSSPFunc delivers a decoded MSSP variable/value mapping.
type MSSPFunc func(cfg MSSPConfig)

// CharsetChangeFunc fires after CurrentEncoding changes.
type CharsetChangeFunc func(encoding string)

// PromptFunc fires on receipt of EOR or GA (spec.md §4.D).
type PromptFunc func()

// EchoFunc reports the negotiated ECHO state (true = peer/engine is
// echoing on our behalf, per the role-appropriate RFC 857 meaning).
type EchoFunc func(enabled bool)

// CompressFunc reports MCCP2/MCCP3 compression state changes.
type CompressFunc func(option byte, enabled bool)

// AuthFunc delivers a raw AUTHENTICATION subnegotiation payload
// (RFC 2941); the engine's default policy rejects with NULL type.
type AuthFunc func(payload []byte)

// EncryptFunc delivers a raw ENCRYPT subnegotiation payload
// (RFC 2946); the engine only frames these bytes, per spec.md §1.
type EncryptFunc func(payload []byte)

// XDisplayFunc delivers the X-display-location string (RFC 1096).
type XDisplayFunc func(display string)

// TSpeedFunc delivers the terminal-speed tuple (RFC 1079).
type TSpeedFunc func(transmit, receive int)

// EnvironFunc delivers a decoded NEW-ENVIRON/ENVIRON variable set
// (RFC 1572 / RFC 1408). isNew distinguishes NEWENVIRON from ENVIRON.
type EnvironFunc func(vars map[string]string, isNew bool)

// LineModeFunc reports a LINEMODE mode-byte change (RFC 1184).
type LineModeFunc func(mode byte)

// FlowControlFunc reports a TOGGLE-FLOW-CONTROL change (RFC 1372).
type FlowControlFunc func(enabled bool)

type callbacks struct {
	submit      SubmitFunc
	negotiate   NegotiateFunc
	perByte     PerByteFunc
	onNAWS      NAWSFunc
	onTType     TTypeFunc
	onGMCP      GMCPFunc
	onMSDP      MSDPFunc
	onMSSP      MSSPFunc
	onCharset   CharsetChangeFunc
	onPrompt    PromptFunc
	onEcho      EchoFunc
	onCompress  CompressFunc
	onAuth      AuthFunc
	onEncrypt   EncryptFunc
	onXDisplay  XDisplayFunc
	onTSpeed    TSpeedFunc
	onEnviron   EnvironFunc
	onLineMode  LineModeFunc
	onFlowCtrl  FlowControlFunc
}
