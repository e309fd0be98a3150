package telnet

import (
	"bytes"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/encoding"
)

// Default resource budgets (spec.md §5). These are minima; builders may
// raise them but the engine always enforces a bound.
const (
	DefaultMaxBufferSize        = 5 * 1024 * 1024
	DefaultIngressQueueCapacity = 10_000
	maxSubnegBuffer             = 8 * 1024
	maxTTypeBuffer              = 1024
	maxCharsetOfferBuffer       = 1024
	maxAcceptedCharsetName      = 42
)

// optionHandler is the small, fixed interface every per-RFC option
// implements (spec.md §9): it registers its own state/trigger subgraph
// and reacts to being (de)activated. A handler with nothing to do on
// activation leaves onEnabled/onDisabled empty.
type optionHandler interface {
	name() string
	option() byte
	configure(e *Engine, m *stateMachine)
	onEnabled(e *Engine)
	onDisabled(e *Engine)
}

// Engine is the negotiation engine for a single connection. It is built
// with a Builder and driven by Feed/Run. All state-machine actions run
// sequentially on the goroutine that calls Run — see spec.md §5.
type Engine struct {
	ID    uuid.UUID
	role  Role
	state State

	machine  *stateMachine
	options  optionTable
	handlers []optionHandler
	byOption map[byte]optionHandler

	cb     callbacks
	logger *slog.Logger

	maxBufferSize int
	userBuf       []byte

	ingress    chan byte
	ingressCap int
	doneCh     chan struct{}
	closeOnce  sync.Once
	runErr     error
	decompErrCh chan error

	// generic per-option subnegotiation scratch, keyed by option byte.
	// Almost all options' bodies are "raw bytes between SB <opt> and
	// IAC SE, with standard IAC doubling" (invariant 3/4); subneg.go
	// implements that once and every option's completion callback reads
	// subBuf[opt] for its own further parsing.
	subBuf map[byte][]byte

	// charset (RFC 2066)
	currentEncoding  string
	charsetOrder     []string
	allowedEncodings map[string]bool
	charsetCompare   func(candidates []string, order []string) string
	charsetCache     *lru.Cache[string, encoding.Encoding]
	charsetSep       byte
	charsetWorking   []string
	encoders         map[string]encoding.Encoding

	// terminal type / MTTS (RFC 1091)
	ttypeHistory  []string
	ttypeSeen     map[string]bool
	clientTTypes  []string
	clientTTypeAt int

	// NAWS (RFC 1073)
	nawsWidth, nawsHeight uint16
	nawsScratch           [4]byte
	nawsScratchLen        int

	// EOR / suppress-go-ahead prompt bookkeeping (RFC 885 / RFC 858)
	eorAgreed  bool
	gaAgreed   bool // true unless SGA has been agreed (GA suppressed)
	weWillEOR  bool

	// MSDP / GMCP / MSSP
	msdpModel    MSDPModel
	msspProvider MSSPProvider
	msdpReported map[string]bool

	// MCCP2/MCCP3 (compress/zlib splice)
	mccp2Out *zlib.Writer
	mccp3Out *zlib.Writer
	mccp2In  *inboundDecompressor
	mccp3In  *inboundDecompressor

	// Echo / line mode / environ state exposed for callbacks
	echoEnabled bool
	lineMode    byte

	// X-Display / Terminal Speed (RFC 1096 / RFC 1079) local values
	// reported to the peer when asked, in client role.
	xdisplay           string
	tspeedTransmit     int
	tspeedReceive      int
}

// Builder assembles an Engine. Use NewBuilder, chain the With*/On*
// methods, then call Build.
type Builder struct {
	role             Role
	roleSet          bool
	maxBufferSize    int
	ingressCap       int
	logger           *slog.Logger
	charsetOrder     []string
	allowedEncodings []string
	msspProvider     MSSPProvider
	msdpModel        MSDPModel
	clientTTypes     []string
	xdisplay         string
	tspeedTransmit   int
	tspeedReceive    int
	cb               callbacks
}

// NewBuilder returns a Builder with spec.md §5 default resource budgets.
func NewBuilder() *Builder {
	return &Builder{
		maxBufferSize: DefaultMaxBufferSize,
		ingressCap:    DefaultIngressQueueCapacity,
	}
}

func (b *Builder) WithRole(r Role) *Builder { b.role, b.roleSet = r, true; return b }

func (b *Builder) WithMaxBufferSize(n int) *Builder { b.maxBufferSize = n; return b }

func (b *Builder) WithIngressQueueCapacity(n int) *Builder { b.ingressCap = n; return b }

func (b *Builder) WithLogger(l *slog.Logger) *Builder { b.logger = l; return b }

// WithCharsetOrder sets the preference list used to rank overlapping
// CHARSET offers (spec.md §4.D). Earlier entries are preferred.
func (b *Builder) WithCharsetOrder(order []string) *Builder { b.charsetOrder = order; return b }

// WithAllowedEncodings restricts which IANA charset names the engine
// will ever accept; nil (the default) allows every name
// golang.org/x/text/encoding/ianaindex recognises.
func (b *Builder) WithAllowedEncodings(names []string) *Builder {
	b.allowedEncodings = names
	return b
}

func (b *Builder) WithMSSPProvider(p MSSPProvider) *Builder { b.msspProvider = p; return b }

func (b *Builder) WithMSDPModel(m MSDPModel) *Builder { b.msdpModel = m; return b }

// WithClientTerminalTypes sets the cycle of terminal-type strings a
// Client-role engine advertises in response to repeated SEND requests.
func (b *Builder) WithClientTerminalTypes(types []string) *Builder {
	b.clientTTypes = types
	return b
}

// WithXDisplay sets the X-display-location string this engine reports
// when asked (RFC 1096, client role).
func (b *Builder) WithXDisplay(display string) *Builder { b.xdisplay = display; return b }

// WithTerminalSpeed sets the transmit/receive baud pair this engine
// reports when asked (RFC 1079, client role).
func (b *Builder) WithTerminalSpeed(transmit, receive int) *Builder {
	b.tspeedTransmit, b.tspeedReceive = transmit, receive
	return b
}

func (b *Builder) OnSubmit(f SubmitFunc) *Builder           { b.cb.submit = f; return b }
func (b *Builder) OnNegotiate(f NegotiateFunc) *Builder     { b.cb.negotiate = f; return b }
func (b *Builder) OnPerByte(f PerByteFunc) *Builder         { b.cb.perByte = f; return b }
func (b *Builder) OnNAWS(f NAWSFunc) *Builder               { b.cb.onNAWS = f; return b }
func (b *Builder) OnTType(f TTypeFunc) *Builder             { b.cb.onTType = f; return b }
func (b *Builder) OnGMCP(f GMCPFunc) *Builder               { b.cb.onGMCP = f; return b }
func (b *Builder) OnMSDP(f MSDPFunc) *Builder               { b.cb.onMSDP = f; return b }
func (b *Builder) OnMSSP(f MSSPFunc) *Builder               { b.cb.onMSSP = f; return b }
func (b *Builder) OnCharsetChange(f CharsetChangeFunc) *Builder { b.cb.onCharset = f; return b }
func (b *Builder) OnPrompt(f PromptFunc) *Builder           { b.cb.onPrompt = f; return b }
func (b *Builder) OnEcho(f EchoFunc) *Builder               { b.cb.onEcho = f; return b }
func (b *Builder) OnCompress(f CompressFunc) *Builder       { b.cb.onCompress = f; return b }
func (b *Builder) OnAuth(f AuthFunc) *Builder               { b.cb.onAuth = f; return b }
func (b *Builder) OnEncrypt(f EncryptFunc) *Builder         { b.cb.onEncrypt = f; return b }
func (b *Builder) OnXDisplay(f XDisplayFunc) *Builder       { b.cb.onXDisplay = f; return b }
func (b *Builder) OnTSpeed(f TSpeedFunc) *Builder           { b.cb.onTSpeed = f; return b }
func (b *Builder) OnEnviron(f EnvironFunc) *Builder         { b.cb.onEnviron = f; return b }
func (b *Builder) OnLineMode(f LineModeFunc) *Builder       { b.cb.onLineMode = f; return b }
func (b *Builder) OnFlowControl(f FlowControlFunc) *Builder { b.cb.onFlowCtrl = f; return b }

// Build validates the configuration and returns a ready-to-run Engine.
func (b *Builder) Build() (*Engine, error) {
	if !b.roleSet {
		return nil, errors.New("telnet: role must be set via WithRole")
	}
	if b.cb.submit == nil {
		return nil, errors.New("telnet: OnSubmit callback is required")
	}
	if b.cb.negotiate == nil {
		return nil, errors.New("telnet: OnNegotiate callback is required")
	}

	cache, err := lru.New[string, encoding.Encoding](64)
	if err != nil {
		return nil, fmt.Errorf("telnet: building charset cache: %w", err)
	}

	e := &Engine{
		ID:               uuid.New(),
		role:             b.role,
		state:            StateAccepting,
		options:          optionTable{},
		cb:               b.cb,
		logger:           b.logger,
		maxBufferSize:    b.maxBufferSize,
		ingressCap:       b.ingressCap,
		ingress:          make(chan byte, b.ingressCap),
		doneCh:           make(chan struct{}),
		decompErrCh:      make(chan error, 2),
		subBuf:           make(map[byte][]byte),
		currentEncoding:  "US-ASCII",
		charsetOrder:     b.charsetOrder,
		charsetCache:     cache,
		encoders:         make(map[string]encoding.Encoding),
		ttypeSeen:        make(map[string]bool),
		clientTTypes:     b.clientTTypes,
		msdpModel:        b.msdpModel,
		msspProvider:     b.msspProvider,
		msdpReported:     make(map[string]bool),
		nawsWidth:        78,
		nawsHeight:       24,
		gaAgreed:         true,
		byOption:         make(map[byte]optionHandler),
		xdisplay:         b.xdisplay,
		tspeedTransmit:   b.tspeedTransmit,
		tspeedReceive:    b.tspeedReceive,
	}
	if e.logger == nil {
		e.logger = defaultLogger()
	}
	if b.allowedEncodings != nil {
		e.allowedEncodings = make(map[string]bool, len(b.allowedEncodings))
		for _, n := range b.allowedEncodings {
			e.allowedEncodings[n] = true
		}
	}

	e.handlers = defaultOptionHandlers()
	for _, h := range e.handlers {
		e.byOption[h.option()] = h
	}

	e.machine = newStateMachine()
	configureFraming(e.machine)
	for _, h := range e.handlers {
		h.configure(e, e.machine)
	}
	configureSafetyNet(e.machine)

	return e, nil
}

// Run starts the consumer loop and the deferred initial negotiations
// (spec.md §3 "Lifecycle"), blocking until ctx is cancelled, the
// ingress queue is closed, or a hard error occurs. It returns the
// terminal error, or nil for a clean, caller-cancelled shutdown.
func (e *Engine) Run(ctx context.Context) error {
	e.logInfo("negotiation engine starting")
	for _, h := range e.handlers {
		h.onEnabled(e)
	}
	defer func() {
		e.closeOnce.Do(func() { close(e.doneCh) })
		e.logInfo("negotiation engine stopped")
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-e.ingress:
			if !ok {
				return e.runErr
			}
			e.safeFire(Trigger(b), b)
			if e.runErr != nil {
				return e.runErr
			}
		case <-e.doneCh:
			return e.runErr
		case err := <-e.decompErrCh:
			e.handleDecompressError(err)
		}
	}
}

// safeFire recovers from a panicking callback (a class-3 hard error,
// spec.md §7) so that one misbehaving caller callback cannot corrupt
// the consumer loop's bookkeeping; it logs at Error level and ends the
// connection, matching "logged at critical severity and propagated as
// task termination" from spec.md §7.
func (e *Engine) safeFire(trig Trigger, b byte) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("telnet: callback panic: %v", r)
			e.logCritical("connection aborted by callback panic", "error", err)
			e.runErr = err
			e.closeOnce.Do(func() { close(e.doneCh) })
		}
	}()
	e.machine.Fire(e, trig, b)
}

// Close requests the consumer loop stop and releases resources held
// for compression splicing. Safe to call more than once.
func (e *Engine) Close() {
	e.closeOnce.Do(func() { close(e.doneCh) })
	if e.mccp2In != nil {
		e.mccp2In.close()
	}
	if e.mccp3In != nil {
		e.mccp3In.close()
	}
}

// Done returns a channel closed once the consumer loop has stopped.
func (e *Engine) Done() <-chan struct{} { return e.doneCh }

func (e *Engine) handleDecompressError(err error) {
	e.logWarn("mccp decompression failed, disabling compression", "error", err)
	if e.mccp2In != nil {
		e.sendWont(OptMCCP2)
		e.mccp2In = nil
	}
	if e.mccp3In != nil {
		e.sendWont(OptMCCP3)
		e.mccp3In = nil
	}
}

// send writes an outbound buffer atomically via the negotiate
// callback, routing through the active MCCP2 or MCCP3 compressor if the
// engine has started compressing its own outbound stream.
func (e *Engine) send(data []byte) {
	out := e.mccp2Out
	if out == nil {
		out = e.mccp3Out
	}
	if out != nil {
		// The zlib writer emits its header and each flushed block as
		// separate writes; collect them so one compressed message still
		// reaches the transport as a single negotiate call.
		var buf bytes.Buffer
		negotiate := e.cb.negotiate
		e.cb.negotiate = func(p []byte) { buf.Write(p) }
		out.Write(data)
		out.Flush()
		e.cb.negotiate = negotiate
		if negotiate != nil && buf.Len() > 0 {
			negotiate(buf.Bytes())
		}
		return
	}
	if e.cb.negotiate != nil {
		e.cb.negotiate(data)
	}
}

func (e *Engine) sendCommand(cmd, opt byte) {
	e.send([]byte{byte(TrigIAC), cmd, opt})
}

func (e *Engine) sendWill(opt byte)  { e.sendCommand(byte(TrigWILL), opt) }
func (e *Engine) sendWont(opt byte)  { e.sendCommand(byte(TrigWONT), opt) }
func (e *Engine) sendDo(opt byte)    { e.sendCommand(byte(TrigDO), opt) }
func (e *Engine) sendDont(opt byte)  { e.sendCommand(byte(TrigDONT), opt) }

// sendSubnegotiation frames payload as IAC SB opt <escaped payload> IAC SE.
func (e *Engine) sendSubnegotiation(opt byte, payload []byte) {
	var buf bytes.Buffer
	buf.WriteByte(byte(TrigIAC))
	buf.WriteByte(byte(TrigSB))
	buf.WriteByte(opt)
	buf.Write(TelnetSafe(payload))
	buf.WriteByte(byte(TrigIAC))
	buf.WriteByte(byte(TrigSE))
	e.send(buf.Bytes())
}
