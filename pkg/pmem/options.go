package pmem

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/pmemops/pkg/log"
)

// FatalReporter receives errors the process cannot continue past, such as a
// flush reaching an instruction the CPU lacks. Implementations are expected
// not to return; if one does, the operation that reported is abandoned.
type FatalReporter interface {
	Fatal(err error)
}

// FatalReporterFunc adapts a function to FatalReporter.
type FatalReporterFunc func(err error)

func (f FatalReporterFunc) Fatal(err error) { f(err) }

// exitReporter logs through zerolog and exits with status 1.
type exitReporter struct {
	logger zerolog.Logger
}

func (r exitReporter) Fatal(err error) {
	r.logger.Fatal().Err(err).Msg("persistence cannot be guaranteed")
}

func newExitReporter() exitReporter {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return exitReporter{logger: zerolog.New(output).With().Timestamp().Logger()}
}

// Option configures a backend at construction.
type Option func(*options)

type options struct {
	caps           *Capabilities
	logger         log.Logger
	fatal          FatalReporter
	skipValidation bool
	streamingTail  bool
}

// WithCapabilities replaces runtime detection with caps.
func WithCapabilities(caps Capabilities) Option {
	return func(o *options) {
		o.caps = &caps
	}
}

// WithLogger sets the trace sink. Each flush, fence and copy is logged at
// trace level. Without it nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFatalReporter replaces the default reporter, which logs and exits.
func WithFatalReporter(r FatalReporter) Option {
	return func(o *options) {
		o.fatal = r
	}
}

// WithSkipValidation constructs the backend even when the CPU lacks an
// instruction it needs. The first call that reaches that instruction is
// reported to the FatalReporter instead.
func WithSkipValidation() Option {
	return func(o *options) {
		o.skipValidation = true
	}
}

// WithStreamingTail lets StreamingWrite accept lengths that are not a
// multiple of 4. The last 1 to 3 bytes are stored normally and written back
// with the backend's flush instruction.
func WithStreamingTail() Option {
	return func(o *options) {
		o.streamingTail = true
	}
}

// requirement is an instruction a backend cannot work without.
type requirement struct {
	instruction string
	available   bool
}

// base is the state shared by every backend. It is never modified after
// construction.
type base struct {
	kind  Kind
	caps  Capabilities
	trace log.Logger // nil when tracing is off
	fatal FatalReporter
	tail  bool
}

func newBase(kind Kind, opts []Option, reqs func(Capabilities) []requirement) (base, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	caps := DetectCapabilities()
	if o.caps != nil {
		caps = *o.caps
	}

	b := base{
		kind:  kind,
		caps:  caps,
		fatal: o.fatal,
		tail:  o.streamingTail,
	}
	if !log.IsNoop(o.logger) {
		b.trace = o.logger
	}
	if b.fatal == nil {
		b.fatal = newExitReporter()
	}

	if reqs != nil {
		for _, r := range reqs(caps) {
			if r.available {
				continue
			}
			err := &HardwareError{Backend: kind, Instruction: r.instruction}
			if !o.skipValidation {
				return base{}, err
			}
			if o.logger != nil {
				o.logger.Warn("backend constructed without a required instruction",
					log.String("backend", kind.String()),
					log.String("instruction", r.instruction))
			}
		}
	}

	if o.logger != nil {
		o.logger.Debug("persistence backend ready",
			log.String("backend", kind.String()),
			log.Any("capabilities", caps.Instructions()))
	}
	return b, nil
}

// Kind identifies the backend.
func (b *base) Kind() Kind {
	return b.kind
}

// Capabilities returns the capabilities the backend was built against.
func (b *base) Capabilities() Capabilities {
	return b.caps
}

// unsupported reports a missing instruction reached at call time.
func (b *base) unsupported(instruction string) {
	b.fatal.Fatal(&HardwareError{Backend: b.kind, Instruction: instruction})
}
