package protfeat

import (
	"log/slog"
	"time"

	"github.com/hupe1980/protfeat/codec"
	"github.com/hupe1980/protfeat/disulfide"
	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/hydrophobic"
	"github.com/hupe1980/protfeat/saltbridge"
)

type options struct {
	kinds            []Kind
	codec            codec.Codec
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
	protonator       hbond.Protonator
	geometry         hbond.Geometry
	disulfide        []func(*disulfide.Options)
	saltBridge       []func(*saltbridge.Options)
	hydrophobic      []func(*hydrophobic.Options)
	hbond            []func(*hbond.Options)
}

// Option configures an Analyzer.
type Option func(*options)

// WithKinds restricts analysis to the given kinds. Kinds not listed are
// reported as StateSkipped. Passing no kinds selects all of them.
func WithKinds(kinds ...Kind) Option {
	return func(o *options) {
		o.kinds = kinds
	}
}

// WithCodec configures the codec used by Analyzer.Encode.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithWorkers sets the number of structures Scan analyzes in parallel.
// n <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithProtonator configures the tool that adds hydrogens before hydrogen-bond
// detection. Without it the hydrogen-bond kind is skipped.
//
// Example:
//
//	p, _ := protonate.NewPDB2PQR(protonate.DefaultConfig())
//	a, _ := protfeat.New(protfeat.WithProtonator(p))
func WithProtonator(p hbond.Protonator) Option {
	return func(o *options) {
		o.protonator = p
	}
}

// WithGeometry replaces the default Baker-Hubbard hydrogen-bond criterion.
func WithGeometry(g hbond.Geometry) Option {
	return func(o *options) {
		o.geometry = g
	}
}

// WithProtonationTimeout bounds each protonation call. Zero disables the bound.
func WithProtonationTimeout(d time.Duration) Option {
	return func(o *options) {
		o.hbond = append(o.hbond, func(ho *hbond.Options) {
			ho.ProtonationTimeout = d
		})
	}
}

// WithDisulfideOptions configures the disulfide detector.
//
// Example:
//
//	protfeat.WithDisulfideOptions(func(o *disulfide.Options) {
//	    o.ExtendedTolerance = true
//	})
func WithDisulfideOptions(optFns ...func(*disulfide.Options)) Option {
	return func(o *options) {
		o.disulfide = append(o.disulfide, optFns...)
	}
}

// WithSaltBridgeOptions configures the salt-bridge detector.
func WithSaltBridgeOptions(optFns ...func(*saltbridge.Options)) Option {
	return func(o *options) {
		o.saltBridge = append(o.saltBridge, optFns...)
	}
}

// WithHydrophobicOptions configures hydrophobic contacts and clustering.
func WithHydrophobicOptions(optFns ...func(*hydrophobic.Options)) Option {
	return func(o *options) {
		o.hydrophobic = append(o.hydrophobic, optFns...)
	}
}

// WithHBondOptions configures the hydrogen-bond detector.
func WithHBondOptions(optFns ...func(*hbond.Options)) Option {
	return func(o *options) {
		o.hbond = append(o.hbond, optFns...)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &protfeat.BasicMetricsCollector{}
//	a, _ := protfeat.New(protfeat.WithMetricsCollector(metrics))
//	// ... use a ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := protfeat.NewJSONLogger(slog.LevelInfo)
//	a, _ := protfeat.New(protfeat.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if len(o.kinds) == 0 {
		o.kinds = Kinds()
	}
	return o
}
