package protfeat

import (
	"context"
	"fmt"
	"runtime/debug"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/protfeat/disulfide"
	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/hydrophobic"
	"github.com/hupe1980/protfeat/internal/pool"
	"github.com/hupe1980/protfeat/saltbridge"
	"github.com/hupe1980/protfeat/structure"
)

// Analyzer computes the interaction features of structures.
// It is safe for concurrent use if its protonator and geometry are.
type Analyzer struct {
	opts  options
	hbond *hbond.Detector
	pool  *pool.WorkerPool
}

// New creates an Analyzer. Detector options are validated up front.
func New(optFns ...Option) (*Analyzer, error) {
	opts := applyOptions(optFns)

	kinds := make([]Kind, 0, len(opts.kinds))
	for _, k := range opts.kinds {
		if k < 0 || int(k) >= numKinds {
			return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidOptions, int(k))
		}
		if !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	slices.Sort(kinds)
	opts.kinds = kinds

	if err := validate(disulfide.DefaultOptions(), opts.disulfide); err != nil {
		return nil, fmt.Errorf("disulfide: %w", err)
	}
	if err := validate(saltbridge.DefaultOptions(), opts.saltBridge); err != nil {
		return nil, fmt.Errorf("salt bridge: %w", err)
	}
	if err := validate(hydrophobic.DefaultOptions(), opts.hydrophobic); err != nil {
		return nil, fmt.Errorf("hydrophobic: %w", err)
	}
	if err := validate(hbond.DefaultOptions(), opts.hbond); err != nil {
		return nil, fmt.Errorf("hydrogen bond: %w", err)
	}

	a := &Analyzer{opts: opts}

	if opts.protonator != nil && slices.Contains(kinds, KindHydrogenBond) {
		d, err := hbond.NewDetector(opts.protonator, opts.geometry, opts.hbond...)
		if err != nil {
			return nil, fmt.Errorf("hydrogen bond: %w", err)
		}
		a.hbond = d
	}

	a.pool = pool.NewWorkerPool(opts.workers)

	return a, nil
}

func validate[O interface{ Validate() error }](o O, optFns []func(*O)) error {
	for _, fn := range optFns {
		fn(&o)
	}
	return o.Validate()
}

// Kinds returns the selected kinds in canonical order.
func (a *Analyzer) Kinds() []Kind {
	return slices.Clone(a.opts.kinds)
}

// Analyze runs the selected detectors on s concurrently.
//
// A detector failure never fails the call: the kind is marked StateFailed in
// Report.Status with a *FeatureError and the other kinds keep their results.
// Analyze only returns an error for a nil structure or a done context.
func (a *Analyzer) Analyze(ctx context.Context, s *structure.Structure) (*Report, error) {
	if s == nil {
		return nil, ErrNilStructure
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger := a.opts.logger.WithStructure(s.Name())

	r := &Report{
		Structure: s.Name(),
		Residues:  s.ResidueCount(),
		Status:    make(map[Kind]Status, numKinds),
	}

	var statuses [numKinds]Status
	for i := range statuses {
		statuses[i] = Status{State: StateSkipped}
	}

	var g errgroup.Group
	for _, k := range a.opts.kinds {
		if k == KindHydrogenBond && a.hbond == nil {
			statuses[k] = Status{State: StateSkipped, Err: ErrNoProtonator}
			continue
		}
		g.Go(func() error {
			statuses[k] = a.detect(ctx, logger, s, r, k)
			return nil
		})
	}
	_ = g.Wait()

	for _, k := range Kinds() {
		r.Status[k] = statuses[k]
	}
	r.Duration = time.Since(start)

	a.opts.metricsCollector.RecordAnalysis(r.Duration, r.Failed())
	logger.LogAnalysis(ctx, r)

	return r, nil
}

// detect runs the detector of kind k and stores its result in r. Each kind
// writes only its own field of r.
func (a *Analyzer) detect(ctx context.Context, logger *Logger, s *structure.Structure, r *Report, k Kind) Status {
	start := time.Now()

	count, err := recoverDetector(func() (int, error) {
		switch k {
		case KindDisulfide:
			res, err := disulfide.Detect(s, a.opts.disulfide...)
			if err != nil {
				return 0, err
			}
			r.Disulfide = res
			return len(res.Bonds), nil
		case KindSaltBridge:
			res, err := saltbridge.Detect(s, a.opts.saltBridge...)
			if err != nil {
				return 0, err
			}
			r.SaltBridge = res
			return len(res.Bridges), nil
		case KindHydrophobic:
			res, err := hydrophobic.Detect(s, a.opts.hydrophobic...)
			if err != nil {
				return 0, err
			}
			r.Hydrophobic = res
			return len(res.ResiduePairs), nil
		case KindHydrogenBond:
			res, err := a.hbond.Detect(ctx, s)
			if err != nil {
				return 0, err
			}
			r.HydrogenBond = res
			return len(res.Bonds), nil
		default:
			return 0, fmt.Errorf("%w: unknown kind %d", ErrInvalidOptions, int(k))
		}
	})

	duration := time.Since(start)
	err = translateError(s.Name(), k, err)

	logger.LogDetection(ctx, k, count, duration, err)
	a.opts.metricsCollector.RecordDetection(k, duration, err)

	if err != nil {
		return Status{State: StateFailed, Err: err}
	}
	return Status{State: StateOK}
}

func recoverDetector(fn func() (int, error)) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrDetectorPanic, r, debug.Stack())
		}
	}()
	return fn()
}
