package hbond

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/protfeat/geometry"
	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/structure"
)

// Triplet indexes a donor, its hydrogen and an acceptor in a protonated
// structure.
type Triplet struct {
	Donor    int `json:"donor"`
	Hydrogen int `json:"hydrogen"`
	Acceptor int `json:"acceptor"`
}

// Protonator adds hydrogens to a heavy-atom structure.
// Implementations must honor ctx cancellation.
type Protonator interface {
	AddHydrogens(ctx context.Context, s *structure.Structure) (*structure.Structure, error)
}

// ProtonatorFunc adapts a function to Protonator.
type ProtonatorFunc func(ctx context.Context, s *structure.Structure) (*structure.Structure, error)

// AddHydrogens calls f(ctx, s).
func (f ProtonatorFunc) AddHydrogens(ctx context.Context, s *structure.Structure) (*structure.Structure, error) {
	return f(ctx, s)
}

// Geometry finds hydrogen bond triplets in a protonated structure.
type Geometry interface {
	FindHBonds(ctx context.Context, s *structure.Structure) ([]Triplet, error)
}

// GeometryFunc adapts a function to Geometry.
type GeometryFunc func(ctx context.Context, s *structure.Structure) ([]Triplet, error)

// FindHBonds calls f(ctx, s).
func (f GeometryFunc) FindHBonds(ctx context.Context, s *structure.Structure) ([]Triplet, error) {
	return f(ctx, s)
}

// DefaultProtonationTimeout bounds a single AddHydrogens call.
const DefaultProtonationTimeout = 5 * time.Minute

// Options configures a Detector.
type Options struct {
	// ProtonationTimeout bounds AddHydrogens. Zero disables the bound.
	ProtonationTimeout time.Duration
}

// DefaultOptions returns the default detector options.
func DefaultOptions() Options {
	return Options{ProtonationTimeout: DefaultProtonationTimeout}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.ProtonationTimeout < 0 {
		return fmt.Errorf("%w: ProtonationTimeout=%s", interaction.ErrInvalidOptions, o.ProtonationTimeout)
	}
	return nil
}

// HBond is one detected hydrogen bond between two heavy atoms of the original
// structure.
type HBond struct {
	interaction.Pair
	// Distance is the hydrogen-acceptor distance in Angstrom.
	Distance float64 `json:"distance"`
	// Angle is the donor-hydrogen-acceptor angle in degrees.
	Angle float64 `json:"angle"`
}

// Result holds the hydrogen bonds of one structure.
type Result struct {
	// Bonds are the deduplicated donor/acceptor pairs in canonical order.
	Bonds []HBond
	// Triplets is the number of triplets the geometry reported.
	Triplets int
	// Unmapped counts triplets whose donor or acceptor has no counterpart in
	// the original structure.
	Unmapped int
	// Residues is the distinct residue count of the original structure.
	Residues int
}

// Pairs returns the canonical donor/acceptor pairs.
func (r *Result) Pairs() []interaction.Pair {
	out := make([]interaction.Pair, len(r.Bonds))
	for i, b := range r.Bonds {
		out[i] = b.Pair
	}
	return out
}

// Frequency returns distinct donor/acceptor pairs per residue.
func (r *Result) Frequency() float64 {
	return interaction.Frequency(len(r.Bonds), r.Residues)
}

// TripletFrequency returns raw triplets per residue. A donor bonded through
// several hydrogens counts once per hydrogen.
func (r *Result) TripletFrequency() float64 {
	return interaction.Frequency(r.Triplets, r.Residues)
}

// Detector runs protonation followed by geometry on each structure.
// It is safe for concurrent use if its boundaries are.
type Detector struct {
	protonator Protonator
	geometry   Geometry
	opts       Options
}

// NewDetector creates a Detector. A nil geometry selects BakerHubbard with
// default criteria.
func NewDetector(p Protonator, g Geometry, optFns ...func(o *Options)) (*Detector, error) {
	if p == nil {
		return nil, ErrNoProtonator
	}
	if g == nil {
		g = NewBakerHubbard()
	}

	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Detector{protonator: p, geometry: g, opts: opts}, nil
}

// Options returns the detector options.
func (d *Detector) Options() Options { return d.opts }

// Detect protonates s, finds hydrogen bonds and maps them back onto s.
// Boundary failures are returned as *ProtonationError or *GeometryError.
func (d *Detector) Detect(ctx context.Context, s *structure.Structure) (*Result, error) {
	protonated, err := d.protonate(ctx, s)
	if err != nil {
		return nil, err
	}

	triplets, err := d.geometry.FindHBonds(ctx, protonated)
	if err != nil {
		return nil, &GeometryError{Structure: s.Name(), cause: err}
	}

	res := &Result{
		Triplets: len(triplets),
		Residues: s.ResidueCount(),
	}

	best := make(map[interaction.Pair]HBond)
	for _, t := range triplets {
		bond, ok := mapTriplet(s, protonated, t)
		if !ok {
			res.Unmapped++
			continue
		}
		if prev, seen := best[bond.Pair]; seen && prev.Distance <= bond.Distance {
			continue
		}
		best[bond.Pair] = bond
	}

	res.Bonds = make([]HBond, 0, len(best))
	for _, b := range best {
		res.Bonds = append(res.Bonds, b)
	}
	slices.SortFunc(res.Bonds, func(a, b HBond) int { return a.Pair.Compare(b.Pair) })
	return res, nil
}

func (d *Detector) protonate(ctx context.Context, s *structure.Structure) (*structure.Structure, error) {
	pctx := ctx
	if d.opts.ProtonationTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, d.opts.ProtonationTimeout)
		defer cancel()
	}

	protonated, err := d.protonator.AddHydrogens(pctx, s)
	if err == nil && protonated == nil {
		err = errors.New("protonator returned no structure")
	}
	if err != nil {
		timeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(pctx.Err(), context.DeadlineExceeded)
		return nil, &ProtonationError{Structure: s.Name(), Timeout: timeout, cause: err}
	}
	return protonated, nil
}

// mapTriplet resolves the donor and acceptor of t in orig by chain, residue
// id and atom name, falling back to residue id and atom name.
func mapTriplet(orig, protonated *structure.Structure, t Triplet) (HBond, bool) {
	n := protonated.Len()
	for _, i := range [3]int{t.Donor, t.Hydrogen, t.Acceptor} {
		if i < 0 || i >= n {
			return HBond{}, false
		}
	}

	donor, ok := lookup(orig, protonated.Atom(t.Donor))
	if !ok {
		return HBond{}, false
	}
	acceptor, ok := lookup(orig, protonated.Atom(t.Acceptor))
	if !ok || donor.Index == acceptor.Index {
		return HBond{}, false
	}

	d, h, a := protonated.Atom(t.Donor).Coord, protonated.Atom(t.Hydrogen).Coord, protonated.Atom(t.Acceptor).Coord
	return HBond{
		Pair:     interaction.PairOf(donor, acceptor),
		Distance: geometry.Distance(h, a),
		Angle:    geometry.Degrees(geometry.Angle(d, h, a)),
	}, true
}

func lookup(orig *structure.Structure, a structure.Atom) (structure.Atom, bool) {
	if m, ok := orig.Find(a.ChainID, a.ResidueID, a.AtomName); ok {
		return m, true
	}
	return orig.FindInResidue(a.ResidueID, a.AtomName)
}
