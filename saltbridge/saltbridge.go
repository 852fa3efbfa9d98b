// Package saltbridge detects salt bridges between charged side chains.
//
// Donors are the cationic nitrogens of histidine (including its
// protonation-state aliases), lysine and arginine. Acceptors are the
// carboxylate oxygens of aspartate and glutamate. Every donor/acceptor atom
// pair closer than Distance is a bridge.
package saltbridge

import (
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/protfeat/geometry"
	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/spatial"
	"github.com/hupe1980/protfeat/structure"
)

// DonorAtoms maps cationic residue names to their charged atoms.
var DonorAtoms = map[string][]string{
	"HIS": {"ND1", "NE2"},
	"HSD": {"ND1", "NE2"},
	"HSE": {"ND1", "NE2"},
	"HSP": {"ND1", "NE2"},
	"HIE": {"ND1", "NE2"},
	"HIP": {"ND1", "NE2"},
	"HID": {"ND1", "NE2"},
	"LYS": {"NZ"},
	"ARG": {"NH1", "NH2"},
}

// AcceptorAtoms maps anionic residue names to their charged atoms.
var AcceptorAtoms = map[string][]string{
	"ASP": {"OD1", "OD2"},
	"GLU": {"OE1", "OE2"},
}

// Options configures detection.
type Options struct {
	// Distance is the exclusive upper bound on the donor-acceptor distance.
	Distance float64
	// CellListThreshold is the donor x acceptor product above which a cell
	// list replaces the direct cross product. Zero always uses the cell list.
	CellListThreshold int
}

// DefaultOptions returns the standard 4 A criterion.
func DefaultOptions() Options {
	return Options{
		Distance:          4.0,
		CellListThreshold: 1 << 14,
	}
}

// Validate checks the thresholds.
func (o Options) Validate() error {
	if !(o.Distance > 0) || math.IsInf(o.Distance, 0) {
		return interaction.InvalidOption("Distance", o.Distance)
	}
	if o.CellListThreshold < 0 {
		return interaction.InvalidOption("CellListThreshold", float64(o.CellListThreshold))
	}
	return nil
}

// Bridge is one detected salt bridge.
type Bridge struct {
	interaction.Pair
	// Distance is the donor-acceptor distance in Angstrom.
	Distance float64 `json:"distance"`
}

// Result holds the bridges of one structure.
type Result struct {
	// Bridges in canonical pair order.
	Bridges []Bridge
	// Residues is the distinct residue count of the structure.
	Residues int
}

// Pairs returns the canonical pairs of all bridges.
func (r *Result) Pairs() []interaction.Pair {
	out := make([]interaction.Pair, len(r.Bridges))
	for i, b := range r.Bridges {
		out[i] = b.Pair
	}
	return out
}

// Frequency returns bridges per residue.
func (r *Result) Frequency() float64 {
	return interaction.Frequency(len(r.Bridges), r.Residues)
}

func groupSelector(groups map[string][]string) func(structure.Atom) bool {
	return func(a structure.Atom) bool {
		names, ok := groups[a.ResidueName]
		return ok && slices.Contains(names, a.AtomName)
	}
}

var (
	isDonor    = groupSelector(DonorAtoms)
	isAcceptor = groupSelector(AcceptorAtoms)
)

// Detect finds all salt bridges in s.
func Detect(s *structure.Structure, optFns ...func(o *Options)) (*Result, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Residues: s.ResidueCount()}

	donors := s.Select(isDonor)
	acceptors := s.Select(isAcceptor)
	if donors.IsEmpty() || acceptors.IsEmpty() {
		return res, nil
	}

	var seen interaction.PairSet
	record := func(d, a int) {
		da, aa := s.Atom(d), s.Atom(a)
		dist := geometry.Distance(da.Coord, aa.Coord)
		if dist >= opts.Distance {
			return
		}
		p := interaction.PairOf(da, aa)
		if seen.Add(p) {
			res.Bridges = append(res.Bridges, Bridge{Pair: p, Distance: dist})
		}
	}

	if product := donors.GetCardinality() * acceptors.GetCardinality(); product > uint64(opts.CellListThreshold) {
		if err := viaCellList(s, donors, acceptors, opts.Distance, record); err != nil {
			return nil, err
		}
	} else {
		acc := acceptors.ToArray()
		for it := donors.Iterator(); it.HasNext(); {
			d := int(it.Next())
			for _, a := range acc {
				record(d, int(a))
			}
		}
	}

	slices.SortFunc(res.Bridges, func(a, b Bridge) int { return a.Pair.Compare(b.Pair) })
	return res, nil
}

func viaCellList(s *structure.Structure, donors, acceptors *roaring.Bitmap, dist float64, record func(d, a int)) error {
	cl, err := spatial.NewCellList(s, dist, acceptors)
	if err != nil {
		return err
	}
	for it := donors.Iterator(); it.HasNext(); {
		d := int(it.Next())
		for _, a := range cl.Query(s.Atom(d).Coord, dist) {
			record(d, a)
		}
	}
	return nil
}
