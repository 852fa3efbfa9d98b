// Package disulfide detects disulfide bonds between cysteine SG atoms.
//
// A candidate SG-SG pair is accepted when its distance lies within
// Distance +/- DistanceTol and the absolute CB-SG-SG-CB dihedral lies within
// Dihedral +/- DihedralTol. Candidates are found with a cell list so only
// nearby sulfur atoms are ever compared.
package disulfide

import (
	"math"
	"slices"

	"github.com/hupe1980/protfeat/geometry"
	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/spatial"
	"github.com/hupe1980/protfeat/structure"
)

// ExtendedDistanceTol is the distance tolerance used in extended mode for
// atypical, strained bonds.
const ExtendedDistanceTol = 3.0

// Options configures detection.
type Options struct {
	// Distance is the ideal SG-SG bond length in Angstrom.
	Distance float64
	// DistanceTol is the allowed deviation from Distance.
	DistanceTol float64
	// Dihedral is the ideal |CB-SG-SG-CB| dihedral in degrees.
	Dihedral float64
	// DihedralTol is the allowed deviation from Dihedral in degrees.
	DihedralTol float64
	// ExtendedTolerance replaces DistanceTol with ExtendedDistanceTol.
	ExtendedTolerance bool
}

// DefaultOptions returns the standard geometric criteria.
func DefaultOptions() Options {
	return Options{
		Distance:    2.05,
		DistanceTol: 0.05,
		Dihedral:    90,
		DihedralTol: 15,
	}
}

// Validate checks that every threshold is usable.
func (o Options) Validate() error {
	switch {
	case !(o.Distance > 0) || math.IsInf(o.Distance, 0):
		return interaction.InvalidOption("Distance", o.Distance)
	case !(o.DistanceTol >= 0) || math.IsInf(o.DistanceTol, 0):
		return interaction.InvalidOption("DistanceTol", o.DistanceTol)
	case math.IsNaN(o.Dihedral) || math.IsInf(o.Dihedral, 0):
		return interaction.InvalidOption("Dihedral", o.Dihedral)
	case !(o.DihedralTol >= 0) || math.IsInf(o.DihedralTol, 0):
		return interaction.InvalidOption("DihedralTol", o.DihedralTol)
	}
	return nil
}

func (o Options) effectiveTol() float64 {
	if o.ExtendedTolerance {
		return ExtendedDistanceTol
	}
	return o.DistanceTol
}

// Bond is one detected disulfide bond.
type Bond struct {
	interaction.Pair
	// Distance is the SG-SG distance in Angstrom.
	Distance float64 `json:"distance"`
	// Dihedral is |CB-SG-SG-CB| in degrees.
	Dihedral float64 `json:"dihedral"`
}

// Result holds the bonds of one structure.
type Result struct {
	// Bonds in canonical pair order.
	Bonds []Bond
	// Skipped lists residues whose CB was missing for some candidate.
	Skipped []interaction.MalformedResidue
	// Residues is the distinct residue count of the structure.
	Residues int
}

// Pairs returns the canonical pairs of all bonds.
func (r *Result) Pairs() []interaction.Pair {
	out := make([]interaction.Pair, len(r.Bonds))
	for i, b := range r.Bonds {
		out[i] = b.Pair
	}
	return out
}

// Frequency returns bonds per residue.
func (r *Result) Frequency() float64 {
	return interaction.Frequency(len(r.Bonds), r.Residues)
}

var sulfurSelector = structure.Match([]string{"CYS"}, []string{"SG"})

// Detect finds all disulfide bonds in s.
func Detect(s *structure.Structure, optFns ...func(o *Options)) (*Result, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tol := opts.effectiveTol()
	radius := opts.Distance + tol
	minDist := opts.Distance - tol
	minDihed, maxDihed := opts.Dihedral-opts.DihedralTol, opts.Dihedral+opts.DihedralTol

	res := &Result{Residues: s.ResidueCount()}

	sel := s.Select(sulfurSelector)
	if sel.IsEmpty() {
		return res, nil
	}

	cl, err := spatial.NewCellList(s, radius, sel)
	if err != nil {
		return nil, err
	}

	var (
		seen      = make(map[[2]structure.ResidueKey]struct{})
		malformed interaction.MalformedSet
	)

	for it := sel.Iterator(); it.HasNext(); {
		i := int(it.Next())
		sg1 := s.Atom(i)

		for _, j := range cl.QueryAtom(i, radius) {
			// Each unordered pair is evaluated from its lower index.
			if j < i {
				continue
			}
			sg2 := s.Atom(j)
			if sg1.Residue() == sg2.Residue() {
				continue
			}

			cb1, ok1 := s.Find(sg1.ChainID, sg1.ResidueID, "CB")
			cb2, ok2 := s.Find(sg2.ChainID, sg2.ResidueID, "CB")
			if !ok1 {
				malformed.Add(interaction.MalformedResidue{Residue: sg1.Residue(), Missing: "CB"})
			}
			if !ok2 {
				malformed.Add(interaction.MalformedResidue{Residue: sg2.Residue(), Missing: "CB"})
			}
			if !ok1 || !ok2 {
				continue
			}

			dist := geometry.Distance(sg1.Coord, sg2.Coord)
			if dist < minDist || dist > radius {
				continue
			}

			dihed := math.Abs(geometry.Degrees(geometry.Dihedral(cb1.Coord, sg1.Coord, sg2.Coord, cb2.Coord)))
			if dihed < minDihed || dihed > maxDihed {
				continue
			}

			// Alternate locations of one SG must not bond the same residues twice.
			rp := residuePair(sg1, sg2)
			if _, dup := seen[rp]; dup {
				continue
			}
			seen[rp] = struct{}{}
			res.Bonds = append(res.Bonds, Bond{Pair: interaction.PairOf(sg1, sg2), Distance: dist, Dihedral: dihed})
		}
	}

	slices.SortFunc(res.Bonds, func(a, b Bond) int { return a.Pair.Compare(b.Pair) })
	res.Skipped = malformed.Items()
	return res, nil
}

func residuePair(a, b structure.Atom) [2]structure.ResidueKey {
	x, y := a.Residue(), b.Residue()
	if y.ChainID < x.ChainID || (y.ChainID == x.ChainID && y.ResidueID < x.ResidueID) {
		x, y = y, x
	}
	return [2]structure.ResidueKey{x, y}
}
