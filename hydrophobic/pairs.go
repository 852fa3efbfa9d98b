package hydrophobic

import (
	"math"
	"slices"

	"github.com/hupe1980/protfeat/geometry"
	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/spatial"
	"github.com/hupe1980/protfeat/structure"
)

var (
	// ResidueNames are the residue types considered hydrophobic.
	ResidueNames = []string{"ILE", "LEU", "VAL"}
	// AtomNames are the branching side-chain carbons considered.
	AtomNames = []string{"CB", "CG1", "CG2", "CD1", "CD2"}
)

// Options configures detection.
type Options struct {
	// Bias is added to twice the carbon van der Waals radius to form the
	// contact threshold.
	Bias float64
	// NormalizeByResidues divides SumArea by the residue count.
	NormalizeByResidues bool
}

// DefaultOptions returns the standard 1.1 A bias (4.5 A threshold).
func DefaultOptions() Options {
	return Options{Bias: 1.1}
}

// Validate checks the options.
func (o Options) Validate() error {
	if math.IsNaN(o.Bias) || math.IsInf(o.Bias, 0) || o.Threshold() <= 0 {
		return interaction.InvalidOption("Bias", o.Bias)
	}
	return nil
}

// Threshold returns the contact distance 2 x vdW(C) + Bias.
func (o Options) Threshold() float64 {
	return 2*geometry.CarbonVDWRadius + o.Bias
}

var carbonSelector = structure.Match(ResidueNames, AtomNames)

// FindPairs returns the distinct residue pairs with side-chain carbons within
// threshold of each other, in canonical order.
func FindPairs(s *structure.Structure, threshold float64) ([]interaction.ResiduePair, error) {
	sel := s.Select(carbonSelector)
	if sel.IsEmpty() {
		return nil, nil
	}

	cl, err := spatial.NewCellList(s, threshold, sel)
	if err != nil {
		return nil, err
	}

	seen := make(map[interaction.ResiduePair]struct{})
	for it := sel.Iterator(); it.HasNext(); {
		i := int(it.Next())
		a := s.Atom(i)
		for _, j := range cl.QueryAtom(i, threshold) {
			b := s.Atom(j)
			if a.Residue() == b.Residue() {
				continue
			}
			seen[interaction.NewResiduePair(interaction.ResidueRefOf(a), interaction.ResidueRefOf(b))] = struct{}{}
		}
	}

	out := make([]interaction.ResiduePair, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.SortFunc(out, interaction.ResiduePair.Compare)
	return out, nil
}
