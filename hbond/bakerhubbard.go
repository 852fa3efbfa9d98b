package hbond

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/protfeat/geometry"
	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/spatial"
	"github.com/hupe1980/protfeat/structure"
)

// BakerHubbard finds hydrogen bonds with the Baker-Hubbard criterion: the
// hydrogen-acceptor distance and the donor-hydrogen-acceptor angle.
type BakerHubbard struct {
	// MaxDistance is the largest H...A distance in Angstrom.
	MaxDistance float64
	// MinAngle is the smallest D-H...A angle in degrees.
	MinAngle float64
	// BondLength is the largest covalent D-H distance used to assign each
	// hydrogen to its donor.
	BondLength float64
	// DonorElements and AcceptorElements list the element symbols allowed on
	// either side.
	DonorElements    []string
	AcceptorElements []string
}

// NewBakerHubbard returns the criterion with the common defaults of
// H...A <= 2.5 A and D-H...A >= 120 deg over N, O and S.
func NewBakerHubbard() *BakerHubbard {
	return &BakerHubbard{
		MaxDistance:      2.5,
		MinAngle:         120,
		BondLength:       1.5,
		DonorElements:    []string{"N", "O", "S"},
		AcceptorElements: []string{"N", "O", "S"},
	}
}

// Validate checks the criterion.
func (b *BakerHubbard) Validate() error {
	switch {
	case !(b.MaxDistance > 0) || math.IsInf(b.MaxDistance, 0):
		return interaction.InvalidOption("MaxDistance", b.MaxDistance)
	case !(b.MinAngle >= 0 && b.MinAngle <= 180):
		return interaction.InvalidOption("MinAngle", b.MinAngle)
	case !(b.BondLength > 0) || math.IsInf(b.BondLength, 0):
		return interaction.InvalidOption("BondLength", b.BondLength)
	}
	return nil
}

// FindHBonds returns the triplets of s sorted by donor, hydrogen, acceptor.
// Hydrogens without a donor within BondLength in the same residue are
// ignored.
func (b *BakerHubbard) FindHBonds(ctx context.Context, s *structure.Structure) ([]Triplet, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	donors := s.Select(func(a structure.Atom) bool {
		return slices.Contains(b.DonorElements, a.ElementSymbol())
	})
	acceptors := s.Select(func(a structure.Atom) bool {
		return slices.Contains(b.AcceptorElements, a.ElementSymbol())
	})
	hydrogens := s.Select(structure.Atom.IsHydrogen)
	if donors.IsEmpty() || acceptors.IsEmpty() || hydrogens.IsEmpty() {
		return nil, nil
	}

	donorIndex, err := spatial.NewCellList(s, b.BondLength, donors)
	if err != nil {
		return nil, fmt.Errorf("donor index: %w", err)
	}
	acceptorIndex, err := spatial.NewCellList(s, b.MaxDistance, acceptors)
	if err != nil {
		return nil, fmt.Errorf("acceptor index: %w", err)
	}

	minAngle := geometry.Radians(b.MinAngle)

	var out []Triplet
	n := 0
	for it := hydrogens.Iterator(); it.HasNext(); n++ {
		if n%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		h := int(it.Next())
		hAtom := s.Atom(h)

		donor, ok := nearestDonor(s, donorIndex, hAtom, b.BondLength)
		if !ok {
			continue
		}
		dCoord := s.Atom(donor).Coord

		for _, a := range acceptorIndex.Query(hAtom.Coord, b.MaxDistance) {
			if a == donor {
				continue
			}
			if geometry.Angle(dCoord, hAtom.Coord, s.Atom(a).Coord) < minAngle {
				continue
			}
			out = append(out, Triplet{Donor: donor, Hydrogen: h, Acceptor: a})
		}
	}

	slices.SortFunc(out, func(x, y Triplet) int {
		if x.Donor != y.Donor {
			return x.Donor - y.Donor
		}
		if x.Hydrogen != y.Hydrogen {
			return x.Hydrogen - y.Hydrogen
		}
		return x.Acceptor - y.Acceptor
	})
	return out, nil
}

func nearestDonor(s *structure.Structure, index *spatial.CellList, h structure.Atom, bondLength float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for _, i := range index.Query(h.Coord, bondLength) {
		d := s.Atom(i)
		if d.Residue() != h.Residue() {
			continue
		}
		if dist := geometry.SquaredDistance(d.Coord, h.Coord); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best, best >= 0
}
