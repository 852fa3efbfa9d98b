package protonate

import (
	"context"
	"sync/atomic"

	"github.com/golang/geo/r3"

	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/structure"
	"github.com/hupe1980/protfeat/testutil"
)

func heavy() *structure.Structure {
	return testutil.NewBuilder("heavy").
		Residue("A", 1, "SER").Atom("N", 0, 0, 0).Atom("OG", 1.5, 0, 0).
		Residue("A", 2, "ASP").Atom("OD1", 4, 0, 0).
		Build()
}

// counting adds one hydrogen to the first atom and counts calls.
type counting struct {
	calls atomic.Int64
}

var _ hbond.Protonator = (*counting)(nil)

func (c *counting) AddHydrogens(_ context.Context, s *structure.Structure) (*structure.Structure, error) {
	c.calls.Add(1)

	atoms := s.Atoms()
	first := atoms[0]
	atoms = append(atoms, structure.Atom{
		Index:       len(atoms),
		ChainID:     first.ChainID,
		ResidueID:   first.ResidueID,
		ResidueName: first.ResidueName,
		AtomName:    "H",
		Element:     "H",
		Coord:       first.Coord.Add(r3.Vector{X: 0, Y: 1.01, Z: 0}),
	})
	return structure.New(s.Name(), atoms)
}
