package interaction

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hupe1980/protfeat/structure"
)

// Endpoint is one side of an interaction.
type Endpoint struct {
	AtomIndex int `json:"atom_index"`
	ResidueID int `json:"residue_id"`
}

// EndpointOf returns the endpoint for a.
func EndpointOf(a structure.Atom) Endpoint {
	return Endpoint{AtomIndex: a.Index, ResidueID: a.ResidueID}
}

// Compare orders endpoints by atom index, then residue id.
func (e Endpoint) Compare(o Endpoint) int {
	if c := cmp.Compare(e.AtomIndex, o.AtomIndex); c != 0 {
		return c
	}
	return cmp.Compare(e.ResidueID, o.ResidueID)
}

// Pair is an unordered pair of endpoints in canonical order (A <= B).
type Pair struct {
	A Endpoint `json:"a"`
	B Endpoint `json:"b"`
}

// NewPair returns the canonical pair of x and y.
func NewPair(x, y Endpoint) Pair {
	if x.Compare(y) > 0 {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// PairOf returns the canonical pair of two atoms.
func PairOf(x, y structure.Atom) Pair {
	return NewPair(EndpointOf(x), EndpointOf(y))
}

// Compare orders pairs lexicographically by A, then B.
func (p Pair) Compare(o Pair) int {
	if c := p.A.Compare(o.A); c != 0 {
		return c
	}
	return p.B.Compare(o.B)
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d/%d, %d/%d)", p.A.AtomIndex, p.A.ResidueID, p.B.AtomIndex, p.B.ResidueID)
}

// PairSet deduplicates canonical pairs. The zero value is ready to use.
type PairSet struct {
	seen map[Pair]struct{}
}

// Add inserts p and reports whether it was new.
func (s *PairSet) Add(p Pair) bool {
	if s.seen == nil {
		s.seen = make(map[Pair]struct{})
	}
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	return true
}

// Contains reports whether p was added.
func (s *PairSet) Contains(p Pair) bool {
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of distinct pairs.
func (s *PairSet) Len() int { return len(s.seen) }

// Sorted returns the pairs in canonical order.
func (s *PairSet) Sorted() []Pair {
	out := make([]Pair, 0, len(s.seen))
	for p := range s.seen {
		out = append(out, p)
	}
	slices.SortFunc(out, Pair.Compare)
	return out
}

// ResidueRef identifies a residue together with its name.
type ResidueRef struct {
	ChainID     string `json:"chain_id"`
	ResidueID   int    `json:"residue_id"`
	ResidueName string `json:"residue_name"`
}

// ResidueRefOf returns the residue reference of a.
func ResidueRefOf(a structure.Atom) ResidueRef {
	return ResidueRef{ChainID: a.ChainID, ResidueID: a.ResidueID, ResidueName: a.ResidueName}
}

// Key returns the structure-level residue key.
func (r ResidueRef) Key() structure.ResidueKey {
	return structure.ResidueKey{ChainID: r.ChainID, ResidueID: r.ResidueID}
}

// Compare orders residues by chain, then residue id.
func (r ResidueRef) Compare(o ResidueRef) int {
	if c := cmp.Compare(r.ChainID, o.ChainID); c != 0 {
		return c
	}
	return cmp.Compare(r.ResidueID, o.ResidueID)
}

// ResiduePair is an unordered residue-level pair in canonical order.
type ResiduePair struct {
	A ResidueRef `json:"a"`
	B ResidueRef `json:"b"`
}

// NewResiduePair returns the canonical pair of x and y.
func NewResiduePair(x, y ResidueRef) ResiduePair {
	if x.Compare(y) > 0 {
		x, y = y, x
	}
	return ResiduePair{A: x, B: y}
}

// Compare orders residue pairs lexicographically.
func (p ResiduePair) Compare(o ResiduePair) int {
	if c := p.A.Compare(o.A); c != 0 {
		return c
	}
	return p.B.Compare(o.B)
}
