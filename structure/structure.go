package structure

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

type atomKey struct {
	chainID   string
	residueID int
	atomName  string
}

type residueAtomKey struct {
	residueID int
	atomName  string
}

// Structure is an immutable, ordered list of atoms.
type Structure struct {
	name      string
	atoms     []Atom
	residues  []ResidueKey // first-appearance order
	resNames  map[ResidueKey]string
	byName    map[atomKey]int
	byResidue map[residueAtomKey]int
}

// New validates atoms and returns a Structure owning a copy of them.
//
// Every atom's Index must equal its position, and all atoms of one residue
// (same ChainID and ResidueID) must share a ResidueName. When a residue holds
// duplicate atom names (alternate locations), lookups resolve to the first.
func New(name string, atoms []Atom) (*Structure, error) {
	s := &Structure{
		name:      name,
		atoms:     slices.Clone(atoms),
		resNames:  make(map[ResidueKey]string),
		byName:    make(map[atomKey]int, len(atoms)),
		byResidue: make(map[residueAtomKey]int, len(atoms)),
	}

	for i, a := range s.atoms {
		if a.Index != i {
			return nil, &ErrInvalidAtomIndex{Position: i, Index: a.Index}
		}
		if !finite(a.Coord.X) || !finite(a.Coord.Y) || !finite(a.Coord.Z) {
			return nil, &ErrInvalidCoordinate{Index: i}
		}

		rk := a.Residue()
		if prev, ok := s.resNames[rk]; ok {
			if prev != a.ResidueName {
				return nil, &ErrResidueConflict{Residue: rk, Names: [2]string{prev, a.ResidueName}}
			}
		} else {
			s.resNames[rk] = a.ResidueName
			s.residues = append(s.residues, rk)
		}

		k := atomKey{chainID: a.ChainID, residueID: a.ResidueID, atomName: a.AtomName}
		if _, ok := s.byName[k]; !ok {
			s.byName[k] = i
		}
		rak := residueAtomKey{residueID: a.ResidueID, atomName: a.AtomName}
		if _, ok := s.byResidue[rak]; !ok {
			s.byResidue[rak] = i
		}
	}

	return s, nil
}

// FromAtoms builds a Structure from atoms whose Index fields are ignored and
// reassigned by position. Parsers that renumber atoms use this.
func FromAtoms(name string, atoms []Atom) (*Structure, error) {
	renumbered := slices.Clone(atoms)
	for i := range renumbered {
		renumbered[i].Index = i
	}
	return New(name, renumbered)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Name returns the structure identifier supplied at construction.
func (s *Structure) Name() string { return s.name }

// Len returns the number of atoms.
func (s *Structure) Len() int { return len(s.atoms) }

// Atom returns the atom at index i. It panics if i is out of range.
func (s *Structure) Atom(i int) Atom { return s.atoms[i] }

// All iterates over every atom in order.
func (s *Structure) All() iter.Seq2[int, Atom] {
	return func(yield func(int, Atom) bool) {
		for i, a := range s.atoms {
			if !yield(i, a) {
				return
			}
		}
	}
}

// Atoms returns a copy of the atom list.
func (s *Structure) Atoms() []Atom { return slices.Clone(s.atoms) }

// ResidueCount returns the number of distinct residues.
func (s *Structure) ResidueCount() int { return len(s.residues) }

// Residues returns the residue keys in order of first appearance.
func (s *Structure) Residues() []ResidueKey { return slices.Clone(s.residues) }

// ResidueName returns the residue name for key.
func (s *Structure) ResidueName(key ResidueKey) (string, bool) {
	n, ok := s.resNames[key]
	return n, ok
}

// Find returns the atom named atomName in residue (chainID, residueID).
func (s *Structure) Find(chainID string, residueID int, atomName string) (Atom, bool) {
	i, ok := s.byName[atomKey{chainID: chainID, residueID: residueID, atomName: atomName}]
	if !ok {
		return Atom{}, false
	}
	return s.atoms[i], true
}

// FindInResidue returns the first atom named atomName with the given residue
// id on any chain.
func (s *Structure) FindInResidue(residueID int, atomName string) (Atom, bool) {
	i, ok := s.byResidue[residueAtomKey{residueID: residueID, atomName: atomName}]
	if !ok {
		return Atom{}, false
	}
	return s.atoms[i], true
}

// Select returns the indices of all atoms satisfying pred.
func (s *Structure) Select(pred func(Atom) bool) *roaring.Bitmap {
	bm := roaring.New()
	for i, a := range s.atoms {
		if pred(a) {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Match returns a predicate selecting atoms whose residue name is in
// residueNames and whose atom name is in atomNames. A nil list matches any.
func Match(residueNames, atomNames []string) func(Atom) bool {
	return func(a Atom) bool {
		if residueNames != nil && !slices.Contains(residueNames, a.ResidueName) {
			return false
		}
		if atomNames != nil && !slices.Contains(atomNames, a.AtomName) {
			return false
		}
		return true
	}
}

// Fingerprint returns a hex digest over every atom field. Two structures
// with identical atom lists share a fingerprint regardless of name.
func (s *Structure) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	writeString := func(v string) {
		binary.LittleEndian.PutUint32(buf[:4], uint32(len(v)))
		h.Write(buf[:4])
		h.Write([]byte(v))
	}
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	for _, a := range s.atoms {
		writeString(a.ChainID)
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(a.ResidueID)))
		h.Write(buf[:])
		writeString(a.ResidueName)
		writeString(a.AtomName)
		writeString(strings.ToUpper(a.Element))
		writeFloat(a.Coord.X)
		writeFloat(a.Coord.Y)
		writeFloat(a.Coord.Z)
	}
	return hex.EncodeToString(h.Sum(nil))
}
