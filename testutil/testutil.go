package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/golang/geo/r3"

	"github.com/hupe1980/protfeat/structure"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Cloud returns n points uniformly distributed in the cube [0, box)^3.
func (r *RNG) Cloud(n int, box float64) []r3.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]r3.Vector, n)
	for i := range pts {
		pts[i] = r.pointLocked(box)
	}
	return pts
}

func (r *RNG) pointLocked(box float64) r3.Vector {
	return r3.Vector{
		X: r.rand.Float64() * box,
		Y: r.rand.Float64() * box,
		Z: r.rand.Float64() * box,
	}
}

// residueTemplates lists the atoms generated per residue type. Only atoms
// that some detector selects are included.
var residueTemplates = map[string][]string{
	"ALA": {"N", "CA", "C", "O", "CB"},
	"GLY": {"N", "CA", "C", "O"},
	"CYS": {"N", "CA", "C", "O", "CB", "SG"},
	"ILE": {"N", "CA", "C", "O", "CB", "CG1", "CG2", "CD1"},
	"LEU": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2"},
	"VAL": {"N", "CA", "C", "O", "CB", "CG1", "CG2"},
	"LYS": {"N", "CA", "C", "O", "CB", "NZ"},
	"ARG": {"N", "CA", "C", "O", "CB", "NH1", "NH2"},
	"HIS": {"N", "CA", "C", "O", "CB", "ND1", "NE2"},
	"ASP": {"N", "CA", "C", "O", "CB", "OD1", "OD2"},
	"GLU": {"N", "CA", "C", "O", "CB", "OE1", "OE2"},
	"SER": {"N", "CA", "C", "O", "CB", "OG"},
}

// ResidueNames returns the residue types Protein draws from.
func ResidueNames() []string {
	return []string{"ALA", "GLY", "CYS", "ILE", "LEU", "VAL", "LYS", "ARG", "HIS", "ASP", "GLU", "SER"}
}

// Protein generates a random single-chain structure of nResidues residues
// whose centers are uniform in [0, box)^3. Each residue's atoms scatter
// within 2.5 A of its center. Coordinates carry no chemical meaning.
func (r *RNG) Protein(name string, nResidues int, box float64) *structure.Structure {
	names := ResidueNames()

	r.mu.Lock()
	b := NewBuilder(name)
	for i := range nResidues {
		resName := names[r.rand.Intn(len(names))]
		center := r.pointLocked(box)
		b.Residue("A", i+1, resName)
		for _, atomName := range residueTemplates[resName] {
			off := r3.Vector{
				X: (r.rand.Float64()*2 - 1) * 2.5,
				Y: (r.rand.Float64()*2 - 1) * 2.5,
				Z: (r.rand.Float64()*2 - 1) * 2.5,
			}
			p := center.Add(off)
			b.Atom(atomName, p.X, p.Y, p.Z)
		}
	}
	r.mu.Unlock()

	return b.Build()
}

// Builder assembles structures atom by atom.
type Builder struct {
	name    string
	atoms   []structure.Atom
	chain   string
	resID   int
	resName string
}

// NewBuilder creates an empty builder.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Residue starts a new residue; subsequent atoms belong to it.
func (b *Builder) Residue(chainID string, residueID int, residueName string) *Builder {
	b.chain, b.resID, b.resName = chainID, residueID, residueName
	return b
}

// Atom appends an atom to the current residue.
func (b *Builder) Atom(atomName string, x, y, z float64) *Builder {
	b.atoms = append(b.atoms, structure.Atom{
		Index:       len(b.atoms),
		ChainID:     b.chain,
		ResidueID:   b.resID,
		ResidueName: b.resName,
		AtomName:    atomName,
		Coord:       r3.Vector{X: x, Y: y, Z: z},
	})
	return b
}

// Element sets the element of the most recently added atom.
func (b *Builder) Element(element string) *Builder {
	if n := len(b.atoms); n > 0 {
		b.atoms[n-1].Element = element
	}
	return b
}

// Atoms returns a copy of the atoms added so far.
func (b *Builder) Atoms() []structure.Atom {
	out := make([]structure.Atom, len(b.atoms))
	copy(out, b.atoms)
	return out
}

// Build returns the structure. It panics on invalid input, which in tests
// always indicates a broken fixture.
func (b *Builder) Build() *structure.Structure {
	s, err := structure.New(b.name, b.atoms)
	if err != nil {
		panic(fmt.Errorf("testutil: invalid fixture %q: %w", b.name, err))
	}
	return s
}

// WithinRadius returns, by exhaustive scan, the selected atoms within radius
// (inclusive) of center in ascending order. A nil selection selects all.
func WithinRadius(s *structure.Structure, selection *roaring.Bitmap, center r3.Vector, radius float64) []int {
	var out []int
	for i, a := range s.All() {
		if selection != nil && !selection.Contains(uint32(i)) {
			continue
		}
		if a.Coord.Sub(center).Norm2() <= radius*radius {
			out = append(out, i)
		}
	}
	return out
}
