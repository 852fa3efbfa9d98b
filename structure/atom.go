package structure

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/golang/geo/r3"
)

// Atom is a single atom record.
type Atom struct {
	// Index is the stable 0-based position within the owning Structure.
	Index int
	// ChainID identifies the polymer chain (e.g. "A").
	ChainID string
	// ResidueID is the residue sequence number.
	ResidueID int
	// ResidueName is the 3-letter residue code (e.g. "CYS").
	ResidueName string
	// AtomName is the PDB atom name (e.g. "SG", "CB").
	AtomName string
	// Element is the chemical element symbol. Optional; see ElementSymbol.
	Element string
	// Coord is the Cartesian position in Angstrom.
	Coord r3.Vector
}

// ResidueKey identifies a residue within a structure.
type ResidueKey struct {
	ChainID   string
	ResidueID int
}

func (k ResidueKey) String() string {
	return fmt.Sprintf("%s:%d", k.ChainID, k.ResidueID)
}

// Residue returns the key of the residue the atom belongs to.
func (a Atom) Residue() ResidueKey {
	return ResidueKey{ChainID: a.ChainID, ResidueID: a.ResidueID}
}

// ElementSymbol returns the element, inferring it from the atom name when
// Element is empty. PDB atom names start with the element symbol for the
// elements found in proteins, optionally preceded by a digit ("1HB").
func (a Atom) ElementSymbol() string {
	if a.Element != "" {
		return strings.ToUpper(a.Element)
	}
	name := strings.TrimLeftFunc(a.AtomName, unicode.IsDigit)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1])
}

// IsHydrogen reports whether the atom is a hydrogen (or deuterium).
func (a Atom) IsHydrogen() bool {
	e := a.ElementSymbol()
	return e == "H" || e == "D"
}

func (a Atom) String() string {
	return fmt.Sprintf("%s:%s%d:%s#%d", a.ChainID, a.ResidueName, a.ResidueID, a.AtomName, a.Index)
}
