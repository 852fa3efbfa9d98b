package structure

import "fmt"

// ErrInvalidAtomIndex indicates an atom whose Index does not match its position.
type ErrInvalidAtomIndex struct {
	Position int
	Index    int
}

func (e *ErrInvalidAtomIndex) Error() string {
	return fmt.Sprintf("atom at position %d has index %d", e.Position, e.Index)
}

// ErrResidueConflict indicates two atoms of one residue disagreeing on its name.
type ErrResidueConflict struct {
	Residue ResidueKey
	Names   [2]string
}

func (e *ErrResidueConflict) Error() string {
	return fmt.Sprintf("residue %s has conflicting names %q and %q", e.Residue, e.Names[0], e.Names[1])
}

// ErrInvalidCoordinate indicates a NaN or infinite coordinate component.
type ErrInvalidCoordinate struct {
	Index int
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("atom %d has a non-finite coordinate", e.Index)
}
