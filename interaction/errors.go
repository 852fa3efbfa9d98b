package interaction

import (
	"errors"
	"fmt"

	"github.com/hupe1980/protfeat/structure"
)

var (
	// ErrMalformedResidue matches every MalformedResidue.
	ErrMalformedResidue = errors.New("malformed residue")

	// ErrInvalidMode is returned by ParseMode for unknown modes.
	ErrInvalidMode = errors.New("invalid output mode")

	// ErrInvalidOptions is wrapped by detector option validation failures.
	ErrInvalidOptions = errors.New("invalid detector options")
)

// MalformedResidue records a residue lacking an atom a detector needed.
// Detectors skip the affected candidate and report it; it never aborts a run.
type MalformedResidue struct {
	Residue structure.ResidueKey `json:"residue"`
	Missing string               `json:"missing"`
}

func (e MalformedResidue) Error() string {
	return fmt.Sprintf("residue %s lacks atom %s", e.Residue, e.Missing)
}

// Is makes errors.Is(e, ErrMalformedResidue) true.
func (e MalformedResidue) Is(target error) bool {
	return target == ErrMalformedResidue
}

// MalformedSet collects MalformedResidue values once per (residue, atom).
type MalformedSet struct {
	seen  map[MalformedResidue]struct{}
	items []MalformedResidue
}

// Add records m if not yet present.
func (s *MalformedSet) Add(m MalformedResidue) {
	if s.seen == nil {
		s.seen = make(map[MalformedResidue]struct{})
	}
	if _, ok := s.seen[m]; ok {
		return
	}
	s.seen[m] = struct{}{}
	s.items = append(s.items, m)
}

// Items returns the recorded residues in insertion order.
func (s *MalformedSet) Items() []MalformedResidue {
	return s.items
}

// InvalidOption returns an error wrapping ErrInvalidOptions.
func InvalidOption(field string, value float64) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidOptions, field, value)
}
