package interaction

import (
	"fmt"
	"strings"
)

// Kind is an interaction class.
type Kind int

const (
	KindDisulfide Kind = iota
	KindSaltBridge
	KindHydrophobic
	KindHydrogenBond
)

// Kinds returns every interaction kind in canonical order.
func Kinds() []Kind {
	return []Kind{KindDisulfide, KindSaltBridge, KindHydrophobic, KindHydrogenBond}
}

func (k Kind) String() string {
	switch k {
	case KindDisulfide:
		return "disulfide"
	case KindSaltBridge:
		return "salt_bridge"
	case KindHydrophobic:
		return "hydrophobic"
	case KindHydrogenBond:
		return "hydrogen_bond"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Mode selects the output of a detector: the raw canonical pairs, or the
// number of interactions per residue.
type Mode int

const (
	ModePairs Mode = iota
	ModeFrequency
)

func (m Mode) String() string {
	switch m {
	case ModePairs:
		return "pairs"
	case ModeFrequency:
		return "frequency"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode parses "pairs" or "frequency".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pairs", "bonds":
		return ModePairs, nil
	case "frequency":
		return ModeFrequency, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Frequency returns count per residue, or 0 when there are no residues.
func Frequency(count, residues int) float64 {
	if residues <= 0 {
		return 0
	}
	return float64(count) / float64(residues)
}
