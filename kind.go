package protfeat

import (
	"fmt"

	"github.com/hupe1980/protfeat/interaction"
)

// Kind is an interaction class.
type Kind = interaction.Kind

const (
	KindDisulfide    = interaction.KindDisulfide
	KindSaltBridge   = interaction.KindSaltBridge
	KindHydrophobic  = interaction.KindHydrophobic
	KindHydrogenBond = interaction.KindHydrogenBond
)

const numKinds = 4

// Kinds returns every interaction kind in canonical order.
func Kinds() []Kind { return interaction.Kinds() }

// Mode selects raw pairs or per-residue frequencies in feature records.
type Mode = interaction.Mode

const (
	ModePairs     = interaction.ModePairs
	ModeFrequency = interaction.ModeFrequency
)

// ParseMode parses "pairs" or "frequency".
func ParseMode(s string) (Mode, error) { return interaction.ParseMode(s) }

// State is the outcome of one interaction kind.
type State int

const (
	StateOK State = iota
	StateFailed
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateFailed:
		return "failed"
	case StateSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is the per-kind outcome of an analysis.
type Status struct {
	State State
	// Err is a *FeatureError when State is StateFailed, and the reason for
	// StateSkipped when the kind was selected but could not run.
	Err error
}

type statusJSON struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

func (s Status) toJSON() statusJSON {
	out := statusJSON{State: s.State}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return out
}
