package protfeat

import (
	"errors"
	"time"

	"github.com/goccy/go-json"

	"github.com/hupe1980/protfeat/codec"
	"github.com/hupe1980/protfeat/disulfide"
	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/hydrophobic"
	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/saltbridge"
)

// Report holds every raw result of one structure. Results of kinds that
// were skipped or failed are nil.
type Report struct {
	Structure    string
	Residues     int
	Status       map[Kind]Status
	Disulfide    *disulfide.Result
	SaltBridge   *saltbridge.Result
	Hydrophobic  *hydrophobic.Result
	HydrogenBond *hbond.Result
	Duration     time.Duration
}

// OK reports whether kind was computed successfully.
func (r *Report) OK(kind Kind) bool {
	return r.Status[kind].State == StateOK
}

// Failed returns the failed kinds in canonical order.
func (r *Report) Failed() []Kind {
	var out []Kind
	for _, k := range Kinds() {
		if r.Status[k].State == StateFailed {
			out = append(out, k)
		}
	}
	return out
}

// Err joins the errors of all failed kinds, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, k := range r.Failed() {
		errs = append(errs, r.Status[k].Err)
	}
	return errors.Join(errs...)
}

// Feature is the summary record of one interaction kind of one structure.
type Feature struct {
	Structure string `json:"structure"`
	Kind      Kind   `json:"kind"`
	Mode      Mode   `json:"mode"`
	State     State  `json:"state"`
	Error     string `json:"error,omitempty"`
	// Count is the number of distinct interactions.
	Count int `json:"count"`
	// Frequency is Count per residue.
	Frequency float64 `json:"frequency"`

	// Pairs are the canonical atom pairs (ModePairs only).
	Pairs []interaction.Pair `json:"pairs,omitempty"`
	// ResiduePairs are the contacting residues of hydrophobic features
	// (ModePairs only).
	ResiduePairs []interaction.ResiduePair `json:"residue_pairs,omitempty"`
	// Clusters are the hydrophobic clusters (ModePairs only).
	Clusters []hydrophobic.Cluster `json:"clusters,omitempty"`

	// SumArea and MaxArea are set for successful hydrophobic features,
	// including 0 when no cluster formed.
	SumArea *float64 `json:"sum_area,omitempty"`
	MaxArea *float64 `json:"max_area,omitempty"`
}

// Features returns one record per interaction kind in canonical order.
func (r *Report) Features(mode Mode) []Feature {
	out := make([]Feature, 0, numKinds)
	for _, k := range Kinds() {
		st := r.Status[k]
		f := Feature{
			Structure: r.Structure,
			Kind:      k,
			Mode:      mode,
			State:     st.State,
		}
		if st.Err != nil {
			f.Error = st.Err.Error()
		}
		if st.State == StateOK {
			r.fill(&f, mode)
		}
		out = append(out, f)
	}
	return out
}

func (r *Report) fill(f *Feature, mode Mode) {
	pairs := mode == ModePairs

	switch f.Kind {
	case KindDisulfide:
		if res := r.Disulfide; res != nil {
			f.Count, f.Frequency = len(res.Bonds), res.Frequency()
			if pairs {
				f.Pairs = res.Pairs()
			}
		}
	case KindSaltBridge:
		if res := r.SaltBridge; res != nil {
			f.Count, f.Frequency = len(res.Bridges), res.Frequency()
			if pairs {
				f.Pairs = res.Pairs()
			}
		}
	case KindHydrophobic:
		if res := r.Hydrophobic; res != nil {
			f.Count, f.Frequency = len(res.ResiduePairs), res.Frequency()
			f.SumArea, f.MaxArea = ptr(res.SumArea), ptr(res.MaxArea)
			if pairs {
				f.ResiduePairs = res.ResiduePairs
				f.Clusters = res.Clusters
			}
		}
	case KindHydrogenBond:
		if res := r.HydrogenBond; res != nil {
			f.Count, f.Frequency = len(res.Bonds), res.Frequency()
			if pairs {
				f.Pairs = res.Pairs()
			}
		}
	}
}

func ptr[T any](v T) *T { return &v }

// MarshalFeatures encodes Features(mode) with c, or codec.Default if c is nil.
func (r *Report) MarshalFeatures(c codec.Codec, mode Mode) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(r.Features(mode))
}

// MarshalJSON encodes the status with its error as a string.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toJSON())
}
