package interaction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/protfeat/structure"
)

func TestNewPairCanonical(t *testing.T) {
	x := Endpoint{AtomIndex: 10, ResidueID: 3}
	y := Endpoint{AtomIndex: 4, ResidueID: 9}

	p := NewPair(x, y)
	assert.Equal(t, p, NewPair(y, x))
	assert.Equal(t, y, p.A)
	assert.Equal(t, x, p.B)
}

func TestNewPairTieBreaksOnResidue(t *testing.T) {
	x := Endpoint{AtomIndex: 1, ResidueID: 5}
	y := Endpoint{AtomIndex: 1, ResidueID: 2}

	assert.Equal(t, Pair{A: y, B: x}, NewPair(x, y))
}

func TestPairSet(t *testing.T) {
	var s PairSet

	a := NewPair(Endpoint{5, 1}, Endpoint{2, 7})
	b := NewPair(Endpoint{1, 1}, Endpoint{3, 2})

	assert.True(t, s.Add(a))
	assert.False(t, s.Add(NewPair(Endpoint{2, 7}, Endpoint{5, 1})))
	assert.True(t, s.Add(b))
	assert.True(t, s.Contains(a))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Pair{b, a}, s.Sorted())
}

func TestEmptyPairSetSorted(t *testing.T) {
	var s PairSet
	assert.Empty(t, s.Sorted())
	assert.False(t, s.Contains(Pair{}))
}

func TestResiduePairCanonical(t *testing.T) {
	x := ResidueRef{ChainID: "A", ResidueID: 9, ResidueName: "ILE"}
	y := ResidueRef{ChainID: "A", ResidueID: 2, ResidueName: "VAL"}

	p := NewResiduePair(x, y)
	assert.Equal(t, p, NewResiduePair(y, x))
	assert.Equal(t, y, p.A)
	assert.Equal(t, structure.ResidueKey{ChainID: "A", ResidueID: 2}, p.A.Key())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		err  bool
	}{
		{"pairs", ModePairs, false},
		{"bonds", ModePairs, false},
		{" Frequency ", ModeFrequency, false},
		{"count", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrequency(t *testing.T) {
	assert.Equal(t, 0.0, Frequency(3, 0))
	assert.Equal(t, 0.25, Frequency(1, 4))
}

func TestKindStrings(t *testing.T) {
	names := make([]string, 0, 4)
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"disulfide", "salt_bridge", "hydrophobic", "hydrogen_bond"}, names)
	assert.Equal(t, "Unknown(9)", Kind(9).String())
}

func TestMalformedResidue(t *testing.T) {
	m := MalformedResidue{Residue: structure.ResidueKey{ChainID: "A", ResidueID: 4}, Missing: "CB"}

	assert.True(t, errors.Is(m, ErrMalformedResidue))
	assert.Equal(t, "residue A:4 lacks atom CB", m.Error())

	var set MalformedSet
	set.Add(m)
	set.Add(m)
	assert.Len(t, set.Items(), 1)
}
