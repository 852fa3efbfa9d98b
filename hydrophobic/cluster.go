package hydrophobic

import (
	"github.com/hupe1980/protfeat/geometry"
	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/structure"
)

// referenceAreas approximates each residue's buried apolar surface as a
// number of carbon spheres.
var referenceAreas = map[string]float64{
	"ILE": 4 * geometry.SphereArea(geometry.CarbonVDWRadius),
	"LEU": 4 * geometry.SphereArea(geometry.CarbonVDWRadius),
	"VAL": 3 * geometry.SphereArea(geometry.CarbonVDWRadius),
}

// ReferenceArea returns the fixed area of residue type name.
func ReferenceArea(name string) (float64, bool) {
	a, ok := referenceAreas[name]
	return a, ok
}

// Cluster is one connected component of the residue graph.
type Cluster struct {
	ID       int                      `json:"id"`
	Residues []interaction.ResidueRef `json:"residues"`
	Area     float64                  `json:"area"`
}

// ResidueIDs returns the member residue ids in order.
func (c Cluster) ResidueIDs() []int {
	ids := make([]int, len(c.Residues))
	for i, r := range c.Residues {
		ids[i] = r.ResidueID
	}
	return ids
}

// Size returns the number of member residues.
func (c Cluster) Size() int { return len(c.Residues) }

// Clusters extracts every component of size >= 2 from pairs and assigns ids
// 0..n-1 in canonical order.
func Clusters(pairs []interaction.ResiduePair) []Cluster {
	var out []Cluster
	for _, members := range NewGraph(pairs).Components() {
		if len(members) < 2 {
			continue
		}
		var area float64
		for _, r := range members {
			a, _ := ReferenceArea(r.ResidueName)
			area += a
		}
		out = append(out, Cluster{ID: len(out), Residues: members, Area: area})
	}
	return out
}

// Result holds the hydrophobic analysis of one structure.
type Result struct {
	// ResiduePairs are the distinct contacting residue pairs.
	ResiduePairs []interaction.ResiduePair
	// Clusters in canonical order.
	Clusters []Cluster
	// TotalArea is the summed area of all clusters.
	TotalArea float64
	// SumArea equals TotalArea, divided by Residues when normalized.
	SumArea float64
	// MaxArea is the area of the largest cluster, 0 without clusters.
	MaxArea float64
	// Normalized reports whether SumArea was divided by Residues.
	Normalized bool
	// Residues is the distinct residue count of the structure.
	Residues int
}

// Frequency returns contacting residue pairs per residue.
func (r *Result) Frequency() float64 {
	return interaction.Frequency(len(r.ResiduePairs), r.Residues)
}

// Breakdown maps cluster id to its cluster.
func (r *Result) Breakdown() map[int]Cluster {
	m := make(map[int]Cluster, len(r.Clusters))
	for _, c := range r.Clusters {
		m[c.ID] = c
	}
	return m
}

// Detect runs pair finding and clustering on s.
func Detect(s *structure.Structure, optFns ...func(o *Options)) (*Result, error) {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	pairs, err := FindPairs(s, opts.Threshold())
	if err != nil {
		return nil, err
	}

	res := &Result{
		ResiduePairs: pairs,
		Clusters:     Clusters(pairs),
		Residues:     s.ResidueCount(),
	}
	for _, c := range res.Clusters {
		res.TotalArea += c.Area
		res.MaxArea = max(res.MaxArea, c.Area)
	}

	res.SumArea = res.TotalArea
	if opts.NormalizeByResidues && res.Residues > 0 {
		res.SumArea = res.TotalArea / float64(res.Residues)
		res.Normalized = true
	}
	return res, nil
}
