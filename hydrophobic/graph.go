package hydrophobic

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/structure"
)

// Graph is the undirected residue interaction graph. Node ids are assigned
// in canonical residue order, so equal pair lists build equal graphs.
type Graph struct {
	g    *simple.UndirectedGraph
	ids  map[structure.ResidueKey]int64
	refs []interaction.ResidueRef
}

// NewGraph builds the graph whose nodes are the residues of pairs and whose
// edges are the pairs themselves. Self pairs are ignored.
func NewGraph(pairs []interaction.ResiduePair) *Graph {
	var residues []interaction.ResidueRef
	known := make(map[structure.ResidueKey]struct{})
	for _, p := range pairs {
		for _, r := range [2]interaction.ResidueRef{p.A, p.B} {
			if _, ok := known[r.Key()]; ok {
				continue
			}
			known[r.Key()] = struct{}{}
			residues = append(residues, r)
		}
	}
	slices.SortFunc(residues, interaction.ResidueRef.Compare)

	g := &Graph{
		g:    simple.NewUndirectedGraph(),
		ids:  make(map[structure.ResidueKey]int64, len(residues)),
		refs: residues,
	}
	for i, r := range residues {
		g.ids[r.Key()] = int64(i)
		g.g.AddNode(simple.Node(i))
	}
	for _, p := range pairs {
		u, v := g.ids[p.A.Key()], g.ids[p.B.Key()]
		if u == v {
			continue
		}
		g.g.SetEdge(g.g.NewEdge(simple.Node(u), simple.Node(v)))
	}
	return g
}

// Nodes returns the number of residues in the graph.
func (g *Graph) Nodes() int { return len(g.refs) }

// Edges returns the number of distinct residue contacts.
func (g *Graph) Edges() int { return g.g.Edges().Len() }

// Label returns the residue name of key.
func (g *Graph) Label(key structure.ResidueKey) (string, bool) {
	id, ok := g.ids[key]
	if !ok {
		return "", false
	}
	return g.refs[id].ResidueName, true
}

// Components returns the connected components, each sorted in residue
// order, ordered by their first residue.
func (g *Graph) Components() [][]interaction.ResidueRef {
	comps := topo.ConnectedComponents(g.g)

	out := make([][]interaction.ResidueRef, 0, len(comps))
	for _, comp := range comps {
		ids := make([]int64, len(comp))
		for i, n := range comp {
			ids[i] = n.ID()
		}
		slices.Sort(ids)

		members := make([]interaction.ResidueRef, len(ids))
		for i, id := range ids {
			members[i] = g.refs[id]
		}
		out = append(out, members)
	}

	slices.SortFunc(out, func(a, b []interaction.ResidueRef) int {
		return a[0].Compare(b[0])
	})
	return out
}
