// Package hydrophobic detects clusters of packed aliphatic side chains.
//
// The detector runs in two steps. FindPairs selects the branching side-chain
// carbons (CB, CG1, CG2, CD1, CD2) of isoleucine, leucine and valine and
// records every pair of distinct residues with two such carbons within
// 2 x vdW(C) + Bias of each other. Clusters then builds an undirected residue
// graph from those pairs and reports each connected component as a cluster
// whose area is the sum of fixed per-residue reference areas.
//
//	res, err := hydrophobic.Detect(s)
//	if err != nil {
//	    return err
//	}
//	for _, c := range res.Clusters {
//	    fmt.Println(c.ID, c.Area, c.ResidueIDs())
//	}
//
// A structure without qualifying residues yields no clusters and zero areas.
package hydrophobic
