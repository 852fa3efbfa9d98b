// Package testutil provides testing utilities for protfeat.
//
// This package is intended for use in tests and benchmarks only.
// It provides a fluent builder for hand-made structures, a seeded random
// generator for synthetic proteins, and brute-force ground truth for
// neighbor queries.
//
// # Hand-made Structures
//
//	s := testutil.NewBuilder("toy").
//	    Residue("A", 1, "CYS").Atom("CB", 0, 1.8, 0).Atom("SG", 0, 0, 0).
//	    Residue("A", 2, "CYS").Atom("SG", 2.05, 0, 0).Atom("CB", 2.05, 0, 1.8).
//	    Build()
//
// # Synthetic Proteins
//
//	rng := testutil.NewRNG(seed)
//	s := rng.Protein("random", 200, 40.0)
//
// # Ground Truth
//
//	want := testutil.WithinRadius(s, selection, center, radius)
package testutil
