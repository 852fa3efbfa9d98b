// Package interaction holds the types shared by every detector: interaction
// kinds, output modes, canonical pairs and the named error kinds recovered
// inside detectors.
//
// A Pair is unordered. NewPair sorts its endpoints, so detecting (i, j) and
// (j, i) produces the same value, and a PairSet keeps the first occurrence
// only.
package interaction
