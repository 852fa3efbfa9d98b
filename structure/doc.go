// Package structure defines the immutable atom-level model every detector consumes.
//
// A Structure is an ordered list of atoms whose Index equals its position.
// Atoms sharing (ChainID, ResidueID) form one residue and must agree on the
// residue name. Structures are built once by the caller's parser and are
// read-only afterwards, so they are safe to share across goroutines.
//
// # Selections
//
// Detectors work on subsets of atoms. A selection is a *roaring.Bitmap of atom
// indices:
//
//	sg := s.Select(structure.Match([]string{"CYS"}, []string{"SG"}))
//	for it := sg.Iterator(); it.HasNext(); {
//	    a := s.Atom(int(it.Next()))
//	    ...
//	}
//
// # Lookups
//
// Find resolves (chain, residue id, atom name) in O(1); FindInResidue ignores
// the chain and is used when re-mapping atoms from a protonated copy.
package structure
