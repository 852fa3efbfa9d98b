// Package pdbio reads and writes the fixed-column ATOM/HETATM records of the
// PDB format. Only coordinate records are handled; everything else is
// skipped on read and never written. Reading stops at the end of the first
// model.
package pdbio
