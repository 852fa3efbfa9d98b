// Package hbond detects hydrogen bonds.
//
// Heavy-atom structures carry no hydrogens, so detection crosses two
// boundaries. A Protonator adds hydrogens (see package protonate for a
// PDB2PQR-backed implementation), and a Geometry finds donor-hydrogen-acceptor
// triplets in the protonated structure. The Detector maps each triplet's donor
// and acceptor back onto the original structure and reports the deduplicated
// donor/acceptor pairs.
//
// Both boundaries are plain interfaces; tests and callers with precomputed
// hydrogens can supply their own:
//
//	d, err := hbond.NewDetector(protonator, nil) // nil selects BakerHubbard
//	if err != nil {
//	    return err
//	}
//	res, err := d.Detect(ctx, s)
//	if errors.Is(err, hbond.ErrProtonationFailure) {
//	    // hydrogens could not be added
//	}
package hbond
