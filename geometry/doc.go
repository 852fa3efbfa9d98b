// Package geometry provides the distance and angle kernels used by the detectors.
//
// All functions operate on r3.Vector coordinates in Angstrom and return
// angles in radians unless the name says otherwise.
//
// # Usage
//
//	d := geometry.Distance(sg1.Coord, sg2.Coord)
//	chi := geometry.Degrees(geometry.Dihedral(cb1.Coord, sg1.Coord, sg2.Coord, cb2.Coord))
//	r, _ := geometry.VDWRadius("C") // 1.7
package geometry
