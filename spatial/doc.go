// Package spatial provides a cell-list index for radius queries over atoms.
//
// A CellList bins a selection of atoms into cubic cells of a fixed edge
// length. A radius query visits only the cells around the query point and
// filters candidates by exact distance, which turns the O(N^2) all-pairs scan
// of a neighbor search into roughly O(N).
//
// Choose the cell size at least as large as the largest query radius; the
// query then touches exactly the 27 cells surrounding the query point. Larger
// radii still return exact results but widen the visited neighborhood.
//
//	sel := s.Select(structure.Match([]string{"CYS"}, []string{"SG"}))
//	cl, err := spatial.NewCellList(s, 2.1, sel)
//	if err != nil {
//	    return err
//	}
//	for _, j := range cl.QueryAtom(i, 2.1) {
//	    ...
//	}
package spatial
