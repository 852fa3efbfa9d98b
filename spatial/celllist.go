package spatial

import (
	"errors"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/golang/geo/r3"

	"github.com/hupe1980/protfeat/structure"
)

// ErrInvalidCellSize is returned when the cell size is not a finite positive number.
var ErrInvalidCellSize = errors.New("cell size must be finite and positive")

type cell struct {
	x, y, z int
}

// CellList is an immutable grid index over a selection of atoms.
// It is safe for concurrent queries.
type CellList struct {
	s        *structure.Structure
	cellSize float64
	cells    map[cell][]int
	selected *roaring.Bitmap
}

// NewCellList bins the atoms of s selected by selection into cells of edge
// cellSize. A nil selection selects every atom. Indices outside s are ignored.
func NewCellList(s *structure.Structure, cellSize float64, selection *roaring.Bitmap) (*CellList, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, ErrInvalidCellSize
	}

	cl := &CellList{
		s:        s,
		cellSize: cellSize,
		cells:    make(map[cell][]int),
		selected: roaring.New(),
	}

	add := func(i int) {
		c := cl.cellOf(s.Atom(i).Coord)
		cl.cells[c] = append(cl.cells[c], i)
		cl.selected.Add(uint32(i))
	}

	if selection == nil {
		for i := 0; i < s.Len(); i++ {
			add(i)
		}
		return cl, nil
	}

	it := selection.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i >= s.Len() {
			break
		}
		add(i)
	}
	return cl, nil
}

func (cl *CellList) cellOf(p r3.Vector) cell {
	return cell{
		x: int(math.Floor(p.X / cl.cellSize)),
		y: int(math.Floor(p.Y / cl.cellSize)),
		z: int(math.Floor(p.Z / cl.cellSize)),
	}
}

// CellSize returns the cell edge length.
func (cl *CellList) CellSize() float64 { return cl.cellSize }

// Len returns the number of indexed atoms.
func (cl *CellList) Len() int { return int(cl.selected.GetCardinality()) }

// Contains reports whether atom i is indexed.
func (cl *CellList) Contains(i int) bool {
	return i >= 0 && cl.selected.Contains(uint32(i))
}

// Query returns the indexed atoms within radius (inclusive) of center,
// sorted ascending. A negative or NaN radius returns nil.
func (cl *CellList) Query(center r3.Vector, radius float64) []int {
	if !(radius >= 0) {
		return nil
	}

	reach := 1
	if radius > cl.cellSize {
		reach = int(math.Ceil(radius / cl.cellSize))
	}

	r2 := radius * radius
	origin := cl.cellOf(center)

	var out []int
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for dz := -reach; dz <= reach; dz++ {
				members := cl.cells[cell{x: origin.x + dx, y: origin.y + dy, z: origin.z + dz}]
				for _, i := range members {
					if cl.s.Atom(i).Coord.Sub(center).Norm2() <= r2 {
						out = append(out, i)
					}
				}
			}
		}
	}

	slices.Sort(out)
	return out
}

// QueryAtom returns the indexed atoms within radius of atom i, excluding i.
func (cl *CellList) QueryAtom(i int, radius float64) []int {
	hits := cl.Query(cl.s.Atom(i).Coord, radius)
	if k, found := slices.BinarySearch(hits, i); found {
		hits = slices.Delete(hits, k, k+1)
	}
	return hits
}
