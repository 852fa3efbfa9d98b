package geometry

import (
	"math"
	"strings"

	"github.com/golang/geo/r3"
)

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r3.Vector) float64 {
	return a.Distance(b)
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b r3.Vector) float64 {
	return a.Sub(b).Norm2()
}

// Angle returns the angle a-b-c at vertex b, in [0, pi].
// Degenerate input (a or c coinciding with b) yields 0.
func Angle(a, b, c r3.Vector) float64 {
	return float64(a.Sub(b).Angle(c.Sub(b)))
}

// Dihedral returns the signed torsion angle a-b-c-d in (-pi, pi].
// Collinear input yields 0.
func Dihedral(a, b, c, d r3.Vector) float64 {
	b1 := b.Sub(a)
	b2 := c.Sub(b)
	b3 := d.Sub(c)

	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)

	y := b2.Norm() * b1.Dot(n2)
	x := n1.Dot(n2)
	return math.Atan2(y, x)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Bondi van der Waals radii in Angstrom.
var vdwRadii = map[string]float64{
	"H":  1.20,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"P":  1.80,
	"S":  1.80,
	"CL": 1.75,
	"SE": 1.90,
}

// VDWRadius returns the van der Waals radius of element.
func VDWRadius(element string) (float64, bool) {
	r, ok := vdwRadii[strings.ToUpper(element)]
	return r, ok
}

// CarbonVDWRadius is VDWRadius("C").
const CarbonVDWRadius = 1.70

// SphereArea returns the surface area of a sphere of radius r.
func SphereArea(r float64) float64 {
	return 4 * math.Pi * r * r
}
