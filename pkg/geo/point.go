// Package geo provides the 2D geometry primitives the planner is built
// on: points/vectors, polar conversion, polygons, circular indexing and
// iteration, and segment intersection.
package geo

import "math"

// Point is a location (or, when used as a vector, a displacement) in the
// field plane, measured in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Origin is the zero point.
var Origin = Point{0, 0}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the same direction, or the zero
// vector if p is (numerically) the zero vector.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < 1e-12 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (the z-component of the 3D cross).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Distance returns the Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Rotate returns p rotated by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	c, s := math.Cos(angle), math.Sin(angle)
	return Point{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// RotateAround returns p rotated by angle radians around center.
func (p Point) RotateAround(center Point, angle float64) Point {
	return p.Sub(center).Rotate(angle).Add(center)
}

// Lerp returns the linear interpolation between p and q at t in [0,1].
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Perp returns p rotated 90 degrees counterclockwise.
func (p Point) Perp() Point {
	return Point{-p.Y, p.X}
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Point) Point {
	return p.Lerp(q, 0.5)
}

// Tolerance is the standard floating point equality tolerance used
// throughout the planner.
const Tolerance = 1.0e-5

// Equal reports whether p and q are within the planner's standard
// tolerance of each other.
func (p Point) Equal(q Point) bool {
	return p.Distance(q) < Tolerance
}

// ToPolar converts a vector (x, y) to (angle, length). angle is returned
// in the canonical range (−π, +π]. When x is numerically zero, or the
// slope |y/x| exceeds 1000 (near-vertical), the safe branch returns
// ±π/2 with the sign of y rather than risking atan2 instability.
func ToPolar(x, y float64) (angle, length float64) {
	length = math.Hypot(x, y)
	if x == 0 || math.Abs(y/x) > 1000 {
		if y >= 0 {
			return math.Pi / 2, length
		}
		return -math.Pi / 2, length
	}
	return math.Atan2(y, x), length
}

// AddPolarVectorToPoint returns p displaced by (angle, length) in polar
// form.
func AddPolarVectorToPoint(p Point, angle, length float64) Point {
	return Point{
		X: p.X + length*math.Cos(angle),
		Y: p.Y + length*math.Sin(angle),
	}
}

// NormalizeAngle reduces a into the canonical range (−π, +π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// GetDeltaAngle returns the signed difference (b − a), wrapped into
// (−π, +π], i.e. the shortest rotation from a to b.
func GetDeltaAngle(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// GetAverageAngle returns the circular mean of a and b, handling the ±π
// wrap: if the two angles are more than π apart, the negative one is
// shifted into [0, 2π) before averaging, and the result is reduced back
// into (−π, +π].
func GetAverageAngle(a, b float64) float64 {
	aa, bb := a, b
	if math.Abs(aa-bb) > math.Pi {
		if aa < 0 {
			aa += 2 * math.Pi
		}
		if bb < 0 {
			bb += 2 * math.Pi
		}
	}
	return NormalizeAngle((aa + bb) / 2)
}

// Inward returns the perpendicular rotation (±π/2) that points toward
// the interior of a ring with the given orientation: −π/2 for clockwise
// rings, +π/2 for counterclockwise rings.
func Inward(isClockwise bool) float64 {
	if isClockwise {
		return -math.Pi / 2
	}
	return math.Pi / 2
}
