package geo

import "math"

// GetIntersection returns the intersection of segments A1–A2 and B1–B2,
// using the standard parametric line form. The point is returned only if
// both parameters land in [0,1] — i.e. the intersection lies on both
// segments, not merely on their infinite extensions. Colinear (and
// parallel) segments report no intersection.
func GetIntersection(a1, a2, b1, b2 Point) (Point, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	diff := b1.Sub(a1)
	t := (diff.X*d2.Y - diff.Y*d2.X) / denom
	u := (diff.X*d1.Y - diff.Y*d1.X) / denom
	if t < -1e-9 || t > 1+1e-9 || u < -1e-9 || u > 1+1e-9 {
		return Point{}, false
	}
	return a1.Add(d1.Scale(t)), true
}

// LineIntersection returns the intersection of the infinite lines through
// a1–a2 and b1–b2, with no restriction on where it falls relative to
// either segment. Used to reconstruct offset polygon vertices from
// translated edges, which are meant as rays, not bounded segments.
// Parallel (including colinear) lines report no
// intersection.
func LineIntersection(a1, a2, b1, b2 Point) (Point, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	diff := b1.Sub(a1)
	t := (diff.X*d2.Y - diff.Y*d2.X) / denom
	return a1.Add(d1.Scale(t)), true
}

// NearestPointOnSegment returns the closest point on segment a–b to p,
// and the distance to it.
func NearestPointOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		return a, p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / abLen2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return closest, p.Distance(closest)
}

// RayPolygonIntersection casts a ray from origin in direction angle and
// returns the nearest intersection with any edge of poly, together with
// the index of the edge it hit (the edge from vertex i to vertex i+1 is
// reported as index i, 1-based). ok is false if the ray hits no edge
// within maxDistance.
func RayPolygonIntersection(poly Polygon, origin Point, angle, maxDistance float64) (pt Point, edgeIndex int, ok bool) {
	far := AddPolarVectorToPoint(origin, angle, maxDistance)
	bestDist := math.MaxFloat64
	n := poly.Len()
	for i := 1; i <= n; i++ {
		from := poly.At(i).Point
		to := poly.At(GetPolygonIndex(n, i+1)).Point
		if p, hit := GetIntersection(origin, far, from, to); hit {
			d := origin.Distance(p)
			if d < bestDist {
				bestDist = d
				pt = p
				edgeIndex = i
				ok = true
			}
		}
	}
	return pt, edgeIndex, ok
}
