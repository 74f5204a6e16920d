package geo

// Edge is a directed segment of a polygon or path, attached bidirectionally
// to the vertex it originates from (as that vertex's NextEdge) and the
// vertex it arrives at (as that vertex's PrevEdge).
type Edge struct {
	From, To Point
	// Angle is atan2(dy, dx), using the safe near-vertical branch (ToPolar).
	Angle  float64
	Length float64
	Dx, Dy float64
}

// NewEdge builds an Edge from its two endpoints.
func NewEdge(from, to Point) Edge {
	dx, dy := to.X-from.X, to.Y-from.Y
	angle, length := ToPolar(dx, dy)
	return Edge{From: from, To: to, Angle: angle, Length: length, Dx: dx, Dy: dy}
}

// Tangent is the central-difference vector from the previous to the next
// vertex around a ring, used for local heading estimates.
type Tangent struct {
	Dx, Dy float64
	Angle  float64
}

// Vertex is a single point in a Polygon or a course: edge/tangent
// annotations when part of a polygon under analysis, turn/pass/track
// flags when part of an assembled course. One composite record holds
// every optional decoration so call sites never attach state ad hoc.
type Vertex struct {
	Point

	// Populated by the polygon analyzer.
	PrevEdge *Edge
	NextEdge *Edge
	Tangent  *Tangent

	// Populated while composing the final course.
	TurnStart  bool
	TurnEnd    bool
	PassNumber int
	Track      int
}

// V wraps a bare point as an undecorated Vertex.
func V(p Point) Vertex {
	return Vertex{Point: p}
}

// VertexPoints extracts the plain points from a vertex slice.
func VertexPoints(vs []Vertex) []Point {
	pts := make([]Point, len(vs))
	for i, v := range vs {
		pts[i] = v.Point
	}
	return pts
}

// VerticesFromPoints wraps plain points as undecorated vertices.
func VerticesFromPoints(pts []Point) []Vertex {
	vs := make([]Vertex, len(pts))
	for i, p := range pts {
		vs[i] = V(p)
	}
	return vs
}

// BoundingBox is an axis-aligned bounding box.
type BoundingBox struct {
	Min, Max Point
}

// Width returns the box's extent along X.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the box's extent along Y.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// DirectionBin accumulates edge length and contributing angles for one
// 10°-wide slice of the polygon's directional histogram.
type DirectionBin struct {
	CenterDeg   int
	TotalLength float64
	Angles      []float64
}

// BestDirection names the dominant edge direction of a polygon: the bin
// with the greatest accumulated edge length, reported as the arithmetic
// mean of that bin's contributing angles (radians), floored to 1e-6 rad.
type BestDirection struct {
	BinCenterDeg int
	Dir          float64
}

// Polygon is a closed ring of vertices (implicit wrap from last to
// first), optionally decorated by the polygon analyzer. The orientation,
// bounding box, and other analysis results are computed once and cached
// here rather than recomputed at each call site.
type Polygon struct {
	Vertices []Vertex

	BoundingBox        BoundingBox
	IsClockwise        bool
	ShortestEdgeLength float64
	DirectionStats     map[int]*DirectionBin
	BestDirection      *BestDirection
	Analyzed           bool
}

// NewPolygon builds an undecorated polygon from plain points.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Vertices: VerticesFromPoints(pts)}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty reports whether the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Points returns the plain points of the polygon, in order.
func (p Polygon) Points() []Point {
	return VertexPoints(p.Vertices)
}

// At returns the vertex at the given 1-based circular index.
func (p Polygon) At(i int) Vertex {
	return p.Vertices[GetPolygonIndex(len(p.Vertices), i)-1]
}

// SignedArea returns the shoelace signed area: positive for
// counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := p.Vertices[i].Point, p.Vertices[j].Point
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// Reverse returns a new polygon with vertex order inverted. Decoration
// fields are not preserved (a reversed ring must be re-analyzed).
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v.Point
	}
	return NewPolygon(rev...)
}

// Clone makes a deep copy of the polygon, safe for independent mutation.
func (p Polygon) Clone() Polygon {
	vs := make([]Vertex, len(p.Vertices))
	copy(vs, p.Vertices)
	stats := make(map[int]*DirectionBin, len(p.DirectionStats))
	for k, v := range p.DirectionStats {
		cp := *v
		cp.Angles = append([]float64(nil), v.Angles...)
		stats[k] = &cp
	}
	var best *BestDirection
	if p.BestDirection != nil {
		b := *p.BestDirection
		best = &b
	}
	return Polygon{
		Vertices:           vs,
		BoundingBox:        p.BoundingBox,
		IsClockwise:        p.IsClockwise,
		ShortestEdgeLength: p.ShortestEdgeLength,
		DirectionStats:     stats,
		BestDirection:      best,
		Analyzed:           p.Analyzed,
	}
}

// Translate returns a copy of the polygon with every vertex shifted by d.
func (p Polygon) Translate(d Point) Polygon {
	pts := p.Points()
	out := make([]Point, len(pts))
	for i, pt := range pts {
		out[i] = pt.Add(d)
	}
	return NewPolygon(out...)
}

// RotateAround returns a copy of the polygon rotated by angle radians
// around center.
func (p Polygon) RotateAround(center Point, angle float64) Polygon {
	pts := p.Points()
	out := make([]Point, len(pts))
	for i, pt := range pts {
		out[i] = pt.RotateAround(center, angle)
	}
	return NewPolygon(out...)
}

// ComputeBoundingBox recomputes the bounding box directly from the
// vertex list, independent of cached analysis.
func (p Polygon) ComputeBoundingBox() BoundingBox {
	if len(p.Vertices) == 0 {
		return BoundingBox{}
	}
	minP := p.Vertices[0].Point
	maxP := p.Vertices[0].Point
	for _, v := range p.Vertices[1:] {
		if v.X < minP.X {
			minP.X = v.X
		}
		if v.Y < minP.Y {
			minP.Y = v.Y
		}
		if v.X > maxP.X {
			maxP.X = v.X
		}
		if v.Y > maxP.Y {
			maxP.Y = v.Y
		}
	}
	return BoundingBox{Min: minP, Max: maxP}
}

// NearestVertexIndex returns the 1-based index of the vertex closest to p.
func (p Polygon) NearestVertexIndex(pt Point) int {
	best := 1
	bestDist := pt.Distance(p.Vertices[0].Point)
	for i := 1; i < len(p.Vertices); i++ {
		d := pt.Distance(p.Vertices[i].Point)
		if d < bestDist {
			bestDist = d
			best = i + 1
		}
	}
	return best
}
