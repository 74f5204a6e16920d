package geo

// GetPolygonIndex maps any integer raw index onto the circular range
// [1, length]: 0 wraps to length (the last vertex),
// negative indices wrap from the end, and indices beyond length wrap
// from the start. length must be positive.
func GetPolygonIndex(length, raw int) int {
	i := raw % length
	if i <= 0 {
		i += length
	}
	return i
}

// PolygonIterator lazily walks a polygon's 1-based indices from "from" to
// "to" inclusive, stepping by step (+1 or −1), wrapping circularly. A
// full circle occurs when to == from: the walk emits every vertex once
// and then the start vertex again, rather than stopping immediately. visit is
// called once per (index, vertex) in walk order; iteration stops early
// if visit returns false.
func PolygonIterator(poly Polygon, from, to, step int, visit func(index int, v Vertex) bool) {
	n := poly.Len()
	if n == 0 || step == 0 {
		return
	}
	i := GetPolygonIndex(n, from)
	target := GetPolygonIndex(n, to)
	if !visit(i, poly.At(i)) {
		return
	}
	for {
		i = GetPolygonIndex(n, i+step)
		if !visit(i, poly.At(i)) {
			return
		}
		if i == target {
			return
		}
	}
}

// PolygonIndices collects the walk order PolygonIterator would visit,
// without needing a callback. A full circle (to == from) walks every
// vertex once and returns to from, rather than stopping immediately —
// the starting vertex only ends the walk on its *second* visit.
func PolygonIndices(n, from, to, step int) []int {
	if n == 0 || step == 0 {
		return nil
	}
	i := GetPolygonIndex(n, from)
	target := GetPolygonIndex(n, to)
	out := []int{i}
	for {
		i = GetPolygonIndex(n, i+step)
		out = append(out, i)
		if i == target {
			return out
		}
	}
}

// Reverse returns a new slice with the order of vs inverted.
func Reverse[T any](vs []T) []T {
	out := make([]T, len(vs))
	for i, v := range vs {
		out[len(vs)-1-i] = v
	}
	return out
}
