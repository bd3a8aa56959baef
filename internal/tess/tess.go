// Package tess triangulates simple polygons with holes into triangle index
// lists suitable for indexed GPU drawing.
//
// The algorithm is ear clipping over a doubly linked vertex ring: holes are
// first bridged into the outer ring (each hole is connected to the visible
// outer vertex right of its leftmost point), then ears are clipped one at a
// time. It handles concave outlines and arbitrary vertex counts; degenerate
// or self-intersecting input is the caller's responsibility and yields a
// best-effort triangulation rather than an error.
package tess

import (
	"math"
)

// node is one vertex on the polygon ring.
type node struct {
	i          uint32 // vertex index in the input coordinate slice
	x, y       float64
	prev, next *node
	steiner    bool
}

// Triangulate computes triangle indexes for a polygon.
//
// coords is a flat coordinate slice holding the outer ring followed by any
// hole rings. holeIndexes lists the vertex index (not the float offset) at
// which each hole ring starts. stride is the number of coordinates per
// vertex; only the first two are used, further ones (e.g. z or m) are
// carried along untouched by the caller.
//
// The returned indexes reference vertices by their position in coords and
// come in counter-clockwise triangles.
func Triangulate(coords []float64, holeIndexes []int, stride int) []uint32 {
	if stride < 2 {
		stride = 2
	}
	vertexCount := len(coords) / stride
	if vertexCount < 3 {
		return nil
	}

	outerLen := vertexCount
	if len(holeIndexes) > 0 {
		outerLen = holeIndexes[0]
	}

	outer := linkRing(coords, 0, outerLen, stride, true)
	if outer == nil || outer.next == outer.prev {
		return nil
	}

	if len(holeIndexes) > 0 {
		outer = eliminateHoles(coords, holeIndexes, outer, stride, vertexCount)
	}

	indexes := make([]uint32, 0, (vertexCount-2)*3)
	return clipEars(outer, indexes)
}

// linkRing builds a circular doubly linked list for one ring. The outer
// ring is wound one way (clockwise=true) and hole rings the other, so the
// ear test's sign convention holds for both.
func linkRing(coords []float64, start, end, stride int, clockwise bool) *node {
	var last *node
	if (signedArea(coords, start, end, stride) > 0) == clockwise {
		for i := start; i < end; i++ {
			last = insertNode(uint32(i), coords[i*stride], coords[i*stride+1], last)
		}
	} else {
		for i := end - 1; i >= start; i-- {
			last = insertNode(uint32(i), coords[i*stride], coords[i*stride+1], last)
		}
	}
	if last != nil && equals(last, last.next) {
		removeNode(last)
		last = last.next
	}
	return last
}

func signedArea(coords []float64, start, end, stride int) float64 {
	sum := 0.0
	j := end - 1
	for i := start; i < end; i++ {
		sum += (coords[j*stride] - coords[i*stride]) * (coords[i*stride+1] + coords[j*stride+1])
		j = i
	}
	return sum
}

func insertNode(i uint32, x, y float64, last *node) *node {
	n := &node{i: i, x: x, y: y}
	if last == nil {
		n.prev = n
		n.next = n
	} else {
		n.next = last.next
		n.prev = last
		last.next.prev = n
		last.next = n
	}
	return n
}

func removeNode(n *node) {
	n.next.prev = n.prev
	n.prev.next = n.next
}

// clipEars walks the ring clipping one ear per step. When no ear is found
// in a full pass the ring is filtered for duplicate and collinear points
// and retried once; if it still stalls the remaining area is dropped.
func clipEars(ear *node, indexes []uint32) []uint32 {
	if ear == nil {
		return indexes
	}

	stop := ear
	filtered := false
	for ear.prev != ear.next {
		prev, next := ear.prev, ear.next

		if isEar(ear) {
			indexes = append(indexes, prev.i, ear.i, next.i)
			removeNode(ear)
			ear = next.next
			stop = next.next
			filtered = false
			continue
		}

		ear = next
		if ear == stop {
			if filtered {
				break
			}
			ear = filterPoints(ear, nil)
			if ear == nil {
				break
			}
			stop = ear
			filtered = true
		}
	}

	return indexes
}

// isEar reports whether the triangle (ear.prev, ear, ear.next) is convex
// and contains no other ring vertex.
func isEar(ear *node) bool {
	a, b, c := ear.prev, ear, ear.next
	if area(a, b, c) >= 0 {
		return false // reflex or degenerate corner
	}

	p := ear.next.next
	for p != ear.prev {
		if pointInTriangle(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y) &&
			area(p.prev, p, p.next) >= 0 {
			return false
		}
		p = p.next
	}
	return true
}

// area is twice the signed triangle area, negative for counter-clockwise.
func area(p, q, r *node) float64 {
	return (q.y-p.y)*(r.x-q.x) - (q.x-p.x)*(r.y-q.y)
}

func equals(p, q *node) bool {
	return p.x == q.x && p.y == q.y
}

func pointInTriangle(ax, ay, bx, by, cx, cy, px, py float64) bool {
	return (cx-px)*(ay-py)-(ax-px)*(cy-py) >= 0 &&
		(ax-px)*(by-py)-(bx-px)*(ay-py) >= 0 &&
		(bx-px)*(cy-py)-(cx-px)*(by-py) >= 0
}

// filterPoints removes duplicate and collinear vertices from the ring.
func filterPoints(start, end *node) *node {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}

	p := start
	for {
		again := false
		if !p.steiner && (equals(p, p.next) || area(p.prev, p, p.next) == 0) {
			removeNode(p)
			p = p.prev
			end = p
			if p == p.next {
				return nil
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

// eliminateHoles links every hole ring into the outer ring, producing a
// single ring the ear clipper can walk. Holes are processed left to right.
func eliminateHoles(coords []float64, holeIndexes []int, outer *node, stride, vertexCount int) *node {
	var queue []*node
	for i, start := range holeIndexes {
		end := vertexCount
		if i+1 < len(holeIndexes) {
			end = holeIndexes[i+1]
		}
		ring := linkRing(coords, start, end, stride, false)
		if ring == nil {
			continue
		}
		if ring == ring.next {
			ring.steiner = true
		}
		queue = append(queue, leftmost(ring))
	}

	for i := 1; i < len(queue); i++ {
		for j := i; j > 0 && queue[j].x < queue[j-1].x; j-- {
			queue[j], queue[j-1] = queue[j-1], queue[j]
		}
	}

	for _, hole := range queue {
		outer = eliminateHole(hole, outer)
	}
	return outer
}

func leftmost(start *node) *node {
	p := start
	best := start
	for {
		if p.x < best.x || (p.x == best.x && p.y < best.y) {
			best = p
		}
		p = p.next
		if p == start {
			break
		}
	}
	return best
}

// eliminateHole connects the hole's leftmost vertex to a visible outer
// vertex with two bridge edges, merging the rings.
func eliminateHole(hole, outer *node) *node {
	bridge := findHoleBridge(hole, outer)
	if bridge == nil {
		return outer
	}
	merged := splitRing(bridge, hole)
	filterPoints(merged, merged.next)
	return filterPoints(bridge, bridge.next)
}

// findHoleBridge finds the outer vertex visible from the hole's leftmost
// vertex using a rightward ray cast (David Eberly's method).
func findHoleBridge(hole, outer *node) *node {
	p := outer
	hx, hy := hole.x, hole.y
	qx := math.Inf(-1)
	var m *node

	// Find the edge the rightward ray from the hole vertex hits first.
	for {
		if hy <= p.y && hy >= p.next.y && p.next.y != p.y {
			x := p.x + (hy-p.y)*(p.next.x-p.x)/(p.next.y-p.y)
			if x <= hx && x > qx {
				qx = x
				if p.x < p.next.x {
					m = p
				} else {
					m = p.next
				}
				if x == hx {
					return m // ray hits the vertex itself
				}
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}

	if m == nil {
		return nil
	}

	// The bridge endpoint must not have any reflex vertex of the outer
	// ring inside the triangle (hole vertex, intersection, candidate);
	// pick the closest such candidate by angle.
	stop := m
	mx, my := m.x, m.y
	tanMin := math.Inf(1)
	p = m

	for {
		if hx >= p.x && p.x >= mx && hx != p.x &&
			pointInTriangle(ifLess(hy < my, hx, qx), hy, mx, my, ifLess(hy < my, qx, hx), hy, p.x, p.y) {
			tan := math.Abs(hy-p.y) / (hx - p.x)
			if (tan < tanMin || (tan == tanMin && p.x > m.x)) && locallyInside(p, hole) {
				m = p
				tanMin = tan
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}

	return m
}

func ifLess(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// locallyInside reports whether the diagonal from a to b lies inside the
// polygon in the neighbourhood of a.
func locallyInside(a, b *node) bool {
	if area(a.prev, a, a.next) < 0 {
		return area(a, b, a.next) >= 0 && area(a, a.prev, b) >= 0
	}
	return area(a, b, a.prev) < 0 || area(a, a.next, b) < 0
}

// splitRing connects vertices a and b with a bridge, turning one ring into
// one larger ring (when a and b are on different rings) and returning the
// new node duplicating b.
func splitRing(a, b *node) *node {
	a2 := &node{i: a.i, x: a.x, y: a.y}
	b2 := &node{i: b.i, x: b.x, y: b.y}
	an := a.next
	bp := b.prev

	a.next = b
	b.prev = a

	a2.next = an
	an.prev = a2

	b2.next = a2
	a2.prev = b2

	bp.next = b2
	b2.prev = bp

	return b2
}
