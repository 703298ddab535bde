package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single flat-colored triangle. The winding order of
// the vertices fixes the direction of the outward normal.
type Triangle struct {
	P1, P2, P3 core.Vec3 // The three vertices
	Color      core.Vec3 // Flat color, channels in [0, 255]
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(p1, p2, p3, color core.Vec3) Triangle {
	return Triangle{P1: p1, P2: p2, P3: p3, Color: color}
}

// Normal returns the unit face normal. Collinear vertices give a zero vector.
func (t Triangle) Normal() core.Vec3 {
	edge1 := t.P2.Subtract(t.P1)
	edge2 := t.P3.Subtract(t.P1)
	return edge1.Cross(edge2).Normalize()
}

// NormalAt returns the face normal, which is the same everywhere on the triangle
func (t Triangle) NormalAt(core.Vec3) core.Vec3 {
	return t.Normal()
}

// Albedo returns the triangle's flat color
func (t Triangle) Albedo() core.Vec3 {
	return t.Color
}

// Centroid returns the average of the three vertices
func (t Triangle) Centroid() core.Vec3 {
	return t.P1.Add(t.P2).Add(t.P3).Multiply(1.0 / 3.0)
}

// Intersect tests the ray against the triangle's plane and then checks that
// the plane hit lies on the inner side of all three edges. Points exactly on
// an edge count as inside.
func (t Triangle) Intersect(ray core.Ray) (float64, core.Vec3, bool) {
	n := t.Normal()

	// Nearly parallel rays (and degenerate triangles, whose normal is zero)
	nDotDir := n.Dot(ray.Direction)
	if math.Abs(nDotDir) < ParallelEpsilon {
		return 0, core.Vec3{}, false
	}

	// Solve the plane equation dot(n, O + tD) = dot(n, P1) for t
	dist := n.Dot(t.P1.Subtract(ray.Origin)) / nDotDir
	if dist < 0 {
		return 0, core.Vec3{}, false
	}

	p := ray.At(dist)
	if !t.insideEdge(n, t.P1, t.P2, p) ||
		!t.insideEdge(n, t.P2, t.P3, p) ||
		!t.insideEdge(n, t.P3, t.P1, p) {
		return 0, core.Vec3{}, false
	}

	return dist, p, true
}

// insideEdge reports whether p lies on the inner side of edge a->b
func (t Triangle) insideEdge(n, a, b, p core.Vec3) bool {
	c := b.Subtract(a).Cross(p.Subtract(a))
	return n.Dot(c) >= 0
}

// Barycentric returns the weights (w1, w2, w3) of p with respect to P1, P2
// and P3. The weights sum to one for points in the triangle's plane.
// Degenerate triangles return zero weights.
func (t Triangle) Barycentric(p core.Vec3) (w1, w2, w3 float64) {
	full := t.P2.Subtract(t.P1).Cross(t.P3.Subtract(t.P1))
	area := full.LengthSquared()
	if area == 0 {
		return 0, 0, 0
	}

	// Sub-triangle areas opposite each vertex, signed against the full normal
	w1 = t.P3.Subtract(t.P2).Cross(p.Subtract(t.P2)).Dot(full) / area
	w2 = t.P1.Subtract(t.P3).Cross(p.Subtract(t.P3)).Dot(full) / area
	w3 = 1 - w1 - w2
	return w1, w2, w3
}
