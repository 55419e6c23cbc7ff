package engine

import (
	"math"

	"github.com/piwi3910/roomfit/internal/model"
)

// MaxWidth bounds the coordinate space. Cross-cast rays are built with this
// length, so it must be far larger than any real room.
const MaxWidth = 1e5

// parallelEpsilon is the determinant magnitude below which two segments are
// treated as parallel.
const parallelEpsilon = 1e-10

// InvalidPoint marks "no point" in fixed-layout records that cannot hold an
// optional value. Functions in this package report absence with a boolean
// instead and never return it.
var InvalidPoint = model.Point2D{X: MaxWidth + 1, Y: MaxWidth + 1}

// IsValidPoint reports whether p is anything other than InvalidPoint.
func IsValidPoint(p model.Point2D) bool {
	return p != InvalidPoint
}

// IntersectionPoint returns the point where segments a and b cross. The
// intersection must lie within both segments; parallel and collinear
// segments never intersect.
func IntersectionPoint(a, b model.Edge) (model.Point2D, bool) {
	dA := a.B.Sub(a.A)
	dB := b.B.Sub(b.A)

	det := dA.X*dB.Y - dA.Y*dB.X
	if math.Abs(det) < parallelEpsilon {
		return model.Point2D{}, false
	}

	c := b.A.Sub(a.A)
	t := (c.X*dB.Y - c.Y*dB.X) / det
	if t < 0 || t > 1 {
		return model.Point2D{}, false
	}
	u := (c.X*dA.Y - c.Y*dA.X) / det
	if u < 0 || u > 1 {
		return model.Point2D{}, false
	}

	return model.Point2D{X: a.A.X + t*dA.X, Y: a.A.Y + t*dA.Y}, true
}

// IsInsideBoundary reports whether point lies inside the polygon formed by
// edges, using the even-odd rule with a ray cast toward +X.
//
// Each edge covers the half-open y range [min, max), so a ray through a
// shared vertex is counted once and horizontal edges are never counted.
// Points exactly on an edge fall on either side depending on the edge, but
// the answer for a given input never changes.
func IsInsideBoundary(edges []model.Edge, point model.Point2D) bool {
	if len(edges) == 0 {
		return false
	}

	inside := false
	for _, e := range edges {
		if (e.A.Y <= point.Y && point.Y < e.B.Y) || (e.B.Y <= point.Y && point.Y < e.A.Y) {
			x := e.A.X + (point.Y-e.A.Y)*(e.B.X-e.A.X)/(e.B.Y-e.A.Y)
			if point.X <= x {
				inside = !inside
			}
		}
	}
	return inside
}

// RotatePoint rotates point counter-clockwise by angle radians about pivot.
func RotatePoint(point, pivot model.Point2D, angle float64) model.Point2D {
	s, c := math.Sincos(angle)
	x := point.X - pivot.X
	y := point.Y - pivot.Y
	return model.Point2D{
		X: x*c - y*s + pivot.X,
		Y: x*s + y*c + pivot.Y,
	}
}

// degreesToRadians converts an angle in degrees to radians.
func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// boundingBox returns the axis-aligned extent of every edge endpoint.
func boundingBox(edges []model.Edge) (min, max model.Point2D) {
	min = model.Point2D{X: math.Inf(1), Y: math.Inf(1)}
	max = model.Point2D{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, e := range edges {
		min.X = math.Min(min.X, math.Min(e.A.X, e.B.X))
		min.Y = math.Min(min.Y, math.Min(e.A.Y, e.B.Y))
		max.X = math.Max(max.X, math.Max(e.A.X, e.B.X))
		max.Y = math.Max(max.Y, math.Max(e.A.Y, e.B.Y))
	}
	return min, max
}
