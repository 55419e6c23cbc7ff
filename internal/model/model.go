package model

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in boundary units (meters).
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the Euclidean distance from p to q.
func (p Point2D) Distance(q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// DistanceSquared avoids the square root when only ordering matters.
func (p Point2D) DistanceSquared(q Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Point2D) Point2D {
	return Point2D{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Edge is a directed line segment from A to B.
type Edge struct {
	A Point2D `json:"a"`
	B Point2D `json:"b"`
}

// NewEdge builds an edge from two endpoints.
func NewEdge(a, b Point2D) Edge {
	return Edge{A: a, B: b}
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// Edges returns the closed edge loop of the outline. The last edge runs
// from the final vertex back to the first one.
func (o Outline) Edges() []Edge {
	if len(o) == 0 {
		return nil
	}
	edges := make([]Edge, len(o))
	for i := range o {
		edges[i] = Edge{A: o[i], B: o[(i+1)%len(o)]}
	}
	return edges
}

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Area returns the unsigned area enclosed by the outline.
func (o Outline) Area() float64 {
	if len(o) < 3 {
		return 0
	}
	ring := make([]geom.Point, len(o))
	for i, p := range o {
		ring[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return geom.Polygon{ring}.Area()
}

// MinOutlineExtent is the smallest bounding box side, in meters, an outline
// may have and still be treated as a room boundary.
const MinOutlineExtent = 0.01

// Validate reports why an outline cannot be used as a boundary, or nil.
func (o Outline) Validate() error {
	if len(o) < 3 {
		return fmt.Errorf("boundary needs at least 3 vertices, got %d", len(o))
	}
	for i, p := range o {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("vertex %d has a non-finite coordinate", i+1)
		}
	}
	min, max := o.BoundingBox()
	if max.X-min.X < MinOutlineExtent || max.Y-min.Y < MinOutlineExtent {
		return fmt.Errorf("boundary is degenerate (%.3f x %.3f m)", max.X-min.X, max.Y-min.Y)
	}
	return nil
}

// Boundary is a named room-boundary polygon.
type Boundary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Outline Outline `json:"outline"`
}

// NewBoundary creates a boundary with a generated ID.
func NewBoundary(name string, outline Outline) Boundary {
	return Boundary{
		ID:      uuid.New().String()[:8],
		Name:    name,
		Outline: outline,
	}
}

// FitSettings holds the search parameters of the inscribed rectangle fitter.
type FitSettings struct {
	SeedPointCount    int       `json:"seed_point_count" toml:"seed_point_count"`       // Random starting points inside the boundary
	Angles            []float64 `json:"angles" toml:"angles"`                           // Rectangle orientations to try, degrees
	AspectRatios      []float64 `json:"aspect_ratios" toml:"aspect_ratios"`             // Width/height ratios to try
	MinimumHeightGain float64   `json:"minimum_height_gain" toml:"minimum_height_gain"` // Binary search convergence threshold, meters
	MaxSeedAttempts   int       `json:"max_seed_attempts" toml:"max_seed_attempts"`     // Cap on rejection-sampling draws, 0 = unlimited
	Parallel          bool      `json:"parallel" toml:"parallel"`                       // Run angle chains concurrently
}

// Default fitter constants.
const (
	DefaultSeedPointCount    = 30
	DefaultMinimumHeightGain = 0.01
	DefaultMaxSeedAttempts   = 1000000
)

// FitAngles returns the default orientations: 0 to 165 degrees in 15 degree
// steps. A rectangle at angle a is the same as one at a+180.
func FitAngles() []float64 {
	return SteppedRange(0, 165, 15)
}

// FitAspectRatios returns the default ratios 1.0 to 15.0 in steps of 0.5.
func FitAspectRatios() []float64 {
	return SteppedRange(1, 15, 0.5)
}

// SteppedRange returns from, from+step, ... up to and including to.
// Values are computed by multiplication so they do not accumulate error.
func SteppedRange(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return nil
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = from + float64(i)*step
	}
	return values
}

// DefaultFitSettings returns the reference search parameters.
func DefaultFitSettings() FitSettings {
	return FitSettings{
		SeedPointCount:    DefaultSeedPointCount,
		Angles:            FitAngles(),
		AspectRatios:      FitAspectRatios(),
		MinimumHeightGain: DefaultMinimumHeightGain,
		MaxSeedAttempts:   DefaultMaxSeedAttempts,
		Parallel:          false,
	}
}

// Normalize fills zero or empty fields with their defaults.
func (s FitSettings) Normalize() FitSettings {
	defaults := DefaultFitSettings()
	if s.SeedPointCount <= 0 {
		s.SeedPointCount = defaults.SeedPointCount
	}
	if len(s.Angles) == 0 {
		s.Angles = defaults.Angles
	}
	if len(s.AspectRatios) == 0 {
		s.AspectRatios = defaults.AspectRatios
	}
	if s.MinimumHeightGain <= 0 {
		s.MinimumHeightGain = defaults.MinimumHeightGain
	}
	if s.MaxSeedAttempts < 0 {
		s.MaxSeedAttempts = 0
	}
	return s
}

// FitResult is the serializable record of a fitted rectangle.
type FitResult struct {
	Valid   bool      `json:"valid"`
	Center  *Point2D  `json:"center,omitempty"` // nil when no rectangle was found
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Angle   float64   `json:"angle"` // degrees
	Seed    int64     `json:"seed"`
	Corners []Point2D `json:"corners,omitempty"`
}

// Area returns the rectangle area.
func (r FitResult) Area() float64 {
	return r.Width * r.Height
}

// Coverage returns the percentage of the boundary area covered by the
// rectangle.
func (r FitResult) Coverage(boundaryArea float64) float64 {
	if boundaryArea <= 0 {
		return 0
	}
	return (r.Area() / boundaryArea) * 100.0
}

// Project ties a boundary, its fit parameters and the last result together
// for save/load.
type Project struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Boundary Boundary    `json:"boundary"`
	Seed     int64       `json:"seed"`
	Settings FitSettings `json:"settings"`
	Result   *FitResult  `json:"result,omitempty"`
}

// NewProject returns an untitled project with default settings.
func NewProject() Project {
	return Project{
		ID:       uuid.New().String()[:8],
		Name:     "Untitled",
		Boundary: Boundary{Outline: Outline{}},
		Settings: DefaultFitSettings(),
	}
}
