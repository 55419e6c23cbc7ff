package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/piwi3910/roomfit/internal/model"
)

var (
	// ErrInvalidInput is reported when the fitter is given no boundary edges.
	ErrInvalidInput = errors.New("invalid input: boundary has no edges")
	// ErrInvalidOperation is returned when a query needs a valid rectangle.
	ErrInvalidOperation = errors.New("invalid operation: rectangle is not valid")
)

// InscribedRectangle is the largest rectangle found inside a boundary
// polygon. It is computed once and never changes afterwards.
type InscribedRectangle struct {
	edges  []model.Edge
	seed   int64
	center model.Point2D
	valid  bool
	width  float64
	height float64
	angle  float64
}

// NewInscribedRectangle fits a rectangle inside the polygon formed by edges
// using the default search settings. The same edges and seed always produce
// the same rectangle.
func NewInscribedRectangle(edges []model.Edge, seed int64) *InscribedRectangle {
	return New(model.DefaultFitSettings()).Fit(edges, seed)
}

// Center returns the rectangle center, or false if no rectangle was found.
func (r *InscribedRectangle) Center() (model.Point2D, bool) {
	return r.center, r.valid
}

// Width is the length of the rectangle's long axis before rotation.
func (r *InscribedRectangle) Width() float64 { return r.width }

// Height is the length of the rectangle's short axis before rotation.
func (r *InscribedRectangle) Height() float64 { return r.height }

// Angle is the rotation of the rectangle in degrees.
func (r *InscribedRectangle) Angle() float64 { return r.angle }

// Seed returns the seed the rectangle was fitted with.
func (r *InscribedRectangle) Seed() int64 { return r.seed }

// IsValid reports whether a rectangle was found.
func (r *InscribedRectangle) IsValid() bool { return r.valid }

// Area returns Width * Height.
func (r *InscribedRectangle) Area() float64 {
	return r.width * r.height
}

// Corners returns the rotated rectangle corners in order top-left,
// top-right, bottom-right, bottom-left. It returns nil for an invalid
// rectangle.
func (r *InscribedRectangle) Corners() []model.Point2D {
	if !r.valid {
		return nil
	}
	c := rectangleCorners(r.center, degreesToRadians(r.angle), r.width, r.height)
	return c[:]
}

// IsInsideBoundary reports whether point lies inside the boundary polygon the
// rectangle was fitted to. It fails on an invalid rectangle.
func (r *InscribedRectangle) IsInsideBoundary(point model.Point2D) (bool, error) {
	if !r.valid {
		return false, fmt.Errorf("inside boundary query: %w", ErrInvalidOperation)
	}
	return IsInsideBoundary(r.edges, point), nil
}

// Result converts the rectangle into a serializable record.
func (r *InscribedRectangle) Result() model.FitResult {
	result := model.FitResult{
		Valid:  r.valid,
		Width:  r.width,
		Height: r.height,
		Angle:  r.angle,
		Seed:   r.seed,
	}
	if r.valid {
		center := r.center
		result.Center = &center
		result.Corners = r.Corners()
	}
	return result
}

// Fitter searches for the largest rectangle inside a boundary polygon.
type Fitter struct {
	Settings model.FitSettings
	Log      logrus.FieldLogger
}

// New returns a Fitter with normalized settings that logs to the standard logger.
func New(settings model.FitSettings) *Fitter {
	return &Fitter{
		Settings: settings.Normalize(),
		Log:      logrus.StandardLogger(),
	}
}

// candidate is the running best rectangle. It is passed by value through the
// search so each search chain owns its own copy.
type candidate struct {
	center model.Point2D
	angle  float64 // degrees
	width  float64
	height float64
	found  bool
}

func (c candidate) area() float64 {
	return c.width * c.height
}

// Fit runs the search to completion and returns the best rectangle found.
// Invalid input is logged and yields an invalid rectangle.
func (f *Fitter) Fit(edges []model.Edge, seed int64) *InscribedRectangle {
	// Background is never cancelled, so the only error is handled inside.
	rect, _ := f.FitContext(context.Background(), edges, seed)
	return rect
}

// FitContext is Fit with cancellation. The returned error is non-nil only
// when ctx ends before the search completes.
func (f *Fitter) FitContext(ctx context.Context, edges []model.Edge, seed int64) (*InscribedRectangle, error) {
	rect := &InscribedRectangle{edges: edges, seed: seed}

	if len(edges) == 0 {
		f.Log.WithError(ErrInvalidInput).Error("cannot fit rectangle")
		return rect, nil
	}

	points, ok := f.seedPoints(edges, seed)
	if !ok {
		f.Log.WithFields(logrus.Fields{
			"found":    len(points),
			"wanted":   f.Settings.SeedPointCount,
			"attempts": f.Settings.MaxSeedAttempts,
		}).Warn("could not place enough seed points inside boundary")
		return rect, nil
	}

	var best candidate
	var err error
	if f.Settings.Parallel {
		best, err = f.searchParallel(ctx, edges, points)
	} else {
		best, err = f.searchChain(ctx, edges, points, f.Settings.Angles, candidate{})
	}
	if err != nil {
		return rect, err
	}

	if best.found {
		rect.center = best.center
		rect.angle = best.angle
		rect.width = best.width
		rect.height = best.height
		rect.valid = true
	}

	f.Log.WithFields(logrus.Fields{
		"valid":  rect.valid,
		"angle":  rect.angle,
		"width":  rect.width,
		"height": rect.height,
		"area":   rect.Area(),
	}).Debug("rectangle fit complete")

	return rect, nil
}

// seedPoints draws uniformly random points in the boundary's bounding box and
// keeps the ones inside the boundary until enough are collected. It returns
// false if MaxSeedAttempts draws were not enough.
func (f *Fitter) seedPoints(edges []model.Edge, seed int64) ([]model.Point2D, bool) {
	min, max := boundingBox(edges)
	rng := rand.New(rand.NewSource(seed))

	points := make([]model.Point2D, 0, f.Settings.SeedPointCount)
	for attempts := 0; len(points) < f.Settings.SeedPointCount; attempts++ {
		if f.Settings.MaxSeedAttempts > 0 && attempts >= f.Settings.MaxSeedAttempts {
			return points, false
		}
		p := model.Point2D{
			X: rng.Float64()*(max.X-min.X) + min.X,
			Y: rng.Float64()*(max.Y-min.Y) + min.Y,
		}
		if IsInsideBoundary(edges, p) {
			points = append(points, p)
		}
	}
	return points, true
}

// searchChain tries every (angle, seed point) pair in order and returns the
// best rectangle, starting from best. A rectangle replaces the best only when
// its area is strictly larger.
func (f *Fitter) searchChain(ctx context.Context, edges []model.Edge, points []model.Point2D, angles []float64, best candidate) (candidate, error) {
	for _, angle := range angles {
		for _, point := range points {
			if err := ctx.Err(); err != nil {
				return best, err
			}
			best = f.applyStep(edges, planStep(edges, point, angle), best)
		}
	}
	return best, nil
}

// extent is a candidate center with the largest width and height its
// cross-cast allows.
type extent struct {
	center    model.Point2D
	maxWidth  float64
	maxHeight float64
}

// seedStep is the part of one (angle, seed point) iteration that does not
// depend on the running best: the cross-cast from the seed point and the
// extents of its candidate centers.
type seedStep struct {
	angle   float64 // degrees
	extents []extent
}

// planStep cross-casts from point and measures the vertical midpoint, then
// the horizontal midpoint, as candidate centers.
func planStep(edges []model.Edge, point model.Point2D, angle float64) seedStep {
	step := seedStep{angle: angle}
	radians := degreesToRadians(angle)

	c, ok := crossCast(edges, point, radians)
	if !ok {
		return step
	}

	centers := [2]model.Point2D{
		model.MidPoint(c.top, c.bottom),
		model.MidPoint(c.left, c.right),
	}
	for _, center := range centers {
		if e, ok := measureExtent(edges, center, radians); ok {
			step.extents = append(step.extents, e)
		}
	}
	return step
}

// applyStep fits every candidate center of step against the running best.
func (f *Fitter) applyStep(edges []model.Edge, step seedStep, best candidate) candidate {
	radians := degreesToRadians(step.angle)
	for _, e := range step.extents {
		w, h, ok := f.fitRatios(edges, e, radians, best.area())
		if ok && w*h > best.area() {
			best = candidate{center: e.center, angle: step.angle, width: w, height: h, found: true}
		}
	}
	return best
}

// measureExtent recasts from center. The shortest leg of each arm limits that
// axis; the longer axis is the width.
func measureExtent(edges []model.Edge, center model.Point2D, angle float64) (extent, bool) {
	c, hit := crossCast(edges, center, angle)
	if !hit {
		return extent{}, false
	}
	vertical := math.Min(center.Distance(c.top), center.Distance(c.bottom))
	horizontal := math.Min(center.Distance(c.left), center.Distance(c.right))
	return extent{
		center:    center,
		maxWidth:  math.Max(vertical, horizontal) * 2,
		maxHeight: math.Min(vertical, horizontal) * 2,
	}, true
}

// tryFitMaximumRectangle finds the largest rectangle centered on center at the
// given angle, trying every aspect ratio. Only rectangles with an area of at
// least minArea are considered.
func (f *Fitter) tryFitMaximumRectangle(edges []model.Edge, center model.Point2D, angle, minArea float64) (width, height float64, ok bool) {
	e, hit := measureExtent(edges, center, angle)
	if !hit {
		return 0, 0, false
	}
	return f.fitRatios(edges, e, angle, minArea)
}

// fitRatios sweeps the aspect ratios over a measured extent.
func (f *Fitter) fitRatios(edges []model.Edge, e extent, angle, minArea float64) (width, height float64, ok bool) {
	for _, ratio := range f.Settings.AspectRatios {
		upper := math.Max(e.maxHeight, e.maxWidth/ratio)
		// Smallest height that beats the best area so far at this ratio
		lower := math.Sqrt(math.Max(width*height, minArea) / ratio)
		if lower > upper || lower*ratio > e.maxWidth {
			continue
		}

		fits := func(h float64) bool {
			return checkRectangleFit(edges, e.center, angle, ratio*h, h)
		}
		h, found, _ := searchHeight(fits, lower, upper, math.Max(lower, e.maxHeight/2), f.Settings.MinimumHeightGain)
		if found {
			width = ratio * h
			height = h
			ok = true
		}
	}
	return width, height, ok
}

// searchHeight binary searches [lower, upper] for the largest height that
// fits, probing start first. It stops once the range is no wider than gain,
// so an already collapsed range is never probed, and returns the last height
// that fit along with the number of probes.
func searchHeight(fits func(height float64) bool, lower, upper, start, gain float64) (best float64, found bool, iterations int) {
	h := start
	for upper-lower > gain {
		iterations++
		if fits(h) {
			lower = h
			best = h
			found = true
			h = (upper + h) / 2
		} else {
			upper = h
			h = (h + lower) / 2
		}
	}
	return best, found, iterations
}

// checkRectangleFit reports whether the rotated rectangle crosses no boundary
// edge.
func checkRectangleFit(edges []model.Edge, center model.Point2D, angle, width, height float64) bool {
	c := rectangleCorners(center, angle, width, height)
	sides := [4]model.Edge{
		{A: c[0], B: c[1]},
		{A: c[1], B: c[2]},
		{A: c[3], B: c[2]},
		{A: c[0], B: c[3]},
	}

	for _, e := range edges {
		for _, side := range sides {
			if _, hit := IntersectionPoint(e, side); hit {
				return false
			}
		}
	}
	return true
}

// rectangleCorners returns top-left, top-right, bottom-right and bottom-left
// corners of a width x height rectangle rotated by angle radians about center.
func rectangleCorners(center model.Point2D, angle, width, height float64) [4]model.Point2D {
	hw := width / 2
	hh := height / 2
	corners := [4]model.Point2D{
		{X: center.X - hw, Y: center.Y + hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X - hw, Y: center.Y - hh},
	}
	for i := range corners {
		corners[i] = RotatePoint(corners[i], center, angle)
	}
	return corners
}

// cross holds the nearest boundary hits in the four directions of a
// cross-cast.
type cross struct {
	top, bottom, left, right model.Point2D
}

// crossCast casts two perpendicular lines through point, rotated by angle
// radians, and finds the nearest boundary intersection in each of the four
// directions. It fails when point is outside the boundary or any direction
// has no hit.
func crossCast(edges []model.Edge, point model.Point2D, angle float64) (cross, bool) {
	var c cross
	if !IsInsideBoundary(edges, point) {
		return c, false
	}

	vertical := model.Edge{
		A: RotatePoint(model.Point2D{X: point.X, Y: point.Y + MaxWidth}, point, angle),
		B: RotatePoint(model.Point2D{X: point.X, Y: point.Y - MaxWidth}, point, angle),
	}
	horizontal := model.Edge{
		A: RotatePoint(model.Point2D{X: point.X + MaxWidth, Y: point.Y}, point, angle),
		B: RotatePoint(model.Point2D{X: point.X - MaxWidth, Y: point.Y}, point, angle),
	}

	var hasTop, hasBottom, hasLeft, hasRight bool
	nearer := func(hit, current model.Point2D, has bool) bool {
		return !has || point.DistanceSquared(hit) < point.DistanceSquared(current)
	}

	for _, e := range edges {
		if hit, ok := IntersectionPoint(e, vertical); ok {
			// Undo the rotation to tell above from below
			if RotatePoint(hit, point, -angle).Y > point.Y {
				if nearer(hit, c.top, hasTop) {
					c.top, hasTop = hit, true
				}
			} else if nearer(hit, c.bottom, hasBottom) {
				c.bottom, hasBottom = hit, true
			}
		}

		if hit, ok := IntersectionPoint(e, horizontal); ok {
			if RotatePoint(hit, point, -angle).X > point.X {
				if nearer(hit, c.right, hasRight) {
					c.right, hasRight = hit, true
				}
			} else if nearer(hit, c.left, hasLeft) {
				c.left, hasLeft = hit, true
			}
		}
	}

	return c, hasTop && hasBottom && hasLeft && hasRight
}
