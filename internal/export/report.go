// Package export writes fit results to PDF, Excel and JSON reports.
package export

import (
	"fmt"

	"github.com/piwi3910/roomfit/internal/model"
)

// Report is everything a report shows about one fit.
type Report struct {
	Boundary model.Boundary
	Result   model.FitResult
	Settings model.FitSettings
}

// reportItem is one label/value line in a report.
type reportItem struct {
	label string
	value string
}

// NewReport bundles a boundary with the result fitted into it.
func NewReport(boundary model.Boundary, result model.FitResult, settings model.FitSettings) Report {
	return Report{Boundary: boundary, Result: result, Settings: settings}
}

func (r Report) validate() error {
	if len(r.Boundary.Outline) == 0 {
		return fmt.Errorf("no boundary to export")
	}
	return nil
}

// boundaryItems summarizes the boundary polygon.
func (r Report) boundaryItems() []reportItem {
	min, max := r.Boundary.Outline.BoundingBox()
	name := r.Boundary.Name
	if name == "" {
		name = "(unnamed)"
	}
	return []reportItem{
		{"Name", name},
		{"Vertices", fmt.Sprintf("%d", len(r.Boundary.Outline))},
		{"Area", fmt.Sprintf("%.3f m²", r.Boundary.Outline.Area())},
		{"Bounding Box", fmt.Sprintf("(%.3f, %.3f) - (%.3f, %.3f)", min.X, min.Y, max.X, max.Y)},
		{"Extent", fmt.Sprintf("%.3f x %.3f m", max.X-min.X, max.Y-min.Y)},
	}
}

// resultItems summarizes the fitted rectangle.
func (r Report) resultItems() []reportItem {
	res := r.Result
	if !res.Valid || res.Center == nil {
		return []reportItem{
			{"Status", "No rectangle found"},
			{"Seed", fmt.Sprintf("%d", res.Seed)},
		}
	}
	return []reportItem{
		{"Status", "Valid"},
		{"Center", fmt.Sprintf("(%.3f, %.3f)", res.Center.X, res.Center.Y)},
		{"Width", fmt.Sprintf("%.3f m", res.Width)},
		{"Height", fmt.Sprintf("%.3f m", res.Height)},
		{"Angle", fmt.Sprintf("%.0f°", res.Angle)},
		{"Area", fmt.Sprintf("%.3f m²", res.Area())},
		{"Coverage", fmt.Sprintf("%.1f%%", res.Coverage(r.Boundary.Outline.Area()))},
		{"Seed", fmt.Sprintf("%d", res.Seed)},
	}
}

// settingsItems summarizes the search parameters.
func (r Report) settingsItems() []reportItem {
	s := r.Settings
	search := "Sequential"
	if s.Parallel {
		search = "Parallel"
	}
	attempts := "unlimited"
	if s.MaxSeedAttempts > 0 {
		attempts = fmt.Sprintf("%d", s.MaxSeedAttempts)
	}
	return []reportItem{
		{"Seed Points", fmt.Sprintf("%d", s.SeedPointCount)},
		{"Angles", fmt.Sprintf("%d", len(s.Angles))},
		{"Aspect Ratios", fmt.Sprintf("%d", len(s.AspectRatios))},
		{"Height Gain", fmt.Sprintf("%.3f m", s.MinimumHeightGain)},
		{"Seed Attempts", attempts},
		{"Search", search},
	}
}
