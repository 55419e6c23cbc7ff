package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/roomfit/internal/engine"
	"github.com/piwi3910/roomfit/internal/model"
)

func printFitResult(w io.Writer, b model.Boundary, r model.FitResult) {
	area := b.Outline.Area()
	fmt.Fprintf(w, "Boundary: %s (%d vertices, %.2f m²)\n", b.Name, len(b.Outline), area)

	if !r.Valid || r.Center == nil {
		fmt.Fprintf(w, "No rectangle found (seed %d)\n", r.Seed)
		return
	}

	fmt.Fprintln(w, "Largest inscribed rectangle")
	fmt.Fprintln(w, "===========================")
	fmt.Fprintf(w, "  Center:    (%.3f, %.3f)\n", r.Center.X, r.Center.Y)
	fmt.Fprintf(w, "  Width:     %.3f m\n", r.Width)
	fmt.Fprintf(w, "  Height:    %.3f m\n", r.Height)
	fmt.Fprintf(w, "  Angle:     %.0f°\n", r.Angle)
	fmt.Fprintf(w, "  Area:      %.3f m²\n", r.Area())
	fmt.Fprintf(w, "  Coverage:  %.1f%%\n", r.Coverage(area))
	fmt.Fprintf(w, "  Seed:      %d\n", r.Seed)
	for i, c := range r.Corners {
		fmt.Fprintf(w, "  Corner %d:  (%.3f, %.3f)\n", i+1, c.X, c.Y)
	}
}

func printComparison(w io.Writer, b model.Boundary, results []engine.ComparisonResult, best int) {
	fmt.Fprintf(w, "Boundary: %s (%.2f m²)\n\n", b.Name, b.Outline.Area())
	fmt.Fprintf(w, "  %-22s %8s %8s %6s %10s %9s\n", "Scenario", "Width", "Height", "Angle", "Area", "Coverage")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 68))
	for i, r := range results {
		marker := " "
		if i == best {
			marker = "*"
		}
		if !r.Result.Valid {
			fmt.Fprintf(w, "%s %-22s %s\n", marker, r.Scenario.Name, "no rectangle found")
			continue
		}
		fmt.Fprintf(w, "%s %-22s %8.3f %8.3f %6.0f %10.3f %8.1f%%\n",
			marker, r.Scenario.Name, r.Result.Width, r.Result.Height, r.Result.Angle, r.Area, r.Coverage)
	}
	if best >= 0 {
		fmt.Fprintf(w, "\n* best: %s\n", results[best].Scenario.Name)
	}
}
