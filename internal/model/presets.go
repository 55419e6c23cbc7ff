package model

import "math"

// BoundaryPreset is a built-in room boundary, useful for trying the fitter
// without importing a file.
type BoundaryPreset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Outline     Outline `json:"outline"`
}

// Built-in boundary presets
var BoundaryPresets = []BoundaryPreset{
	{
		Name:        "square",
		Description: "10 x 10 m square room",
		Outline:     Outline{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
	},
	{
		Name:        "rectangle",
		Description: "8 x 4 m rectangular room",
		Outline:     Outline{{0, 0}, {8, 0}, {8, 4}, {0, 4}},
	},
	{
		Name:        "l-room",
		Description: "L-shaped room, 6 x 6 m with a 3 x 3 m corner removed",
		Outline:     Outline{{0, 0}, {6, 0}, {6, 3}, {3, 3}, {3, 6}, {0, 6}},
	},
	{
		Name:        "u-room",
		Description: "U-shaped room, 9 x 6 m with a 3 x 4 m notch",
		Outline:     Outline{{0, 0}, {9, 0}, {9, 6}, {6, 6}, {6, 2}, {3, 2}, {3, 6}, {0, 6}},
	},
	{
		Name:        "octagon",
		Description: "Regular octagon with a 3 m circumradius",
		Outline:     regularPolygon(8, 3),
	},
}

// GetPreset returns a boundary preset by name.
func GetPreset(name string) (BoundaryPreset, bool) {
	for _, p := range BoundaryPresets {
		if p.Name == name {
			return p, true
		}
	}
	return BoundaryPreset{}, false
}

// GetPresetNames returns a list of all available preset names.
func GetPresetNames() []string {
	var names []string
	for _, p := range BoundaryPresets {
		names = append(names, p.Name)
	}
	return names
}

// regularPolygon approximates a circle of the given radius centered on the
// origin with n vertices.
func regularPolygon(n int, radius float64) Outline {
	outline := make(Outline, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		outline[i] = Point2D{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
	return outline
}
