package model

import (
	"time"
)

// SavedBoundary is a boundary kept in the user's library together with the
// settings last used to fit it.
type SavedBoundary struct {
	Boundary  Boundary    `json:"boundary"`
	Settings  FitSettings `json:"settings"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// NewSavedBoundary captures a boundary under the given name. The outline is
// copied so later edits to the caller's slice do not leak into the library.
func NewSavedBoundary(name string, outline Outline, settings FitSettings) SavedBoundary {
	now := time.Now().UTC().Format(time.RFC3339)
	return SavedBoundary{
		Boundary:  NewBoundary(name, copyOutline(outline)),
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BoundaryLibrary holds a collection of saved boundaries.
type BoundaryLibrary struct {
	Boundaries []SavedBoundary `json:"boundaries"`
}

// NewBoundaryLibrary creates an empty library.
func NewBoundaryLibrary() BoundaryLibrary {
	return BoundaryLibrary{
		Boundaries: []SavedBoundary{},
	}
}

// Put adds a boundary, replacing any existing entry with the same name.
// The original creation time is kept on replacement.
func (l *BoundaryLibrary) Put(b SavedBoundary) {
	for i := range l.Boundaries {
		if l.Boundaries[i].Boundary.Name == b.Boundary.Name {
			b.CreatedAt = l.Boundaries[i].CreatedAt
			l.Boundaries[i] = b
			return
		}
	}
	l.Boundaries = append(l.Boundaries, b)
}

// Remove removes a boundary by name. Returns true if found and removed.
func (l *BoundaryLibrary) Remove(name string) bool {
	for i, b := range l.Boundaries {
		if b.Boundary.Name == name {
			l.Boundaries = append(l.Boundaries[:i], l.Boundaries[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the boundary with the given name, or nil.
func (l *BoundaryLibrary) FindByName(name string) *SavedBoundary {
	for i := range l.Boundaries {
		if l.Boundaries[i].Boundary.Name == name {
			return &l.Boundaries[i]
		}
	}
	return nil
}

// Names returns the saved boundary names in insertion order.
func (l *BoundaryLibrary) Names() []string {
	names := make([]string, len(l.Boundaries))
	for i, b := range l.Boundaries {
		names[i] = b.Boundary.Name
	}
	return names
}

func copyOutline(o Outline) Outline {
	if o == nil {
		return Outline{}
	}
	cp := make(Outline, len(o))
	copy(cp, o)
	return cp
}
