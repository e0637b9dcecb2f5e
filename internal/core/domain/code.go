package domain

// Code is a named tag in the two-level code taxonomy.
type Code struct {
	// ID is an opaque, globally unique identifier.
	ID string

	// Label is the non-empty user-visible name.
	Label string

	// ParentID is the parent code's ID, nil for top-level codes.
	ParentID *string

	// Description is optional free text.
	Description string

	// Color is an optional display hint (e.g. "#ff8800").
	// It never affects identity or matching.
	Color string

	// SortOrder gives stable display ordering; ties are broken by Label.
	SortOrder int
}

// IsChild reports whether the code has a parent.
func (c Code) IsChild() bool {
	return c.ParentID != nil
}

// NewCode describes a code to be added to the taxonomy.
type NewCode struct {
	Label       string
	ParentID    *string
	Description string
	Color       string
}

// CodeUpdate is a partial update. Nil fields are left unchanged.
type CodeUpdate struct {
	Label       *string
	Description *string
	Color       *string

	// ParentID sets a new parent when non-nil.
	ParentID *string

	// ClearParent makes the code top-level. It takes precedence over ParentID.
	ClearParent bool
}

// Empty reports whether the update changes nothing.
func (u CodeUpdate) Empty() bool {
	return u.Label == nil && u.Description == nil && u.Color == nil &&
		u.ParentID == nil && !u.ClearParent
}

// TouchesParent reports whether the update changes the parent.
func (u CodeUpdate) TouchesParent() bool {
	return u.ParentID != nil || u.ClearParent
}
