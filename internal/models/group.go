package models

// Group represents a named collection of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g. "Roommates", "Goa Trip").
	Name string `json:"name"`

	// Description is an optional longer description.
	Description string `json:"description"`

	// Members is the set of member user ids. Always bare id strings, never
	// duplicated; the creator is always included.
	Members []string `json:"members"`

	// CreatedBy is the user id of the group creator.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
