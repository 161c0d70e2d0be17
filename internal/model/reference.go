package model

import "time"

// Reference is non-actionable material kept for lookup, not for doing.
type Reference struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	URL       string    `json:"url,omitempty"`
	Category  string    `json:"category,omitempty"`
	Contexts  []string  `json:"contexts,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewReference(title string, now time.Time) Reference {
	return Reference{
		ID:        NewID("ref"),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r Reference) Clone() Reference {
	out := r
	if r.Contexts != nil {
		out.Contexts = append([]string(nil), r.Contexts...)
	}
	return out
}
