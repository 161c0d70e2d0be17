package model

import "time"

// Template is a reusable task blueprint.
type Template struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Energy       Energy    `json:"energy"`
	TimeEstimate int       `json:"time"`
	Contexts     []string  `json:"contexts,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Subtasks     []Subtask `json:"subtasks,omitempty"`
	Category     string    `json:"category,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewTemplate(title string, now time.Time) Template {
	return Template{
		ID:        NewID("tmpl"),
		Title:     title,
		Energy:    EnergyNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Instantiate produces a fresh inbox task from the template. Subtasks are
// deep-copied with completion cleared.
func (tp Template) Instantiate(now time.Time) Task {
	t := NewTask(tp.Title, "", now)
	t.Energy = tp.Energy
	t.TimeEstimate = tp.TimeEstimate
	t.Notes = tp.Notes
	if tp.Contexts != nil {
		t.Contexts = append([]string(nil), tp.Contexts...)
	}
	t.Subtasks = cloneSubtasks(tp.Subtasks)
	for i := range t.Subtasks {
		t.Subtasks[i].Completed = false
	}
	return t
}

func (tp Template) Clone() Template {
	out := tp
	if tp.Contexts != nil {
		out.Contexts = append([]string(nil), tp.Contexts...)
	}
	out.Subtasks = cloneSubtasks(tp.Subtasks)
	return out
}
