// Package view holds the pure functions rendering code reads the
// collections through: filtering, sorting, and priority scoring. Nothing
// here has state of its own; everything is recomputed per render.
package view

import (
	"strings"
	"time"

	"gtdone/internal/model"
)

// Filter narrows the task collection. Zero-valued fields match everything.
type Filter struct {
	Statuses []model.Status
	Contexts []string
	Energy   model.Energy
	// ProjectID filters by back-reference; "" means any project,
	// "none" matches tasks without one.
	ProjectID string
	// Search matches title, description, and notes, case-insensitively.
	Search string
	// HideDeferred drops tasks whose defer date is still in the future.
	HideDeferred bool
	// Due narrows by due state.
	Due DueFilter
}

type DueFilter string

const (
	DueAny      DueFilter = ""
	DueOverdue  DueFilter = "overdue"
	DueToday    DueFilter = "today"
	DueUpcoming DueFilter = "upcoming"
)

// ProjectNone matches tasks with no project back-reference.
const ProjectNone = "none"

func Apply(tasks []model.Task, f Filter, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, f, now) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t model.Task, f Filter, now time.Time) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if t.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Contexts) > 0 {
		found := false
		for _, c := range f.Contexts {
			if t.HasContext(c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Energy != "" && t.Energy != f.Energy {
		return false
	}

	switch f.ProjectID {
	case "":
	case ProjectNone:
		if t.ProjectID != nil {
			return false
		}
	default:
		if t.ProjectID == nil || *t.ProjectID != f.ProjectID {
			return false
		}
	}

	if f.HideDeferred && t.IsDeferred(now) {
		return false
	}

	switch f.Due {
	case DueAny:
	case DueOverdue:
		if !t.IsOverdue(now) {
			return false
		}
	case DueToday:
		if !t.IsDueToday(now) {
			return false
		}
	case DueUpcoming:
		if t.Completed || t.DueDate == nil || *t.DueDate <= model.DateString(now) {
			return false
		}
	}

	if q := strings.TrimSpace(strings.ToLower(f.Search)); q != "" {
		haystack := strings.ToLower(t.Title + " " + t.Description + " " + t.Notes)
		if !strings.Contains(haystack, q) {
			return false
		}
	}

	return true
}

// Available keeps tasks that are actionable right now: not completed, not
// deferred, and with all wait-on dependencies met.
func Available(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed || t.IsDeferred(now) {
			continue
		}
		if !t.DependenciesMet(tasks) {
			continue
		}
		out = append(out, t)
	}
	return out
}
