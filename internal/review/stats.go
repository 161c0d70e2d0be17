// Package review computes weekly-review aggregates over the live
// collections. Everything is derived; nothing here is persisted.
package review

import (
	"time"

	"gtdone/internal/model"
)

type Stats struct {
	Period string `json:"period"`

	ByStatus  map[model.Status]int `json:"by_status"`
	ByContext map[string]int       `json:"by_context"`

	Overdue        int `json:"overdue"`
	DueToday       int `json:"due_today"`
	Starred        int `json:"starred"`
	Blocked        int `json:"blocked"`
	CompletedLast7 int `json:"completed_last_7"`

	ActiveProjects  int `json:"active_projects"`
	StalledProjects int `json:"stalled_projects"`
}

// Calculate walks the collections once. A stalled project is an active one
// with no incomplete task pointing at it.
func Calculate(tasks []model.Task, projects []model.Project, now time.Time) Stats {
	stats := Stats{
		Period:    model.DateString(now),
		ByStatus:  make(map[model.Status]int),
		ByContext: make(map[string]int),
	}

	weekAgo := now.AddDate(0, 0, -7)
	openByProject := make(map[string]int)

	for _, t := range tasks {
		stats.ByStatus[t.Status]++
		for _, c := range t.Contexts {
			stats.ByContext[c]++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		if t.IsDueToday(now) {
			stats.DueToday++
		}
		if t.Starred && !t.Completed {
			stats.Starred++
		}
		if !t.Completed && !t.DependenciesMet(tasks) {
			stats.Blocked++
		}
		if t.Completed && t.CompletedAt != nil && t.CompletedAt.After(weekAgo) {
			stats.CompletedLast7++
		}
		if !t.Completed && t.ProjectID != nil {
			openByProject[*t.ProjectID]++
		}
	}

	for _, p := range projects {
		if p.Status != model.ProjectActive {
			continue
		}
		stats.ActiveProjects++
		if openByProject[p.ID] == 0 {
			stats.StalledProjects++
		}
	}

	return stats
}
