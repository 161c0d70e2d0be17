package view

import (
	"sort"
	"strings"

	"gtdone/internal/model"
)

type SortKey string

const (
	SortByDue     SortKey = "due"
	SortByCreated SortKey = "created"
	SortByTime    SortKey = "time"
	SortByTitle   SortKey = "title"
)

// Sort orders tasks in place by the tie-break chain: starred first, then
// explicit position, then the selected key.
func Sort(tasks []model.Task, key SortKey) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		if a.Starred != b.Starred {
			return a.Starred
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}

		switch key {
		case SortByDue:
			da, db := a.DueDate, b.DueDate
			switch {
			case da == nil && db == nil:
			case da == nil:
				return false
			case db == nil:
				return true
			case *da != *db:
				return *da < *db
			}
		case SortByCreated:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case SortByTime:
			if a.TimeEstimate != b.TimeEstimate {
				return a.TimeEstimate < b.TimeEstimate
			}
		case SortByTitle:
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta != tb {
				return ta < tb
			}
		}
		return false
	})
}
