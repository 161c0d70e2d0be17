package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gtdone/internal/model"
)

func TestCalculate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	past := "2026-03-01"
	today := "2026-03-10"

	proj := model.NewProject("write book", "", now)
	idle := model.NewProject("empty project", "", now)
	archived := model.NewProject("old", "", now)
	archived.Archive(now)

	overdue := model.NewTask("overdue", "", now)
	overdue.Status = model.StatusNext
	overdue.DueDate = &past
	overdue.Contexts = []string{"@office"}
	overdue.ProjectID = &proj.ID

	dueToday := model.NewTask("today", "", now)
	dueToday.Status = model.StatusNext
	dueToday.DueDate = &today
	dueToday.Starred = true

	doneRecent := model.NewTask("done recently", "", now)
	doneRecent.MarkComplete(now.AddDate(0, 0, -2))

	doneOld := model.NewTask("done long ago", "", now)
	doneOld.MarkComplete(now.AddDate(0, 0, -30))

	blocked := model.NewTask("blocked", "", now)
	blocked.Status = model.StatusWaiting
	blocked.WaitingForTaskIDs = []string{overdue.ID}

	tasks := []model.Task{overdue, dueToday, doneRecent, doneOld, blocked}
	projects := []model.Project{proj, idle, archived}

	stats := Calculate(tasks, projects, now)

	assert.Equal(t, "2026-03-10", stats.Period)
	assert.Equal(t, 2, stats.ByStatus[model.StatusNext])
	assert.Equal(t, 1, stats.ByStatus[model.StatusWaiting])
	assert.Equal(t, 2, stats.ByStatus[model.StatusCompleted])
	assert.Equal(t, 1, stats.ByContext["@office"])
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 1, stats.DueToday)
	assert.Equal(t, 1, stats.Starred)
	assert.Equal(t, 1, stats.Blocked)
	assert.Equal(t, 1, stats.CompletedLast7)
	assert.Equal(t, 2, stats.ActiveProjects)
	assert.Equal(t, 1, stats.StalledProjects)
}
