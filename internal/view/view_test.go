package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gtdone/internal/model"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func mk(title string, status model.Status) model.Task {
	t := model.NewTask(title, "", now)
	t.Status = status
	return t
}

func TestApply_StatusContextEnergy(t *testing.T) {
	home := mk("vacuum", model.StatusNext)
	home.Contexts = []string{"@home"}
	home.Energy = model.EnergyLow

	office := mk("report", model.StatusNext)
	office.Contexts = []string{"@office"}
	office.Energy = model.EnergyHigh

	someday := mk("learn piano", model.StatusSomeday)

	tasks := []model.Task{home, office, someday}

	got := Apply(tasks, Filter{Statuses: []model.Status{model.StatusNext}}, now)
	assert.Len(t, got, 2)

	got = Apply(tasks, Filter{Contexts: []string{"@home"}}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, "vacuum", got[0].Title)

	got = Apply(tasks, Filter{Energy: model.EnergyHigh}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, "report", got[0].Title)
}

func TestApply_ProjectAndSearch(t *testing.T) {
	pid := "proj_1"
	inProject := mk("draft outline", model.StatusNext)
	inProject.ProjectID = &pid
	loose := mk("buy milk", model.StatusInbox)
	loose.Notes = "the oat kind"

	tasks := []model.Task{inProject, loose}

	got := Apply(tasks, Filter{ProjectID: pid}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, "draft outline", got[0].Title)

	got = Apply(tasks, Filter{ProjectID: ProjectNone}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Title)

	got = Apply(tasks, Filter{Search: "OAT"}, now)
	assert.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Title)
}

func TestApply_DueAndDeferred(t *testing.T) {
	past, today, future := "2026-03-01", "2026-03-10", "2026-03-20"

	overdue := mk("late", model.StatusNext)
	overdue.DueDate = &past
	dueToday := mk("today", model.StatusNext)
	dueToday.DueDate = &today
	upcoming := mk("later", model.StatusNext)
	upcoming.DueDate = &future
	deferred := mk("not yet", model.StatusNext)
	deferred.DeferDate = &future

	tasks := []model.Task{overdue, dueToday, upcoming, deferred}

	assert.Equal(t, "late", Apply(tasks, Filter{Due: DueOverdue}, now)[0].Title)
	assert.Equal(t, "today", Apply(tasks, Filter{Due: DueToday}, now)[0].Title)
	assert.Equal(t, "later", Apply(tasks, Filter{Due: DueUpcoming}, now)[0].Title)

	got := Apply(tasks, Filter{HideDeferred: true}, now)
	assert.Len(t, got, 3)
}

func TestAvailable_SkipsBlockedAndDeferred(t *testing.T) {
	dep := mk("prerequisite", model.StatusNext)
	blocked := mk("blocked", model.StatusWaiting)
	blocked.WaitingForTaskIDs = []string{dep.ID}
	free := mk("free", model.StatusNext)

	got := Available([]model.Task{dep, blocked, free}, now)
	assert.Len(t, got, 2)

	dep.MarkComplete(now)
	got = Available([]model.Task{dep, blocked, free}, now)
	assert.Len(t, got, 2, "dep completed drops out, blocked becomes available")
	for _, task := range got {
		assert.False(t, task.Completed)
	}
}

func TestSort_TieBreakChain(t *testing.T) {
	early, late := "2026-03-11", "2026-03-25"

	a := mk("zeta", model.StatusNext)
	a.Position = 2
	a.DueDate = &late

	b := mk("alpha", model.StatusNext)
	b.Position = 2
	b.DueDate = &early

	starred := mk("starred last created", model.StatusNext)
	starred.Starred = true
	starred.Position = 9

	noDue := mk("no due date", model.StatusNext)
	noDue.Position = 2

	tasks := []model.Task{a, b, noDue, starred}
	Sort(tasks, SortByDue)

	assert.Equal(t, "starred last created", tasks[0].Title, "starred wins everything")
	assert.Equal(t, "alpha", tasks[1].Title, "earlier due date first")
	assert.Equal(t, "zeta", tasks[2].Title)
	assert.Equal(t, "no due date", tasks[3].Title, "missing due dates sort last")

	Sort(tasks, SortByTitle)
	assert.Equal(t, "starred last created", tasks[0].Title)
	assert.Equal(t, "alpha", tasks[1].Title)
}

func TestSort_PositionBeatsKey(t *testing.T) {
	first := mk("b", model.StatusNext)
	first.Position = 1
	second := mk("a", model.StatusNext)
	second.Position = 5

	tasks := []model.Task{second, first}
	Sort(tasks, SortByTitle)
	assert.Equal(t, "b", tasks[0].Title)
}

func TestPriorityScore_Bounds(t *testing.T) {
	completed := mk("done", model.StatusNext)
	completed.MarkComplete(now)
	assert.Equal(t, 0, PriorityScore(completed, now))

	past := "2026-01-01"
	hot := mk("everything at once", model.StatusNext)
	hot.DueDate = &past
	hot.Starred = true
	score := PriorityScore(hot, now)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)

	// Deterministic for fixed inputs.
	assert.Equal(t, score, PriorityScore(hot, now))
}

func TestPriorityScore_Ordering(t *testing.T) {
	past := "2026-03-01"
	today := "2026-03-10"

	overdue := mk("overdue", model.StatusNext)
	overdue.DueDate = &past
	dueToday := mk("today", model.StatusNext)
	dueToday.DueDate = &today
	plain := mk("plain", model.StatusNext)
	stale := mk("stale someday", model.StatusSomeday)
	stale.CreatedAt = now.AddDate(-1, 0, 0)

	assert.Greater(t, PriorityScore(overdue, now), PriorityScore(dueToday, now))
	assert.Greater(t, PriorityScore(dueToday, now), PriorityScore(plain, now))
	assert.Greater(t, PriorityScore(plain, now), PriorityScore(stale, now))
}
