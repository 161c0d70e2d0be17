package app

import (
	"go.uber.org/zap"

	"gtdone/internal/model"
)

// TaskPatch carries optional field updates; nil means leave as-is. Pointer
// string fields clear on empty string.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *model.Status
	Energy      *model.Energy

	TimeEstimate *int
	TimeSpent    *int

	ProjectID *string
	Contexts  *[]string

	DueDate   *string
	DeferDate *string

	WaitingForTaskIDs *[]string

	Recurrence        *model.Recurrence
	RecurrenceEndDate *string

	Position *int
	Starred  *bool
	Notes    *string
	Subtasks *[]model.Subtask
}

// AddTask creates an inbox task at the end of the ordering and returns a
// copy of it.
func (a *App) AddTask(title, description string) (model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	t := model.NewTask(title, description, now)
	t.Position = a.nextPosition()
	a.tasks = append(a.tasks, t)

	err := a.record("Add task: " + title)
	a.log.Info("task added", zap.String("id", t.ID), zap.String("title", title))
	return t.Clone(), err
}

func (a *App) nextPosition() int {
	max := 0
	for i := range a.tasks {
		if a.tasks[i].Position > max {
			max = a.tasks[i].Position
		}
	}
	return max + 1
}

// UpdateTask applies a patch to one task. Setting Status to completed (or
// away from it) keeps the completion flag and timestamp in sync.
func (a *App) UpdateTask(id string, p TaskPatch) (model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.findTask(id)
	if t == nil {
		return model.Task{}, ErrTaskNotFound
	}

	now := a.now()
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil && *p.Status != t.Status {
		if *p.Status == model.StatusCompleted {
			t.MarkComplete(now)
		} else if t.Status == model.StatusCompleted {
			t.MarkIncomplete(now)
			t.Status = *p.Status
		} else {
			t.Status = *p.Status
		}
	}
	if p.Energy != nil {
		t.Energy = *p.Energy
	}
	if p.TimeEstimate != nil {
		t.TimeEstimate = *p.TimeEstimate
	}
	if p.TimeSpent != nil {
		t.TimeSpent = *p.TimeSpent
	}
	if p.ProjectID != nil {
		if *p.ProjectID == "" {
			t.ProjectID = nil
		} else {
			v := *p.ProjectID
			t.ProjectID = &v
		}
	}
	if p.Contexts != nil {
		t.Contexts = append([]string(nil), (*p.Contexts)...)
	}
	if p.DueDate != nil {
		t.DueDate = optionalDate(*p.DueDate)
	}
	if p.DeferDate != nil {
		t.DeferDate = optionalDate(*p.DeferDate)
	}
	if p.WaitingForTaskIDs != nil {
		t.WaitingForTaskIDs = append([]string(nil), (*p.WaitingForTaskIDs)...)
	}
	if p.Recurrence != nil {
		if p.Recurrence.IsZero() {
			t.Recurrence = nil
		} else {
			rec := p.Recurrence.Clone()
			t.Recurrence = &rec
		}
	}
	if p.RecurrenceEndDate != nil {
		t.RecurrenceEndDate = optionalDate(*p.RecurrenceEndDate)
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if p.Starred != nil {
		t.Starred = *p.Starred
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Subtasks != nil {
		t.Subtasks = append([]model.Subtask(nil), (*p.Subtasks)...)
	}
	t.Normalize()
	t.UpdatedAt = now

	err := a.record("Edit task: " + t.Title)
	return t.Clone(), err
}

func optionalDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CompleteTask marks the task done and, for a recurring task whose series
// has not ended, appends the next instance in the same call. The spawned
// instance (if any) is returned alongside the completed task.
func (a *App) CompleteTask(id string) (model.Task, *model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.findTask(id)
	if t == nil {
		return model.Task{}, nil, ErrTaskNotFound
	}
	if t.Completed {
		return t.Clone(), nil, nil
	}

	now := a.now()
	next := t.NextInstance(now)
	t.MarkComplete(now)
	if next != nil {
		next.Position = a.nextPosition()
		a.tasks = append(a.tasks, *next)
		a.log.Info("recurring task respawned",
			zap.String("parent", t.ID), zap.String("instance", next.ID))
	}

	err := a.record("Complete task: " + t.Title)
	done := t.Clone()
	if next == nil {
		return done, nil, err
	}
	spawned := next.Clone()
	return done, &spawned, err
}

// ReopenTask clears completion; status falls back to inbox.
func (a *App) ReopenTask(id string) (model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.findTask(id)
	if t == nil {
		return model.Task{}, ErrTaskNotFound
	}
	t.MarkIncomplete(a.now())
	err := a.record("Reopen task: " + t.Title)
	return t.Clone(), err
}

func (a *App) ToggleStar(id string) (model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.findTask(id)
	if t == nil {
		return model.Task{}, ErrTaskNotFound
	}
	t.ToggleStar(a.now())
	label := "Star task: "
	if !t.Starred {
		label = "Unstar task: "
	}
	err := a.record(label + t.Title)
	return t.Clone(), err
}

// DeleteTask removes the task outright. Other tasks waiting on it are left
// untouched; a dangling wait id counts as satisfied.
func (a *App) DeleteTask(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.tasks {
		if a.tasks[i].ID != id {
			continue
		}
		title := a.tasks[i].Title
		a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
		return a.record("Delete task: " + title)
	}
	return ErrTaskNotFound
}

// ArchiveCompleted moves every completed task into the archive collection
// with an archive timestamp. Returns how many were moved.
func (a *App) ArchiveCompleted() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var kept []model.Task
	var moved []model.Task
	for i := range a.tasks {
		if a.tasks[i].Completed {
			moved = append(moved, a.tasks[i])
		} else {
			kept = append(kept, a.tasks[i])
		}
	}
	if len(moved) == 0 {
		return 0, nil
	}

	archive, err := a.store.LoadArchive()
	if err != nil {
		return 0, err
	}
	now := a.now()
	for _, t := range moved {
		archive = append(archive, model.ArchivedTask{Task: t, ArchivedAt: now})
	}
	if err := a.store.SaveArchive(archive); err != nil {
		a.notify.Error("Failed to archive: " + err.Error())
		return 0, err
	}

	a.tasks = kept
	if err := a.record("Archive completed tasks"); err != nil {
		return len(moved), err
	}
	a.log.Info("completed tasks archived", zap.Int("count", len(moved)))
	return len(moved), nil
}

// Archive returns the archived tasks straight from the store.
func (a *App) Archive() ([]model.ArchivedTask, error) {
	return a.store.LoadArchive()
}
