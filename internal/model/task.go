package model

import (
	"slices"
	"time"
)

type Status string

const (
	StatusInbox     Status = "inbox"
	StatusNext      Status = "next"
	StatusWaiting   Status = "waiting"
	StatusSomeday   Status = "someday"
	StatusCompleted Status = "completed"
)

type Energy string

const (
	EnergyHigh   Energy = "high"
	EnergyMedium Energy = "medium"
	EnergyLow    Energy = "low"
	EnergyNone   Energy = "none"
)

// Subtask is owned inline by its task and has no independent identity.
type Subtask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Energy      Energy `json:"energy"`

	// Estimated and tracked minutes.
	TimeEstimate int `json:"time"`
	TimeSpent    int `json:"timeSpent"`

	ProjectID *string  `json:"projectId,omitempty"`
	Contexts  []string `json:"contexts,omitempty"`

	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Day-granular dates in DateLayout form.
	DueDate   *string `json:"dueDate,omitempty"`
	DeferDate *string `json:"deferDate,omitempty"`

	// Ids this task waits on. Entries that no longer resolve to a task
	// count as already satisfied.
	WaitingForTaskIDs []string `json:"waitingForTaskIds,omitempty"`

	Recurrence         *Recurrence `json:"recurrence,omitempty"`
	RecurrenceEndDate  *string     `json:"recurrenceEndDate,omitempty"`
	RecurrenceParentID *string     `json:"recurrenceParentId,omitempty"`

	Position int       `json:"position"`
	Starred  bool      `json:"starred"`
	Notes    string    `json:"notes,omitempty"`
	Subtasks []Subtask `json:"subtasks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewTask(title, description string, now time.Time) Task {
	return Task{
		ID:          NewID("task"),
		Title:       title,
		Description: description,
		Status:      StatusInbox,
		Energy:      EnergyNone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (t *Task) touch(now time.Time) {
	t.UpdatedAt = now
}

// MarkComplete sets the completion flag, status, and timestamps as one
// logical operation. Completed and Status must never disagree.
func (t *Task) MarkComplete(now time.Time) {
	t.Completed = true
	t.Status = StatusCompleted
	at := now
	t.CompletedAt = &at
	t.touch(now)
}

// MarkIncomplete reverses MarkComplete. Status falls back to inbox only
// when it was completed; any other status is preserved.
func (t *Task) MarkIncomplete(now time.Time) {
	t.Completed = false
	t.CompletedAt = nil
	if t.Status == StatusCompleted {
		t.Status = StatusInbox
	}
	t.touch(now)
}

func (t *Task) ToggleStar(now time.Time) {
	t.Starred = !t.Starred
	t.touch(now)
}

func (t *Task) HasContext(ctx string) bool {
	return slices.Contains(t.Contexts, ctx)
}

func (t *Task) AddContext(ctx string, now time.Time) {
	if ctx == "" || t.HasContext(ctx) {
		return
	}
	t.Contexts = append(t.Contexts, ctx)
	t.touch(now)
}

// IsOverdue compares at day granularity; time of day is ignored.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return *t.DueDate < DateString(now)
}

func (t *Task) IsDueToday(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return *t.DueDate == DateString(now)
}

func (t *Task) IsDueWithin(days int, now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	today := DateString(now)
	limit := DateString(midnight(now).AddDate(0, 0, days))
	return *t.DueDate >= today && *t.DueDate <= limit
}

// IsDeferred reports whether the task's defer date is still in the future.
func (t *Task) IsDeferred(now time.Time) bool {
	if t.DeferDate == nil {
		return false
	}
	return *t.DeferDate > DateString(now)
}

// DependenciesMet is vacuously true for an empty wait list. Ids that do not
// resolve to an existing task are treated as satisfied, not blocking.
func (t *Task) DependenciesMet(all []Task) bool {
	if len(t.WaitingForTaskIDs) == 0 {
		return true
	}
	byID := make(map[string]*Task, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}
	for _, id := range t.WaitingForTaskIDs {
		if dep, ok := byID[id]; ok && !dep.Completed {
			return false
		}
	}
	return true
}

func (t *Task) IsRecurring() bool {
	return t.Recurrence != nil && !t.Recurrence.IsZero()
}

// NextOccurrence advances from the due date when set, otherwise from now.
func (t *Task) NextOccurrence(now time.Time) time.Time {
	if !t.IsRecurring() {
		return time.Time{}
	}
	base := midnight(now)
	if t.DueDate != nil {
		if d, ok := parseDate(*t.DueDate); ok {
			base = d
		}
	}
	return t.Recurrence.NextAfter(base)
}

// NextInstance produces the follow-up task for a recurring one, or nil when
// the task is not recurring or its recurrence has ended.
func (t *Task) NextInstance(now time.Time) *Task {
	if !t.IsRecurring() {
		return nil
	}
	next := t.NextOccurrence(now)
	if next.IsZero() {
		return nil
	}
	if t.RecurrenceEndDate != nil {
		end := *t.RecurrenceEndDate
		if end < DateString(now) || DateString(next) > end {
			return nil
		}
	}

	inst := NewTask(t.Title, t.Description, now)
	inst.Energy = t.Energy
	inst.TimeEstimate = t.TimeEstimate
	inst.Notes = t.Notes
	inst.ProjectID = cloneStringPtr(t.ProjectID)
	if t.Contexts != nil {
		inst.Contexts = append([]string(nil), t.Contexts...)
	}
	inst.Subtasks = cloneSubtasks(t.Subtasks)
	for i := range inst.Subtasks {
		inst.Subtasks[i].Completed = false
	}
	rec := t.Recurrence.Clone()
	inst.Recurrence = &rec
	inst.RecurrenceEndDate = cloneStringPtr(t.RecurrenceEndDate)
	parent := t.ID
	if t.RecurrenceParentID != nil && *t.RecurrenceParentID != "" {
		parent = *t.RecurrenceParentID
	}
	inst.RecurrenceParentID = &parent
	due := DateString(next)
	inst.DueDate = &due
	if t.Status != StatusCompleted {
		inst.Status = t.Status
	}
	return &inst
}

// Clone is a recursive copy; the result shares no memory with the receiver.
func (t Task) Clone() Task {
	out := t
	out.ProjectID = cloneStringPtr(t.ProjectID)
	out.CompletedAt = cloneTimePtr(t.CompletedAt)
	out.DueDate = cloneStringPtr(t.DueDate)
	out.DeferDate = cloneStringPtr(t.DeferDate)
	out.RecurrenceEndDate = cloneStringPtr(t.RecurrenceEndDate)
	out.RecurrenceParentID = cloneStringPtr(t.RecurrenceParentID)
	if t.Contexts != nil {
		out.Contexts = append([]string(nil), t.Contexts...)
	}
	if t.WaitingForTaskIDs != nil {
		out.WaitingForTaskIDs = append([]string(nil), t.WaitingForTaskIDs...)
	}
	if t.Recurrence != nil {
		rec := t.Recurrence.Clone()
		out.Recurrence = &rec
	}
	out.Subtasks = cloneSubtasks(t.Subtasks)
	return out
}

func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

func cloneSubtasks(subs []Subtask) []Subtask {
	if subs == nil {
		return nil
	}
	return append([]Subtask(nil), subs...)
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTimePtr(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ArchivedTask wraps a task moved out of the active collection.
type ArchivedTask struct {
	Task
	ArchivedAt time.Time `json:"archivedAt"`
}

// Normalize repairs field drift from older persisted forms: nil slices,
// completion flag vs status disagreement, and timestamps out of order.
func (t *Task) Normalize() {
	if t.Status == "" {
		t.Status = StatusInbox
	}
	if t.Energy == "" {
		t.Energy = EnergyNone
	}
	if t.Status == StatusCompleted && !t.Completed {
		t.Completed = true
	}
	if t.Completed && t.Status != StatusCompleted {
		t.Status = StatusCompleted
	}
	if t.TimeEstimate < 0 {
		t.TimeEstimate = 0
	}
	if t.TimeSpent < 0 {
		t.TimeSpent = 0
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		t.UpdatedAt = t.CreatedAt
	}
	if t.Recurrence != nil && t.Recurrence.IsZero() {
		t.Recurrence = nil
	}
}
