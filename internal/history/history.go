// Package history keeps bounded full-state snapshots of the task and
// project collections and replays them for undo/redo. History is strictly
// linear: a new snapshot discards everything past the current pointer.
package history

import (
	"time"

	"gtdone/internal/model"
)

// DefaultLimit matches the source system's 50-entry ring.
const DefaultLimit = 50

// Snapshot is a deep copy of the live collections at one point in time.
type Snapshot struct {
	Tasks    []model.Task
	Projects []model.Project
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Tasks:    model.CloneTasks(s.Tasks),
		Projects: model.CloneProjects(s.Projects),
	}
}

type Entry struct {
	Action string
	At     time.Time
	State  Snapshot
}

// Manager holds the entry list and a pointer into it. index == -1 means no
// snapshot is active (the origin, before anything was captured).
type Manager struct {
	limit   int
	entries []Entry
	index   int
}

func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit, index: -1}
}

// SaveState captures the current collections under an action label. Any redo
// branch beyond the pointer is discarded. When the list exceeds the limit
// the oldest entry is evicted and the pointer shifts so it still refers to
// the same logical entry. SaveState never touches persistence or rendering.
func (m *Manager) SaveState(action string, current Snapshot, now time.Time) {
	m.entries = m.entries[:m.index+1]
	m.entries = append(m.entries, Entry{
		Action: action,
		At:     now,
		State:  current.Clone(),
	})
	m.index = len(m.entries) - 1

	if len(m.entries) > m.limit {
		over := len(m.entries) - m.limit
		m.entries = append([]Entry(nil), m.entries[over:]...)
		m.index -= over
	}
}

// Undo steps the pointer back and returns a deep copy of the entry now
// under it. ok is false when there is nothing to undo; stepping back past
// entry 0 parks the pointer at -1 and also reports nothing to undo.
func (m *Manager) Undo() (Entry, bool) {
	if m.index < 0 {
		return Entry{}, false
	}
	m.index--
	if m.index < 0 {
		return Entry{}, false
	}
	e := m.entries[m.index]
	e.State = e.State.Clone()
	return e, true
}

// Redo advances the pointer and returns a deep copy of that entry.
func (m *Manager) Redo() (Entry, bool) {
	if len(m.entries) == 0 || m.index >= len(m.entries)-1 {
		return Entry{}, false
	}
	m.index++
	e := m.entries[m.index]
	e.State = e.State.Clone()
	return e, true
}

func (m *Manager) CanUndo() bool {
	return m.index > 0
}

func (m *Manager) CanRedo() bool {
	return len(m.entries) > 0 && m.index < len(m.entries)-1
}

func (m *Manager) Clear() {
	m.entries = nil
	m.index = -1
}

func (m *Manager) Len() int {
	return len(m.entries)
}

func (m *Manager) Index() int {
	return m.index
}

// Actions lists entry labels oldest-first, for display.
func (m *Manager) Actions() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Action
	}
	return out
}
