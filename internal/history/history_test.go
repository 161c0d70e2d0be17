package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtdone/internal/model"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func snap(titles ...string) Snapshot {
	tasks := make([]model.Task, len(titles))
	for i, title := range titles {
		tasks[i] = model.Task{ID: fmt.Sprintf("task_%d", i), Title: title, Status: model.StatusInbox, CreatedAt: now, UpdatedAt: now}
	}
	return Snapshot{Tasks: tasks}
}

func titles(s Snapshot) []string {
	out := make([]string, len(s.Tasks))
	for i, t := range s.Tasks {
		out[i] = t.Title
	}
	return out
}

func TestLinearHistoryRoundTrip(t *testing.T) {
	m := NewManager(DefaultLimit)

	origin := snap("a")
	m.SaveState("Initial state", origin, now)
	m.SaveState("Add task", snap("a", "b"), now)
	m.SaveState("Add task", snap("a", "b", "c"), now)
	m.SaveState("Delete task", snap("a", "c"), now)

	var last Snapshot
	undos := 0
	for {
		e, ok := m.Undo()
		if !ok {
			break
		}
		last = e.State
		undos++
	}

	assert.Equal(t, 3, undos, "one restore per entry below the newest")
	assert.Equal(t, titles(origin), titles(last))
	assert.Equal(t, -1, m.Index())

	_, ok := m.Undo()
	assert.False(t, ok, "nothing to undo at the origin")
}

func TestRedoRestoresPreUndoState(t *testing.T) {
	m := NewManager(DefaultLimit)
	m.SaveState("Initial state", snap("a"), now)

	current := snap("a", "b")
	m.SaveState("Add task", current, now)

	e, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, titles(e.State))

	r, ok := m.Redo()
	require.True(t, ok)
	assert.Equal(t, "Add task", r.Action)
	assert.Equal(t, titles(current), titles(r.State))
}

func TestSaveStateInvalidatesRedo(t *testing.T) {
	m := NewManager(DefaultLimit)
	m.SaveState("Initial state", snap("a"), now)
	m.SaveState("Add task", snap("a", "b"), now)
	m.SaveState("Add task", snap("a", "b", "c"), now)

	_, ok := m.Undo()
	require.True(t, ok)
	assert.True(t, m.CanRedo())

	m.SaveState("Rename task", snap("a", "z"), now)
	assert.False(t, m.CanRedo())
	assert.Equal(t, 3, m.Len())

	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestEvictionKeepsPointerOnSameEntry(t *testing.T) {
	m := NewManager(5)

	for i := 0; i < 8; i++ {
		m.SaveState(fmt.Sprintf("step %d", i), snap(fmt.Sprintf("s%d", i)), now)
	}

	assert.Equal(t, 5, m.Len())
	assert.Equal(t, 4, m.Index())
	assert.Equal(t, []string{"step 3", "step 4", "step 5", "step 6", "step 7"}, m.Actions())

	// Undo must land on the entry logically before the newest one.
	e, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, "step 6", e.Action)
	assert.Equal(t, []string{"s6"}, titles(e.State))
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	m := NewManager(DefaultLimit)

	live := snap("original")
	m.SaveState("Initial state", live, now)
	m.SaveState("Edit task", snap("edited"), now)

	// Mutating the live slice must not reach into the stored snapshot.
	live.Tasks[0].Title = "mutated"

	e, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, []string{"original"}, titles(e.State))

	// Mutating a restored copy must not corrupt the history either.
	e.State.Tasks[0].Title = "scribbled"
	r, ok := m.Redo()
	require.True(t, ok)
	assert.Equal(t, []string{"edited"}, titles(r.State))

	back, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, []string{"original"}, titles(back.State))
}

func TestCanUndoCanRedo(t *testing.T) {
	m := NewManager(DefaultLimit)
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	m.SaveState("Initial state", snap("a"), now)
	assert.False(t, m.CanUndo(), "a lone origin entry leaves nothing to undo")

	m.SaveState("Add task", snap("a", "b"), now)
	assert.True(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	_, _ = m.Undo()
	assert.True(t, m.CanRedo())

	m.Clear()
	assert.False(t, m.CanUndo())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.Index())
}
