package store

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtdone/internal/model"
)

func TestMemory_CorruptedEntryTreatedAsEmpty(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	require.NoError(t, m.SaveTasks([]model.Task{model.NewTask("x", "", now)}))

	m.Corrupt("gtd_tasks")

	tasks, err := m.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func archiveOf(n int, now time.Time) []model.ArchivedTask {
	out := make([]model.ArchivedTask, n)
	for i := range out {
		task := model.NewTask("archived task with some padding in the title", "old", now)
		task.MarkComplete(now)
		out[i] = model.ArchivedTask{Task: task, ArchivedAt: now.Add(time.Duration(i) * time.Hour)}
	}
	return out
}

func TestMemory_QuotaEvictsOldestArchivedFirst(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Size the quota off the real archive payload so the tasks write below
	// lands over the warning threshold but within the quota.
	archive := archiveOf(20, now)
	raw, err := json.Marshal(archive)
	require.NoError(t, err)
	m := NewMemoryWithQuota(int64(len(raw)) + 2048)

	require.NoError(t, m.SaveArchive(archive))

	task := model.NewTask("live task", "", now)
	task.Notes = strings.Repeat("n", 1500)
	require.NoError(t, m.SaveTasks([]model.Task{task}))

	kept, err := m.LoadArchive()
	require.NoError(t, err)
	require.NotEmpty(t, kept)
	assert.Less(t, len(kept), len(archive), "some archived tasks must have been evicted")

	// Survivors are the newest ones.
	oldestKept := kept[0].ArchivedAt
	for _, a := range kept {
		if a.ArchivedAt.Before(oldestKept) {
			oldestKept = a.ArchivedAt
		}
	}
	evictedNewest := archive[len(archive)-len(kept)-1].ArchivedAt
	assert.True(t, oldestKept.After(evictedNewest))
}

func TestMemory_QuotaExceededLeavesDataIntact(t *testing.T) {
	now := time.Now()
	m := NewMemoryWithQuota(2 << 10)

	small := []model.Task{model.NewTask("fits", "", now)}
	require.NoError(t, m.SaveTasks(small))

	huge := model.NewTask("does not fit", "", now)
	huge.Notes = strings.Repeat("x", 4<<10)
	err := m.SaveTasks([]model.Task{huge})
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// The previous write is still there.
	tasks, err := m.LoadTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "fits", tasks[0].Title)
}
