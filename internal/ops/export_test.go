package ops

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gtdone/internal/model"
)

func TestExportImport_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	task := model.NewTask("exported", "with fields", now)
	task.Status = model.StatusNext
	task.Contexts = []string{"@home"}
	task.Recurrence = &model.Recurrence{Kind: model.RecurDaily}

	d := NewDump(now)
	d.Tasks = []model.Task{task}
	d.Projects = []model.Project{model.NewProject("p", "", now)}
	d.Templates = []model.Template{model.NewTemplate("t", now)}
	d.References = []model.Reference{model.NewReference("r", now)}
	d.Archive = []model.ArchivedTask{{Task: model.NewTask("a", "", now), ArchivedAt: now}}
	d.Settings = model.Settings{DefaultView: "inbox", SortKey: "title"}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, d))

	back, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.Version, back.Version)
	require.Len(t, back.Tasks, 1)
	assert.Equal(t, task.ID, back.Tasks[0].ID)
	assert.Equal(t, model.RecurDaily, back.Tasks[0].Recurrence.Kind)
	assert.Len(t, back.Projects, 1)
	assert.Len(t, back.Templates, 1)
	assert.Len(t, back.References, 1)
	assert.Len(t, back.Archive, 1)
	assert.Equal(t, d.Settings, back.Settings)
}

func TestImport_LegacyRecurrenceString(t *testing.T) {
	raw := `{"version":1,"tasks":[{"id":"task_1","title":"old","status":"next","completed":false,"recurrence":"weekly","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]}`

	d, err := Import(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, d.Tasks, 1)
	require.NotNil(t, d.Tasks[0].Recurrence)
	assert.Equal(t, model.RecurWeekly, d.Tasks[0].Recurrence.Kind)
}

func TestImport_RejectsNewerVersion(t *testing.T) {
	_, err := Import(strings.NewReader(`{"version":99}`))
	assert.Error(t, err)
}

func TestImport_Garbage(t *testing.T) {
	_, err := Import(strings.NewReader("not json"))
	assert.Error(t, err)
}
