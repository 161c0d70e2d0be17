package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTemplate_Instantiate(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	tpl := NewTemplate("weekly review", now)
	tpl.Energy = EnergyHigh
	tpl.TimeEstimate = 60
	tpl.Contexts = []string{"@office"}
	tpl.Notes = "go through all lists"
	tpl.Subtasks = []Subtask{{Title: "empty inbox", Completed: true}, {Title: "check calendar"}}

	task := tpl.Instantiate(now)

	assert.NotEmpty(t, task.ID)
	assert.NotEqual(t, tpl.ID, task.ID)
	assert.Equal(t, StatusInbox, task.Status)
	assert.Equal(t, EnergyHigh, task.Energy)
	assert.Equal(t, 60, task.TimeEstimate)
	assert.Equal(t, []string{"@office"}, task.Contexts)

	// Subtasks are deep copies with completion cleared.
	assert.Len(t, task.Subtasks, 2)
	assert.False(t, task.Subtasks[0].Completed)
	task.Subtasks[0].Title = "changed"
	assert.Equal(t, "empty inbox", tpl.Subtasks[0].Title)

	second := tpl.Instantiate(now)
	assert.NotEqual(t, task.ID, second.ID)
}
