// Package store is the persistence gateway: named collections serialized as
// JSON arrays under flat keys, the way the browser build keeps them in
// local storage. Corrupted entries are discarded, never fatal, and no
// failure path ever mutates caller-owned data.
package store

import (
	"errors"

	"gtdone/internal/model"
)

var ErrQuotaExceeded = errors.New("storage quota exceeded")

const (
	keyTasks      = "gtd_tasks"
	keyProjects   = "gtd_projects"
	keyTemplates  = "gtd_templates"
	keyArchive    = "gtd_archive"
	keyReferences = "gtd_references"
	keySettings   = "gtd_settings"
)

// Usage reports estimated stored bytes against the configured soft quota.
type Usage struct {
	Bytes int64
	Quota int64
}

type Store interface {
	LoadTasks() ([]model.Task, error)
	SaveTasks([]model.Task) error

	LoadProjects() ([]model.Project, error)
	SaveProjects([]model.Project) error

	LoadTemplates() ([]model.Template, error)
	SaveTemplates([]model.Template) error

	LoadArchive() ([]model.ArchivedTask, error)
	SaveArchive([]model.ArchivedTask) error

	LoadReferences() ([]model.Reference, error)
	SaveReferences([]model.Reference) error

	LoadSettings() (model.Settings, error)
	SaveSettings(model.Settings) error

	// SaveAll persists the three primary collections. There is no atomicity
	// across keys; a failure can leave earlier writes in place.
	SaveAll(tasks []model.Task, projects []model.Project, templates []model.Template) error

	Usage() (Usage, error)
	Close() error
}
