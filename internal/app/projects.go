package app

import (
	"go.uber.org/zap"

	"gtdone/internal/model"
)

type ProjectPatch struct {
	Title       *string
	Description *string
	Status      *model.ProjectStatus
	Contexts    *[]string
	Position    *int
}

func (a *App) AddProject(title, description string) (model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := model.NewProject(title, description, a.now())
	a.projects = append(a.projects, p)

	err := a.record("Add project: " + title)
	a.log.Info("project added", zap.String("id", p.ID), zap.String("title", title))
	return p.Clone(), err
}

func (a *App) UpdateProject(id string, patch ProjectPatch) (model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.findProject(id)
	if p == nil {
		return model.Project{}, ErrProjectNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Contexts != nil {
		p.Contexts = append([]string(nil), (*patch.Contexts)...)
	}
	if patch.Position != nil {
		p.Position = *patch.Position
	}
	p.Normalize()
	p.UpdatedAt = a.now()

	err := a.record("Edit project: " + p.Title)
	return p.Clone(), err
}

func (a *App) CompleteProject(id string) (model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.findProject(id)
	if p == nil {
		return model.Project{}, ErrProjectNotFound
	}
	p.Complete(a.now())
	err := a.record("Complete project: " + p.Title)
	return p.Clone(), err
}

func (a *App) ArchiveProject(id string) (model.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.findProject(id)
	if p == nil {
		return model.Project{}, ErrProjectNotFound
	}
	p.Archive(a.now())
	err := a.record("Archive project: " + p.Title)
	return p.Clone(), err
}

// DeleteProject removes the project and detaches its tasks; the tasks
// themselves survive with no project.
func (a *App) DeleteProject(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := -1
	for i := range a.projects {
		if a.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrProjectNotFound
	}
	title := a.projects[idx].Title
	a.projects = append(a.projects[:idx], a.projects[idx+1:]...)
	for i := range a.tasks {
		if a.tasks[i].ProjectID != nil && *a.tasks[i].ProjectID == id {
			a.tasks[i].ProjectID = nil
		}
	}
	return a.record("Delete project: " + title)
}

// ProjectTasks lists the tasks pointing at the project.
func (a *App) ProjectTasks(id string) []model.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return model.CloneTasks(model.TasksFor(id, a.tasks))
}

func (a *App) AddTemplate(tpl model.Template) (model.Template, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if tpl.ID == "" {
		fresh := model.NewTemplate(tpl.Title, a.now())
		fresh.Energy = tpl.Energy
		fresh.TimeEstimate = tpl.TimeEstimate
		fresh.Contexts = tpl.Contexts
		fresh.Notes = tpl.Notes
		fresh.Subtasks = tpl.Subtasks
		fresh.Category = tpl.Category
		tpl = fresh
	}
	a.templates = append(a.templates, tpl.Clone())

	err := a.record("Add template: " + tpl.Title)
	return tpl.Clone(), err
}

func (a *App) DeleteTemplate(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.templates {
		if a.templates[i].ID != id {
			continue
		}
		title := a.templates[i].Title
		a.templates = append(a.templates[:i], a.templates[i+1:]...)
		return a.record("Delete template: " + title)
	}
	return ErrTemplateNotFound
}

// InstantiateTemplate stamps out a fresh inbox task from the template.
func (a *App) InstantiateTemplate(id string) (model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.templates {
		if a.templates[i].ID != id {
			continue
		}
		t := a.templates[i].Instantiate(a.now())
		t.Position = a.nextPosition()
		a.tasks = append(a.tasks, t)
		err := a.record("Create from template: " + a.templates[i].Title)
		return t.Clone(), err
	}
	return model.Task{}, ErrTemplateNotFound
}

// References live outside the undo history; edits persist immediately.

func (a *App) AddReference(ref model.Reference) (model.Reference, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ref.ID == "" {
		fresh := model.NewReference(ref.Title, a.now())
		fresh.Notes = ref.Notes
		fresh.URL = ref.URL
		fresh.Category = ref.Category
		fresh.Contexts = ref.Contexts
		ref = fresh
	}
	a.references = append(a.references, ref.Clone())
	if err := a.store.SaveReferences(a.references); err != nil {
		a.notify.Error("Failed to save references: " + err.Error())
		return ref.Clone(), err
	}
	return ref.Clone(), nil
}

func (a *App) DeleteReference(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.references {
		if a.references[i].ID != id {
			continue
		}
		a.references = append(a.references[:i], a.references[i+1:]...)
		return a.store.SaveReferences(a.references)
	}
	return ErrReferenceNotFound
}
