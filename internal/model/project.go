package model

import "time"

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectSomeday  ProjectStatus = "someday"
	ProjectDone     ProjectStatus = "completed"
	ProjectArchived ProjectStatus = "archived"
)

// Project groups tasks by back-reference only; it does not own or
// enumerate them.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Contexts    []string      `json:"contexts,omitempty"`
	Position    int           `json:"position"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func NewProject(title, description string, now time.Time) Project {
	return Project{
		ID:          NewID("proj"),
		Title:       title,
		Description: description,
		Status:      ProjectActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Project) touch(now time.Time) {
	p.UpdatedAt = now
}

func (p *Project) Archive(now time.Time) {
	p.Status = ProjectArchived
	p.touch(now)
}

func (p *Project) Complete(now time.Time) {
	p.Status = ProjectDone
	p.touch(now)
}

func (p Project) Clone() Project {
	out := p
	if p.Contexts != nil {
		out.Contexts = append([]string(nil), p.Contexts...)
	}
	return out
}

func CloneProjects(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	out := make([]Project, len(projects))
	for i := range projects {
		out[i] = projects[i].Clone()
	}
	return out
}

// TasksFor computes project membership by scanning the task collection.
func TasksFor(projectID string, tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if t.ProjectID != nil && *t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

func (p *Project) Normalize() {
	if p.Status == "" {
		p.Status = ProjectActive
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
}
