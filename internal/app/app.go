// Package app is the orchestration layer: it owns the live collections,
// routes every mutation through the history manager, and pushes the result
// out to the store, the renderer, and the notifier. All methods are safe
// for concurrent use.
package app

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"gtdone/internal/clock"
	"gtdone/internal/history"
	"gtdone/internal/model"
	"gtdone/internal/ops"
	"gtdone/internal/review"
	"gtdone/internal/store"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrReferenceNotFound = errors.New("reference not found")
)

type Options struct {
	Store        store.Store
	Clock        clock.Clock
	Logger       *zap.Logger
	Notifier     Notifier
	Renderer     Renderer
	HistoryLimit int
}

type App struct {
	store   store.Store
	clock   clock.Clock
	log     *zap.Logger
	notify  Notifier
	render  Renderer
	history *history.Manager

	mu         sync.Mutex
	tasks      []model.Task
	projects   []model.Project
	templates  []model.Template
	references []model.Reference
	settings   model.Settings
}

func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Renderer == nil {
		opts.Renderer = NopRenderer{}
	}
	return &App{
		store:    opts.Store,
		clock:    opts.Clock,
		log:      opts.Logger,
		notify:   opts.Notifier,
		render:   opts.Renderer,
		history:  history.NewManager(opts.HistoryLimit),
		settings: model.DefaultSettings(),
	}
}

// Load pulls every collection from the store, normalizes it, and captures
// the origin snapshot so the first real action has something to undo back
// to. Loading resets any prior history.
func (a *App) Load() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	tasks, err := a.store.LoadTasks()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	projects, err := a.store.LoadProjects()
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	templates, err := a.store.LoadTemplates()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	references, err := a.store.LoadReferences()
	if err != nil {
		return fmt.Errorf("load references: %w", err)
	}
	settings, err := a.store.LoadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	for i := range tasks {
		tasks[i].Normalize()
	}
	for i := range projects {
		projects[i].Normalize()
	}

	a.tasks = tasks
	a.projects = projects
	a.templates = templates
	a.references = references
	a.settings = settings

	a.history.Clear()
	a.history.SaveState("Initial state", a.snapshot(), a.clock.Now())

	a.log.Info("state loaded",
		zap.Int("tasks", len(tasks)),
		zap.Int("projects", len(projects)),
		zap.Int("templates", len(templates)),
		zap.Int("references", len(references)))
	return nil
}

func (a *App) snapshot() history.Snapshot {
	return history.Snapshot{Tasks: a.tasks, Projects: a.projects}
}

// record captures a post-mutation snapshot and persists the primary
// collections. The in-memory state is authoritative: a persistence failure
// is reported but never rolled back.
func (a *App) record(action string) error {
	a.history.SaveState(action, a.snapshot(), a.clock.Now())
	return a.persist(action)
}

func (a *App) persist(action string) error {
	if err := a.store.SaveAll(a.tasks, a.projects, a.templates); err != nil {
		a.log.Error("persist failed", zap.String("action", action), zap.Error(err))
		a.notify.Error("Failed to save: " + err.Error())
		return err
	}
	return nil
}

// Undo steps back one history entry, swaps the restored collections in, and
// persists them. With nothing to undo it reports so and leaves state alone.
// Render runs after the lock is released so the renderer can read back
// through the accessors.
func (a *App) Undo() (string, bool) {
	a.mu.Lock()
	e, ok := a.history.Undo()
	if !ok {
		a.mu.Unlock()
		a.notify.Info("Nothing to undo")
		return "", false
	}
	a.restoreLocked(e)
	a.mu.Unlock()

	a.render.Render()
	a.notify.Info("Undo: " + e.Action)
	return e.Action, true
}

func (a *App) Redo() (string, bool) {
	a.mu.Lock()
	e, ok := a.history.Redo()
	if !ok {
		a.mu.Unlock()
		a.notify.Info("Nothing to redo")
		return "", false
	}
	a.restoreLocked(e)
	a.mu.Unlock()

	a.render.Render()
	a.notify.Info("Redo: " + e.Action)
	return e.Action, true
}

func (a *App) restoreLocked(e history.Entry) {
	a.tasks = e.State.Tasks
	a.projects = e.State.Projects
	a.persist(e.Action)
}

// SetRenderer swaps the render target after construction, for callers that
// need the app built before the surface exists.
func (a *App) SetRenderer(r Renderer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if r == nil {
		r = NopRenderer{}
	}
	a.render = r
}

func (a *App) CanUndo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.CanUndo()
}

func (a *App) CanRedo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.CanRedo()
}

// HistoryActions lists snapshot labels oldest-first.
func (a *App) HistoryActions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Actions()
}

// Accessors hand out deep copies; callers can never reach the live slices.

func (a *App) Tasks() []model.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return model.CloneTasks(a.tasks)
}

func (a *App) Projects() []model.Project {
	a.mu.Lock()
	defer a.mu.Unlock()
	return model.CloneProjects(a.projects)
}

func (a *App) Templates() []model.Template {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Template, len(a.templates))
	for i := range a.templates {
		out[i] = a.templates[i].Clone()
	}
	return out
}

func (a *App) References() []model.Reference {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Reference, len(a.references))
	for i := range a.references {
		out[i] = a.references[i].Clone()
	}
	return out
}

func (a *App) Settings() model.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

func (a *App) UpdateSettings(s model.Settings) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings = s
	if err := a.store.SaveSettings(s); err != nil {
		a.log.Error("persist settings failed", zap.Error(err))
		a.notify.Error("Failed to save settings: " + err.Error())
		return err
	}
	return nil
}

func (a *App) Task(id string) (model.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := a.findTask(id)
	if t == nil {
		return model.Task{}, ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (a *App) findTask(id string) *model.Task {
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			return &a.tasks[i]
		}
	}
	return nil
}

func (a *App) findProject(id string) *model.Project {
	for i := range a.projects {
		if a.projects[i].ID == id {
			return &a.projects[i]
		}
	}
	return nil
}

// Stats computes the weekly-review aggregates over the live collections.
func (a *App) Stats() review.Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return review.Calculate(a.tasks, a.projects, a.clock.Now())
}

func (a *App) Usage() (store.Usage, error) {
	return a.store.Usage()
}

// Export writes a versioned full dump, archive included, to w.
func (a *App) Export(w io.Writer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	archive, err := a.store.LoadArchive()
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	d := ops.NewDump(a.clock.Now())
	d.Tasks = a.tasks
	d.Projects = a.projects
	d.Templates = a.templates
	d.References = a.references
	d.Archive = archive
	d.Settings = a.settings
	return ops.Export(w, d)
}

// Import replaces every collection with the dump's contents. The swap is
// recorded in history, so a bad import is one undo away.
func (a *App) Import(r io.Reader) error {
	d, err := ops.Import(r)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.tasks = d.Tasks
	a.projects = d.Projects
	a.templates = d.Templates
	a.references = d.References
	a.settings = d.Settings

	err = a.record("Import data")
	if err == nil {
		if err = a.store.SaveArchive(d.Archive); err != nil {
			a.log.Error("persist archive failed", zap.Error(err))
		}
	}
	if err == nil {
		err = a.store.SaveReferences(d.References)
	}
	if err == nil {
		err = a.store.SaveSettings(d.Settings)
	}
	a.mu.Unlock()

	if err != nil {
		return err
	}
	a.render.Render()
	return nil
}

// SaveAll force-persists the primary collections without touching history.
func (a *App) SaveAll() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.persist("save")
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) now() time.Time {
	return a.clock.Now()
}
