package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gtdone/internal/app"
	"gtdone/internal/config"
	"gtdone/internal/model"
	"gtdone/internal/store"
	"gtdone/pkg/logger"
)

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".gtdone", "config.yaml")
}

// openApp wires config, logger, and store together and loads the state.
// The caller must Close the returned app.
func openApp() (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	st, err := store.Open(filepath.Join(cfg.DataDir, "gtd.db"), store.Options{
		QuotaBytes:   cfg.Quota.Bytes,
		WarnFraction: cfg.Quota.WarnFraction,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := app.New(app.Options{
		Store:        st,
		Logger:       log,
		Notifier:     stderrNotifier{},
		HistoryLimit: cfg.History.Limit,
	})
	if err := a.Load(); err != nil {
		st.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}
	return a, nil
}

// stderrNotifier keeps user messages off stdout so command output pipes
// cleanly.
type stderrNotifier struct{}

func (stderrNotifier) Info(msg string)  { fmt.Fprintln(os.Stderr, msg) }
func (stderrNotifier) Error(msg string) { fmt.Fprintln(os.Stderr, "Error: "+msg) }

// resolveTask matches a full id or a unique prefix of the part after
// "task_", so short hands like `gtd done 3fa8` work.
func resolveTask(tasks []model.Task, ref string) (model.Task, error) {
	var matches []model.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		short := strings.TrimPrefix(t.ID, "task_")
		if strings.HasPrefix(short, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Task{}, fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}

func resolveProject(projects []model.Project, ref string) (model.Project, error) {
	var matches []model.Project
	for _, p := range projects {
		if p.ID == ref {
			return p, nil
		}
		short := strings.TrimPrefix(p.ID, "proj_")
		if strings.HasPrefix(short, ref) || strings.EqualFold(p.Title, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return model.Project{}, fmt.Errorf("no project matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Project{}, fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id string) string {
	for _, prefix := range []string{"task_", "proj_", "tmpl_", "ref_"} {
		if rest, ok := strings.CutPrefix(id, prefix); ok {
			if len(rest) >= 8 {
				return rest[:8]
			}
			return rest
		}
	}
	return id
}
