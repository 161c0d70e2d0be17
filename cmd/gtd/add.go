package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gtdone/internal/app"
	"gtdone/internal/model"
)

var (
	addDescription string
	addStatus      string
	addEnergy      string
	addDue         string
	addDefer       string
	addContexts    []string
	addProject     string
	addStar        bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long:  `Add a task to the inbox, or directly to another list with --status.`,
	Args:  cobra.MinimumNArgs(1),
	Run:   runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "Initial status (inbox, next, waiting, someday)")
	addCmd.Flags().StringVarP(&addEnergy, "energy", "e", "", "Energy level (high, medium, low)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addDefer, "defer", "", "Defer date (YYYY-MM-DD)")
	addCmd.Flags().StringSliceVarP(&addContexts, "context", "c", nil, "Context tags, e.g. @home")
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Project id or title")
	addCmd.Flags().BoolVar(&addStar, "star", false, "Star the task")
}

func runAdd(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	title := strings.Join(args, " ")
	task, err := a.AddTask(title, addDescription)
	if err != nil {
		fatal("%v", err)
	}

	patch := app.TaskPatch{}
	patched := false
	if addStatus != "" {
		s := model.Status(addStatus)
		patch.Status = &s
		patched = true
	}
	if addEnergy != "" {
		e := model.Energy(addEnergy)
		patch.Energy = &e
		patched = true
	}
	if addDue != "" {
		patch.DueDate = &addDue
		patched = true
	}
	if addDefer != "" {
		patch.DeferDate = &addDefer
		patched = true
	}
	if len(addContexts) > 0 {
		patch.Contexts = &addContexts
		patched = true
	}
	if addProject != "" {
		p, err := resolveProject(a.Projects(), addProject)
		if err != nil {
			fatal("%v", err)
		}
		patch.ProjectID = &p.ID
		patched = true
	}
	if addStar {
		patch.Starred = &addStar
		patched = true
	}
	if patched {
		if task, err = a.UpdateTask(task.ID, patch); err != nil {
			fatal("%v", err)
		}
	}

	fmt.Printf("Added [%s] %s\n", shortID(task.ID), task.Title)
}
