package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gtdone/internal/model"
	"gtdone/internal/view"
)

var (
	listStatus    string
	listContext   string
	listProject   string
	listSearch    string
	listDue       string
	listEnergy    string
	listSort      string
	listAvailable bool
	listAll       bool
	listScore     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List tasks, filtered and sorted. Completed and deferred tasks are hidden unless asked for.`,
	Run:   runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status")
	listCmd.Flags().StringVarP(&listContext, "context", "c", "", "Filter by context tag")
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "Filter by project ('none' for no project)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search title, description, and notes")
	listCmd.Flags().StringVar(&listDue, "due", "", "Due filter: overdue, today, or upcoming")
	listCmd.Flags().StringVarP(&listEnergy, "energy", "e", "", "Filter by energy level")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort key: due, created, time, or title")
	listCmd.Flags().BoolVar(&listAvailable, "available", false, "Only actionable tasks: not blocked, not deferred")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include completed tasks")
	listCmd.Flags().BoolVar(&listScore, "score", false, "Show the priority score")
}

func runList(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	now := time.Now()
	tasks := a.Tasks()

	if listAvailable {
		tasks = view.Available(tasks, now)
	}

	f := view.Filter{
		Search: listSearch,
		Energy: model.Energy(listEnergy),
		Due:    view.DueFilter(listDue),
	}
	if listStatus != "" {
		f.Statuses = []model.Status{model.Status(listStatus)}
	} else if !listAll {
		f.Statuses = []model.Status{
			model.StatusInbox, model.StatusNext,
			model.StatusWaiting, model.StatusSomeday,
		}
	}
	if listContext != "" {
		f.Contexts = []string{listContext}
	}
	if listProject != "" && listProject != view.ProjectNone {
		p, err := resolveProject(a.Projects(), listProject)
		if err != nil {
			fatal("%v", err)
		}
		f.ProjectID = p.ID
	} else {
		f.ProjectID = listProject
	}
	tasks = view.Apply(tasks, f, now)

	sortKey := view.SortKey(listSort)
	if listSort == "" {
		sortKey = view.SortKey(a.Settings().SortKey)
	}
	view.Sort(tasks, sortKey)

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	for _, t := range tasks {
		printTask(t, now)
	}
}

func printTask(t model.Task, now time.Time) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	star := " "
	if t.Starred {
		star = "*"
	}

	var extra []string
	if t.DueDate != nil {
		switch {
		case t.IsOverdue(now):
			extra = append(extra, "OVERDUE "+*t.DueDate)
		case t.IsDueToday(now):
			extra = append(extra, "due today")
		default:
			extra = append(extra, "due "+*t.DueDate)
		}
	}
	if len(t.Contexts) > 0 {
		extra = append(extra, strings.Join(t.Contexts, " "))
	}
	if t.IsRecurring() {
		extra = append(extra, "recurring")
	}
	if listScore {
		extra = append(extra, fmt.Sprintf("score %d", view.PriorityScore(t, now)))
	}

	line := fmt.Sprintf("[%s]%s %-8s %s", mark, star, t.Status, t.Title)
	if len(extra) > 0 {
		line += "  (" + strings.Join(extra, ", ") + ")"
	}
	fmt.Printf("%s  %s\n", shortID(t.ID), line)
}
