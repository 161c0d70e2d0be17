package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <task>",
	Short: "Complete a task",
	Long:  `Mark a task completed. A recurring task spawns its next instance in the same step.`,
	Args:  cobra.ExactArgs(1),
	Run:   runDone,
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <task>",
	Short: "Reopen a completed task",
	Args:  cobra.ExactArgs(1),
	Run:   runReopen,
}

var rmCmd = &cobra.Command{
	Use:   "rm <task>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run:   runRm,
}

var starCmd = &cobra.Command{
	Use:   "star <task>",
	Short: "Toggle a task's star",
	Args:  cobra.ExactArgs(1),
	Run:   runStar,
}

func runDone(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	t, err := resolveTask(a.Tasks(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	done, next, err := a.CompleteTask(t.ID)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Completed: %s\n", done.Title)
	if next != nil {
		fmt.Printf("Next occurrence [%s] due %s\n", shortID(next.ID), *next.DueDate)
	}
}

func runReopen(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	t, err := resolveTask(a.Tasks(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	got, err := a.ReopenTask(t.ID)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Reopened: %s (%s)\n", got.Title, got.Status)
}

func runRm(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	t, err := resolveTask(a.Tasks(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	if err := a.DeleteTask(t.ID); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Deleted: %s\n", t.Title)
}

func runStar(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	t, err := resolveTask(a.Tasks(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	got, err := a.ToggleStar(t.ID)
	if err != nil {
		fatal("%v", err)
	}
	if got.Starred {
		fmt.Printf("Starred: %s\n", got.Title)
	} else {
		fmt.Printf("Unstarred: %s\n", got.Title)
	}
}
