package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last action",
	Run:   runUndo,
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone action",
	Run:   runRedo,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the undo history",
	Run:   runHistory,
}

func runUndo(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()
	a.Undo()
}

func runRedo(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()
	a.Redo()
}

func runHistory(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	actions := a.HistoryActions()
	if len(actions) == 0 {
		fmt.Println("No history.")
		return
	}
	for i, action := range actions {
		fmt.Printf("%3d  %s\n", i+1, action)
	}
}
