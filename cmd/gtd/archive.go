package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveShow bool

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move completed tasks to the archive",
	Long:  `Sweep completed tasks out of the active list. Archived tasks are evicted oldest-first if storage runs low.`,
	Run:   runArchive,
}

func init() {
	archiveCmd.Flags().BoolVar(&archiveShow, "show", false, "List archived tasks instead of archiving")
}

func runArchive(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	if archiveShow {
		archived, err := a.Archive()
		if err != nil {
			fatal("%v", err)
		}
		if len(archived) == 0 {
			fmt.Println("Archive is empty.")
			return
		}
		for _, t := range archived {
			fmt.Printf("%s  %s (archived %s)\n",
				shortID(t.ID), t.Title, t.ArchivedAt.Format("2006-01-02"))
		}
		return
	}

	moved, err := a.ArchiveCompleted()
	if err != nil {
		fatal("%v", err)
	}
	if moved == 0 {
		fmt.Println("Nothing to archive.")
		return
	}
	fmt.Printf("Archived %d completed tasks\n", moved)
}
