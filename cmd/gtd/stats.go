package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"gtdone/internal/model"
	"gtdone/internal/review"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Weekly-review statistics",
	Run:   runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	printStats(a.Stats())

	usage, err := a.Usage()
	if err == nil && usage.Quota > 0 {
		fmt.Printf("\nStorage: %d / %d bytes (%.0f%%)\n",
			usage.Bytes, usage.Quota, 100*float64(usage.Bytes)/float64(usage.Quota))
	}
}

func printStats(s review.Stats) {
	fmt.Printf("Review for %s\n\n", s.Period)

	order := []model.Status{
		model.StatusInbox, model.StatusNext, model.StatusWaiting,
		model.StatusSomeday, model.StatusCompleted,
	}
	for _, st := range order {
		if n := s.ByStatus[st]; n > 0 {
			fmt.Printf("  %-10s %d\n", st, n)
		}
	}

	fmt.Printf("\n  Overdue:           %d\n", s.Overdue)
	fmt.Printf("  Due today:         %d\n", s.DueToday)
	fmt.Printf("  Starred:           %d\n", s.Starred)
	fmt.Printf("  Blocked:           %d\n", s.Blocked)
	fmt.Printf("  Done last 7 days:  %d\n", s.CompletedLast7)
	fmt.Printf("  Active projects:   %d (%d stalled)\n", s.ActiveProjects, s.StalledProjects)

	if len(s.ByContext) > 0 {
		contexts := make([]string, 0, len(s.ByContext))
		for c := range s.ByContext {
			contexts = append(contexts, c)
		}
		sort.Strings(contexts)
		fmt.Println("\n  By context:")
		for _, c := range contexts {
			fmt.Printf("    %-12s %d\n", c, s.ByContext[c])
		}
	}
}
