package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gtdone/internal/app"
	"gtdone/internal/view"
)

// History lives in memory for the lifetime of one app instance, so undo and
// redo are only meaningful inside a session. The shell is that session.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session with working undo/redo",
	Run:   runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type shellRenderer struct{ a *app.App }

func (r *shellRenderer) Render() {
	now := time.Now()
	open := view.Available(r.a.Tasks(), now)
	fmt.Printf("-- %d actionable tasks --\n", len(open))
}

func runShell(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()
	a.SetRenderer(&shellRenderer{a: a})

	fmt.Println("gtd shell: add <title> | list | done <id> | undo | redo | stats | quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		verb, rest := fields[0], fields[1:]

		switch verb {
		case "quit", "exit":
			return
		case "add":
			if len(rest) == 0 {
				fmt.Println("usage: add <title>")
				continue
			}
			t, err := a.AddTask(strings.Join(rest, " "), "")
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("Added [%s] %s\n", shortID(t.ID), t.Title)
		case "list":
			now := time.Now()
			tasks := a.Tasks()
			view.Sort(tasks, view.SortByDue)
			for _, t := range tasks {
				printTask(t, now)
			}
		case "done":
			if len(rest) != 1 {
				fmt.Println("usage: done <id>")
				continue
			}
			t, err := resolveTask(a.Tasks(), rest[0])
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			done, next, err := a.CompleteTask(t.ID)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("Completed: %s\n", done.Title)
			if next != nil {
				fmt.Printf("Next occurrence due %s\n", *next.DueDate)
			}
		case "undo":
			a.Undo()
		case "redo":
			a.Redo()
		case "stats":
			printStats(a.Stats())
		default:
			fmt.Println("unknown command:", verb)
		}
	}
}
