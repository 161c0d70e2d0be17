package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gtdone/internal/model"
)

var projectDescription string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a project",
	Args:  cobra.ExactArgs(1),
	Run:   runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with their open task counts",
	Run:   runProjectList,
}

var projectDoneCmd = &cobra.Command{
	Use:   "done <project>",
	Short: "Mark a project completed",
	Args:  cobra.ExactArgs(1),
	Run:   runProjectDone,
}

var projectArchiveCmd = &cobra.Command{
	Use:   "archive <project>",
	Short: "Archive a project",
	Args:  cobra.ExactArgs(1),
	Run:   runProjectArchive,
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <project>",
	Short: "Delete a project, detaching its tasks",
	Args:  cobra.ExactArgs(1),
	Run:   runProjectRm,
}

func init() {
	projectAddCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "Project description")
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectDoneCmd, projectArchiveCmd, projectRmCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	p, err := a.AddProject(args[0], projectDescription)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Added project [%s] %s\n", shortID(p.ID), p.Title)
}

func runProjectList(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	projects := a.Projects()
	if len(projects) == 0 {
		fmt.Println("No projects.")
		return
	}
	tasks := a.Tasks()
	for _, p := range projects {
		open := 0
		for _, t := range model.TasksFor(p.ID, tasks) {
			if !t.Completed {
				open++
			}
		}
		note := ""
		if p.Status == model.ProjectActive && open == 0 {
			note = "  (stalled: no open tasks)"
		}
		fmt.Printf("%s  %-9s %s (%d open)%s\n", shortID(p.ID), p.Status, p.Title, open, note)
	}
}

func runProjectDone(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	p, err := resolveProject(a.Projects(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	if _, err := a.CompleteProject(p.ID); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Completed project: %s\n", p.Title)
}

func runProjectArchive(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	p, err := resolveProject(a.Projects(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	if _, err := a.ArchiveProject(p.ID); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Archived project: %s\n", p.Title)
}

func runProjectRm(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	p, err := resolveProject(a.Projects(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	if err := a.DeleteProject(p.ID); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Deleted project: %s\n", p.Title)
}
