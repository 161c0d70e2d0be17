package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export everything as JSON",
	Long:  `Write a full dump (tasks, projects, templates, references, archive, settings) to a file or stdout.`,
	Args:  cobra.MaximumNArgs(1),
	Run:   runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON dump, replacing current data",
	Args:  cobra.ExactArgs(1),
	Run:   runImport,
}

func runExport(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	out := os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			fatal("%v", err)
		}
		defer f.Close()
		out = f
	}
	if err := a.Export(out); err != nil {
		fatal("%v", err)
	}
	if len(args) == 1 {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", args[0])
	}
}

func runImport(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	f, err := os.Open(args[0])
	if err != nil {
		fatal("%v", err)
	}
	defer f.Close()

	if err := a.Import(f); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Imported %d tasks, %d projects, %d templates\n",
		len(a.Tasks()), len(a.Projects()), len(a.Templates()))
}
