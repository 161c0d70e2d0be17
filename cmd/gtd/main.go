package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gtd",
	Short: "Offline-first task manager",
	Long:  `gtd keeps tasks, projects, and templates in a local database with full undo history.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Path to the config file")
	rootCmd.AddCommand(
		addCmd,
		listCmd,
		doneCmd,
		reopenCmd,
		rmCmd,
		starCmd,
		undoCmd,
		redoCmd,
		historyCmd,
		projectCmd,
		templateCmd,
		archiveCmd,
		statsCmd,
		exportCmd,
		importCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
