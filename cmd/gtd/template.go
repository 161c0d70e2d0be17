package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gtdone/internal/model"
)

var (
	templateEnergy   string
	templateTime     int
	templateContexts []string
	templateSubtasks []string
	templateCategory string
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tmpl"},
	Short:   "Manage task templates",
}

var templateAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a template",
	Args:  cobra.ExactArgs(1),
	Run:   runTemplateAdd,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Run:   runTemplateList,
}

var templateUseCmd = &cobra.Command{
	Use:   "use <template>",
	Short: "Create a task from a template",
	Args:  cobra.ExactArgs(1),
	Run:   runTemplateUse,
}

var templateRmCmd = &cobra.Command{
	Use:   "rm <template>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	Run:   runTemplateRm,
}

func init() {
	templateAddCmd.Flags().StringVarP(&templateEnergy, "energy", "e", "", "Energy level")
	templateAddCmd.Flags().IntVarP(&templateTime, "time", "t", 0, "Time estimate in minutes")
	templateAddCmd.Flags().StringSliceVarP(&templateContexts, "context", "c", nil, "Context tags")
	templateAddCmd.Flags().StringSliceVar(&templateSubtasks, "subtask", nil, "Subtask titles (repeatable)")
	templateAddCmd.Flags().StringVar(&templateCategory, "category", "", "Template category")
	templateCmd.AddCommand(templateAddCmd, templateListCmd, templateUseCmd, templateRmCmd)
}

func resolveTemplate(templates []model.Template, ref string) (model.Template, error) {
	var matches []model.Template
	for _, tpl := range templates {
		if tpl.ID == ref {
			return tpl, nil
		}
		short := strings.TrimPrefix(tpl.ID, "tmpl_")
		if strings.HasPrefix(short, ref) || strings.EqualFold(tpl.Title, ref) {
			matches = append(matches, tpl)
		}
	}
	switch len(matches) {
	case 0:
		return model.Template{}, fmt.Errorf("no template matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return model.Template{}, fmt.Errorf("%q is ambiguous (%d matches)", ref, len(matches))
	}
}

func runTemplateAdd(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	tpl := model.Template{
		Title:        args[0],
		Energy:       model.Energy(templateEnergy),
		TimeEstimate: templateTime,
		Contexts:     templateContexts,
		Category:     templateCategory,
	}
	for _, title := range templateSubtasks {
		tpl.Subtasks = append(tpl.Subtasks, model.Subtask{Title: title})
	}

	got, err := a.AddTemplate(tpl)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Added template [%s] %s\n", shortID(got.ID), got.Title)
}

func runTemplateList(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	templates := a.Templates()
	if len(templates) == 0 {
		fmt.Println("No templates.")
		return
	}
	for _, tpl := range templates {
		line := fmt.Sprintf("%s  %s", shortID(tpl.ID), tpl.Title)
		if len(tpl.Subtasks) > 0 {
			line += fmt.Sprintf(" (%d subtasks)", len(tpl.Subtasks))
		}
		if tpl.Category != "" {
			line += "  [" + tpl.Category + "]"
		}
		fmt.Println(line)
	}
}

func runTemplateUse(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	tpl, err := resolveTemplate(a.Templates(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	task, err := a.InstantiateTemplate(tpl.ID)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Added [%s] %s\n", shortID(task.ID), task.Title)
}

func runTemplateRm(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	tpl, err := resolveTemplate(a.Templates(), args[0])
	if err != nil {
		fatal("%v", err)
	}
	if err := a.DeleteTemplate(tpl.ID); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Deleted template: %s\n", tpl.Title)
}
