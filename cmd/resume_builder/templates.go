package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	templatesCategory string
	templatesSearch   string
	useInteractive    bool
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

var useTemplateCmd = &cobra.Command{
	Use:   "use-template [id]",
	Short: "Select the template used for export",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUseTemplate,
}

func init() {
	templatesCmd.Flags().StringVar(&templatesCategory, "category", "", "Only list one category (modern, classic, creative, minimal or all)")
	templatesCmd.Flags().StringVar(&templatesSearch, "search", "", "Match name, description or industry")
	useTemplateCmd.Flags().BoolVarP(&useInteractive, "interactive", "i", false, "Pick from a list")
	rootCmd.AddCommand(templatesCmd, useTemplateCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	category := types.TemplateCategory(strings.ToLower(strings.TrimSpace(templatesCategory)))
	if category == "all" {
		category = ""
	}
	if category != "" && !category.Valid() {
		names := make([]string, 0, len(templates.Categories()))
		for _, c := range templates.Categories() {
			names = append(names, string(c))
		}
		return fmt.Errorf("unknown category %q (want %s or all)", templatesCategory, strings.Join(names, ", "))
	}

	selected := ""
	if a, err := openApp(cmd); err == nil {
		if t := a.ctrl.Snapshot().SelectedTemplate; t != nil {
			selected = t.ID
		}
		_ = a.close()
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(templates.FilterAndSearch(category, templatesSearch), selected)
	return nil
}

func runUseTemplate(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	var id string
	switch {
	case len(args) == 1:
		id = args[0]
	case useInteractive:
		current := ""
		if t := a.ctrl.Snapshot().SelectedTemplate; t != nil {
			current = t.ID
		}
		id, err = prompts.AskTemplate(cmd.Context(), newDriver(), templates.Catalog(), current)
		if err != nil {
			_ = a.close()
			return err
		}
	default:
		_ = a.close()
		return fmt.Errorf("give a template id or use --interactive")
	}

	tmpl, ok := templates.Get(id)
	if !ok {
		_ = a.close()
		if suggestion, found := templates.Suggest(id); found {
			return fmt.Errorf("unknown template %q, did you mean %q?", id, suggestion.ID)
		}
		return fmt.Errorf("unknown template %q", id)
	}

	a.ctrl.SelectTemplate(tmpl)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), prompts.Format(prompts.MustGet("questions.json", "template.selected"),
		map[string]string{"Name": tmpl.Name, "ID": tmpl.ID}))
	return a.done()
}
