package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/ingestion"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a resume from a JSON or YAML file",
	Long: `Load a resume from a JSON or YAML file into the builder.

Entries are added to what is already there unless --replace is given, which
resets the builder first. A templateId in the file selects that template.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Reset the builder before importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	doc, err := ingestion.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	if importReplace {
		if err := a.ctrl.ResetBuilder(cmd.Context()); err != nil {
			_ = a.close()
			return err
		}
	}

	applied := 0
	for _, c := range ingestion.Commands(doc) {
		if a.ctrl.Dispatch(c) {
			applied++
		}
	}
	// Dispatch only logs save failures
	if err := a.ctrl.SaveProgress(cmd.Context()); err != nil {
		_ = a.close()
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Imported %s (%s, %d entries, %d changes)\n",
		args[0], doc.Metadata.Format, doc.Metadata.Entries, applied)
	if s := a.ctrl.Snapshot(); s.SelectedTemplate != nil {
		_, _ = fmt.Fprintf(out, "Template: %s\n", s.SelectedTemplate.Name)
	}
	return a.done()
}
