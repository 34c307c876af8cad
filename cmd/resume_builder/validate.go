package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the resume is ready to export",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	report := a.ctrl.ValidateForm()
	a.printer.PrintValidation(report)
	a.printer.PrintHints(validation.StyleHints(a.ctrl.Snapshot().ResumeData, 0))
	if err := a.close(); err != nil {
		return err
	}
	if !report.IsValid {
		return fmt.Errorf("resume has %d validation error(s)", len(report.Errors))
	}
	return nil
}
