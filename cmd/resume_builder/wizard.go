package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/tui"
	"github.com/jonathan/resume-builder/internal/types"
)

var wizardFormat string

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Open the interactive terminal builder",
	Args:  cobra.NoArgs,
	RunE:  runWizard,
}

func init() {
	wizardCmd.Flags().StringVarP(&wizardFormat, "format", "f", "pdf", "Format exported by the e key: pdf or docx")
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, _ []string) error {
	format, err := types.ParseFormat(wizardFormat)
	if err != nil {
		return err
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	w := tui.New(cmd.Context(), a.ctrl, newOrchestrator(cfg.Export.Dir), tui.WithFormat(format))
	return tui.Run(cmd.Context(), w)
}
