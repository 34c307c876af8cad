package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/prompts"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all progress and start over",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		ok, err := confirmReset(cmd)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled")
			return nil
		}
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	if err := a.ctrl.ResetBuilder(cmd.Context()); err != nil {
		_ = a.close()
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Builder reset")
	return a.done()
}

func confirmReset(cmd *cobra.Command) (bool, error) {
	return newDriver().Confirm(cmd.Context(), prompts.ConfirmConfig{
		Message: "Discard all resume data and start over?",
	})
}
