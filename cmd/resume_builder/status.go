package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the steps, the current step and what has been filled in",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Move to the next step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return navigate(cmd, "next", func(a *app) bool { return a.ctrl.Next() })
	},
}

var prevCmd = &cobra.Command{
	Use:     "prev",
	Aliases: []string{"previous"},
	Short:   "Move to the previous step",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return navigate(cmd, "previous", func(a *app) bool { return a.ctrl.Previous() })
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <step>",
	Short: "Jump to a step by its number (1-based)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("step must be a positive number, got %q", args[0])
		}
		return navigate(cmd, "goto", func(a *app) bool { return a.ctrl.GoTo(n - 1) })
	},
}

var previewModeCmd = &cobra.Command{
	Use:   "preview-mode",
	Short: "Toggle between edit and preview mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return navigate(cmd, "toggle-preview", func(a *app) bool { return a.ctrl.TogglePreview() })
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, nextCmd, prevCmd, gotoCmd, previewModeCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.printer.PrintState(a.ctrl.Snapshot())
	return a.close()
}

// navigate applies a navigation command and reports where the cursor is
func navigate(cmd *cobra.Command, action string, move func(*app) bool) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	moved := move(a)
	s := a.ctrl.Snapshot()
	out := cmd.OutOrStdout()
	switch {
	case action == "toggle-preview":
		mode := "edit"
		if s.IsPreviewMode {
			mode = "preview"
		}
		_, _ = fmt.Fprintf(out, "Mode: %s\n", mode)
	case moved:
		step := s.CurrentStep()
		_, _ = fmt.Fprintf(out, "Step %d/%d: %s\n", s.CurrentStepIndex+1, len(s.Steps), step.Title)
	default:
		_, _ = fmt.Fprintf(out, "Already at step %d/%d: %s\n", s.CurrentStepIndex+1, len(s.Steps), s.CurrentStep().Title)
	}
	return a.done()
}
