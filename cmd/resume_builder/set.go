package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

// newDriver returns the prompt driver used by --interactive
var newDriver = func() prompts.Driver { return prompts.NewSurveyDriver() }

var (
	setInteractive bool
	personal       types.PersonalInfo
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set personal information or the professional summary",
}

var setPersonalCmd = &cobra.Command{
	Use:   "personal",
	Short: "Update the contact block; only the given flags change",
	Args:  cobra.NoArgs,
	RunE:  runSetPersonal,
}

var setSummaryCmd = &cobra.Command{
	Use:   "summary [text...]",
	Short: "Replace the professional summary",
	RunE:  runSetSummary,
}

func init() {
	f := setPersonalCmd.Flags()
	f.StringVar(&personal.Name, "name", "", "Full name")
	f.StringVar(&personal.Email, "email", "", "Email address")
	f.StringVar(&personal.Phone, "phone", "", "Phone number")
	f.StringVar(&personal.Location, "location", "", "City, state")
	f.StringVar(&personal.LinkedIn, "linkedin", "", "LinkedIn URL")
	f.StringVar(&personal.Website, "website", "", "Website URL")
	f.StringVar(&personal.GitHub, "github", "", "GitHub URL")
	f.StringVar(&personal.Portfolio, "portfolio", "", "Portfolio URL")
	f.BoolVarP(&setInteractive, "interactive", "i", false, "Prompt for each field")

	setSummaryCmd.Flags().BoolVarP(&setInteractive, "interactive", "i", false, "Edit the summary in a prompt")

	setCmd.AddCommand(setPersonalCmd, setSummaryCmd)
	rootCmd.AddCommand(setCmd)
}

func runSetPersonal(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	info := a.ctrl.Snapshot().ResumeData.PersonalInfo

	if setInteractive {
		info, err = prompts.AskPersonalInfo(cmd.Context(), newDriver(), info)
		if err != nil {
			_ = a.close()
			return err
		}
	} else {
		flags := cmd.Flags()
		fields := map[string]struct{ dst, src *string }{
			"name":      {&info.Name, &personal.Name},
			"email":     {&info.Email, &personal.Email},
			"phone":     {&info.Phone, &personal.Phone},
			"location":  {&info.Location, &personal.Location},
			"linkedin":  {&info.LinkedIn, &personal.LinkedIn},
			"website":   {&info.Website, &personal.Website},
			"github":    {&info.GitHub, &personal.GitHub},
			"portfolio": {&info.Portfolio, &personal.Portfolio},
		}
		changed := false
		for name, f := range fields {
			if flags.Changed(name) {
				*f.dst = strings.TrimSpace(*f.src)
				changed = true
			}
		}
		if !changed {
			_ = a.close()
			return fmt.Errorf("nothing to set: pass at least one field flag or --interactive")
		}
	}

	if a.ctrl.UpdatePersonalInfo(info) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Personal information updated")
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Personal information unchanged")
	}
	return a.done()
}

func runSetSummary(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	summary := strings.TrimSpace(strings.Join(args, " "))
	if setInteractive {
		summary, err = prompts.AskSummary(cmd.Context(), newDriver(), a.ctrl.Snapshot().ResumeData.Summary)
		if err != nil {
			_ = a.close()
			return err
		}
	}

	if a.ctrl.UpdateSummary(summary) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Summary updated")
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Summary unchanged")
	}
	return a.done()
}
