package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/prompts"
)

var (
	addJSON        string
	addInteractive bool
)

var addCmd = &cobra.Command{
	Use:   "add <section> [skill names...]",
	Short: "Add an entry to experience, education, projects, certifications, languages or skills",
	Long: `Add an entry to a resume section.

Entries are given as JSON with --json (a literal object or @path to a file) or
asked for one field at a time with --interactive. Skills take their names as
arguments:

  resume_builder add skill Go Kubernetes
  resume_builder add experience --json '{"company":"Acme","position":"Engineer","startDate":"2021-03","current":true}'
  resume_builder add education --interactive`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove <section> <id|skill name>",
	Short: "Remove an entry or a skill",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemove,
}

var moveCmd = &cobra.Command{
	Use:   "move <section> <id> <position>",
	Short: "Move an entry to a 1-based position within its section",
	Args:  cobra.ExactArgs(3),
	RunE:  runMove,
}

func init() {
	addCmd.Flags().StringVar(&addJSON, "json", "", "Entry as a JSON object, or @file to read it from a file")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "Prompt for each field of the entry")

	rootCmd.AddCommand(addCmd, removeCmd, moveCmd)
}

func isSkills(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "skill", "skills":
		return true
	}
	return false
}

func runAdd(cmd *cobra.Command, args []string) error {
	if isSkills(args[0]) {
		return addSkills(cmd, args[1:])
	}
	section, err := builder.ParseSection(args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments for %s: %s", section, strings.Join(args[1:], " "))
	}

	var entry builder.Command
	switch {
	case addInteractive:
		entry, err = askEntry(cmd.Context(), newDriver(), section)
	case addJSON != "":
		var body []byte
		body, err = readJSONArg(addJSON)
		if err == nil {
			entry, err = builder.DecodeEntry(section, body, "", false)
		}
	default:
		return fmt.Errorf("pass the entry with --json or use --interactive")
	}
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	before := len(a.ctrl.Snapshot().EntryIDs(section))
	a.ctrl.Dispatch(entry)
	ids := a.ctrl.Snapshot().EntryIDs(section)
	if len(ids) == before {
		_ = a.close()
		return fmt.Errorf("%s entry was not added: an entry with that ID already exists", section)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s entry %s\n", section, ids[len(ids)-1])
	return a.done()
}

func addSkills(cmd *cobra.Command, names []string) error {
	if addInteractive {
		name, err := prompts.AskSkill(cmd.Context(), newDriver())
		if err != nil {
			return err
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return fmt.Errorf("name at least one skill")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, name := range names {
		if a.ctrl.AddSkill(name) {
			_, _ = fmt.Fprintf(out, "Added skill %s\n", strings.TrimSpace(name))
		} else {
			_, _ = fmt.Fprintf(out, "Skipped %s: already listed or empty\n", strings.TrimSpace(name))
		}
	}
	return a.done()
}

// askEntry prompts for one entry of section and wraps it in its add command
func askEntry(ctx context.Context, d prompts.Driver, section builder.Section) (builder.Command, error) {
	switch section {
	case builder.SectionExperience:
		e, err := prompts.AskExperience(ctx, d)
		return builder.AddExperience{Entry: e}, err
	case builder.SectionEducation:
		e, err := prompts.AskEducation(ctx, d)
		return builder.AddEducation{Entry: e}, err
	case builder.SectionProjects:
		p, err := prompts.AskProject(ctx, d)
		return builder.AddProject{Entry: p}, err
	case builder.SectionCertifications:
		c, err := prompts.AskCertification(ctx, d)
		return builder.AddCertification{Entry: c}, err
	case builder.SectionLanguages:
		l, err := prompts.AskLanguage(ctx, d)
		return builder.AddLanguage{Entry: l}, err
	}
	return nil, fmt.Errorf("unknown section %q", section)
}

// readJSONArg returns the literal JSON or, for @path, the file contents
func readJSONArg(arg string) ([]byte, error) {
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry file: %w", err)
		}
		return body, nil
	}
	if !json.Valid([]byte(arg)) {
		return nil, fmt.Errorf("--json is not valid JSON")
	}
	return []byte(arg), nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if isSkills(args[0]) {
		if !a.ctrl.RemoveSkill(args[1]) {
			_ = a.close()
			return fmt.Errorf("skill %q is not listed", args[1])
		}
		_, _ = fmt.Fprintf(out, "Removed skill %s\n", args[1])
		return a.done()
	}

	section, err := builder.ParseSection(args[0])
	if err != nil {
		_ = a.close()
		return err
	}
	remove, err := builder.RemoveEntry(section, args[1])
	if err != nil {
		_ = a.close()
		return err
	}
	if !a.ctrl.Dispatch(remove) {
		_ = a.close()
		return fmt.Errorf("no %s entry with ID %q", section, args[1])
	}
	_, _ = fmt.Fprintf(out, "Removed %s entry %s\n", section, args[1])
	return a.done()
}

func runMove(cmd *cobra.Command, args []string) error {
	section, err := builder.ParseSection(args[0])
	if err != nil {
		return err
	}
	pos, err := strconv.Atoi(args[2])
	if err != nil || pos < 1 {
		return fmt.Errorf("position must be a number starting at 1, got %q", args[2])
	}
	mv, err := builder.MoveEntry(section, args[1], pos-1)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	if !a.ctrl.Dispatch(mv) {
		_ = a.close()
		return fmt.Errorf("could not move %s entry %q to position %d", section, args[1], pos)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved %s entry %s to position %d\n", section, args[1], pos)
	return a.done()
}
