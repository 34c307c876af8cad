package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	exportFormat string
	exportOut    string
	exportForce  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the resume and save it as PDF, DOCX or both",
	Long: `Render the resume with the selected template and save it.

The file is named after the candidate, the template and today's date, for
example jane_doe_resume_modern_professional_2024-05-01.pdf. The form is
validated first; use --force to export anyway.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a PDF preview without saving it as an export",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: pdf, docx or all")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Directory to save into (default from config export.dir)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Export even when validation fails")

	rootCmd.AddCommand(exportCmd, previewCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	all := strings.EqualFold(strings.TrimSpace(exportFormat), "all")
	var format types.Format
	if !all {
		f, err := types.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		format = f
	}
	dir := exportOut
	if dir == "" {
		dir = cfg.Export.Dir
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	s := a.ctrl.Snapshot()
	if !exportForce {
		if report := a.ctrl.ValidateForm(); !report.IsValid {
			a.printer.PrintValidation(report)
			return fmt.Errorf("resume is not ready to export (use --force to export anyway)")
		}
	}

	orch := newOrchestrator(dir)
	onProgress := func(e generation.ProgressEvent) { a.printer.PrintProgress(e) }

	var downloads []generation.Download
	if all {
		downloads, err = orch.GenerateBundle(cmd.Context(), s.ResumeData, s.SelectedTemplate, onProgress)
	} else {
		var d *generation.Download
		d, err = orch.GenerateAndDownload(cmd.Context(), s.ResumeData, s.SelectedTemplate, format, onProgress)
		if d != nil {
			downloads = append(downloads, *d)
		}
	}
	if err != nil {
		return userError(err)
	}
	a.printer.PrintDownloads(downloads)
	return nil
}

func runPreview(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	s := a.ctrl.Snapshot()
	ref, err := newOrchestrator(cfg.Export.Dir).GeneratePreview(cmd.Context(), s.ResumeData, s.SelectedTemplate)
	if err != nil {
		return userError(err)
	}
	a.printer.PrintPreview(ref)
	return nil
}
