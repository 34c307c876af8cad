package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/types"
)

// progressMsg carries one orchestrator progress event into Update
type progressMsg generation.ProgressEvent

// exportDoneMsg ends an export
type exportDoneMsg struct {
	downloads []generation.Download
	err       error
}

type previewDoneMsg struct {
	ref generation.PreviewRef
	err error
}

// startExport runs the export on its own goroutine. Progress events and the
// final result arrive over a channel that waitForExport drains one message
// per command.
func (w *Wizard) startExport(formats []types.Format) tea.Cmd {
	if w.orch == nil {
		w.setError(errors.New("export is not configured"))
		return nil
	}
	s := w.ctrl.Snapshot()
	events := make(chan tea.Msg, 8)
	w.events = events
	w.mode = modeExporting
	w.percent = 0
	w.stageText = ""
	w.downloads = nil
	w.err = nil
	w.status = ""

	ctx := w.ctx
	orch := w.orch
	go func() {
		defer close(events)
		onProgress := func(e generation.ProgressEvent) { events <- progressMsg(e) }
		if len(formats) > 1 {
			downloads, err := orch.GenerateBundle(ctx, s.ResumeData, s.SelectedTemplate, onProgress)
			events <- exportDoneMsg{downloads: downloads, err: err}
			return
		}
		d, err := orch.GenerateAndDownload(ctx, s.ResumeData, s.SelectedTemplate, formats[0], onProgress)
		done := exportDoneMsg{err: err}
		if d != nil {
			done.downloads = []generation.Download{*d}
		}
		events <- done
	}()
	return waitForExport(events)
}

func waitForExport(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (w *Wizard) finishExport(msg exportDoneMsg) {
	w.mode = modeNavigate
	w.events = nil
	w.downloads = msg.downloads
	if msg.err != nil {
		w.setError(msg.err)
		return
	}
	w.percent = 1
	w.status = fmt.Sprintf("Exported %d file(s)", len(msg.downloads))
}

func (w *Wizard) startPreview() tea.Cmd {
	if w.orch == nil {
		w.setError(errors.New("preview is not configured"))
		return nil
	}
	s := w.ctrl.Snapshot()
	ctx := w.ctx
	orch := w.orch
	w.status = "Rendering preview..."
	return func() tea.Msg {
		ref, err := orch.GeneratePreview(ctx, s.ResumeData, s.SelectedTemplate)
		return previewDoneMsg{ref: ref, err: err}
	}
}

// errorText prefers the user-facing message of generation errors
func errorText(err error) string {
	var genErr *generation.GenerationError
	if errors.As(err, &genErr) && genErr.UserMessage != "" {
		return genErr.UserMessage
	}
	return err.Error()
}
