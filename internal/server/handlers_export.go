package server

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/types"
)

// formatAll asks the stream endpoint for every format at once
const formatAll = "all"

// orchestrator builds a per-request orchestrator over the session's shared
// guard and preview store
func (s *Server) orchestrator(sess *session, saver generation.Saver) *generation.Orchestrator {
	return generation.New(s.renderers, saver,
		generation.WithGuard(sess.guard),
		generation.WithPreviewStore(sess.previews),
		generation.WithVerbose(s.verbose),
	)
}

// attachment is a Saver that holds the finished document for the response
type attachment struct {
	filename  string
	mediaType string
	data      []byte
}

func (a *attachment) Save(_ context.Context, filename, mediaType string, data []byte) (string, error) {
	a.filename, a.mediaType, a.data = filename, mediaType, data
	return "attachment", nil
}

// previewSaver stores finished documents in the session's preview store so
// stream clients can fetch them afterwards
func previewSaver(sess *session) generation.Saver {
	return generation.SaverFunc(func(ctx context.Context, _, mediaType string, data []byte) (string, error) {
		ref, err := sess.previews.Put(ctx, mediaType, data)
		if err != nil {
			return "", err
		}
		return ref.URL, nil
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	format, err := types.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := sess.ctrl.Snapshot()
	out := &attachment{}
	download, err := s.orchestrator(sess, out).GenerateAndDownload(r.Context(), snap.ResumeData, snap.SelectedTemplate, format, nil)
	if err != nil {
		log.Printf("[export] %s export failed: %v", format, err)
		writeError(w, HTTPStatus(err), userMessage(err))
		return
	}

	w.Header().Set("Content-Type", out.mediaType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": download.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.data); err != nil {
		log.Printf("[export] failed to write %s: %v", download.Filename, err)
	}
}

func (s *Server) handleExportStream(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	requested := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if requested == "" {
		requested = string(types.FormatPDF)
	}
	var format types.Format
	if requested != formatAll {
		f, err := types.ParseFormat(requested)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	snap := sess.ctrl.Snapshot()
	orch := s.orchestrator(sess, previewSaver(sess))
	var downloads []generation.Download
	if requested == formatAll {
		downloads, err = orch.GenerateBundle(r.Context(), snap.ResumeData, snap.SelectedTemplate, sse.WriteProgress)
	} else {
		var d *generation.Download
		d, err = orch.GenerateAndDownload(r.Context(), snap.ResumeData, snap.SelectedTemplate, format, sse.WriteProgress)
		if d != nil {
			downloads = []generation.Download{*d}
		}
	}
	if err != nil {
		log.Printf("[export] streamed %s export failed: %v", requested, err)
		sse.WriteError(HTTPStatus(err), userMessage(err))
		return
	}
	sse.WriteComplete(downloads)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	snap := sess.ctrl.Snapshot()
	ref, err := s.orchestrator(sess, nil).GeneratePreview(r.Context(), snap.ResumeData, snap.SelectedTemplate)
	if err != nil {
		writeError(w, HTTPStatus(err), userMessage(err))
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

func (s *Server) handleGetPreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	ref, data, found := sess.previews.Get(r.Context(), id)
	if !found {
		err := &ErrNotFound{Kind: "preview", ID: id}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", ref.MediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", ref.ID+extensionFor(ref.MediaType)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func extensionFor(mediaType string) string {
	if mediaType == types.MediaTypeDOCX {
		return "." + types.FormatDOCX.Extension()
	}
	return "." + types.FormatPDF.Extension()
}
