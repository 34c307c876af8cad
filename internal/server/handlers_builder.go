package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// builderResponse is the builder state plus the values clients derive from it
type builderResponse struct {
	State          builder.State     `json:"state"`
	CurrentStep    types.BuilderStep `json:"currentStep"`
	CompletedSteps int               `json:"completedSteps"`
	TotalSteps     int               `json:"totalSteps"`
	Changed        bool              `json:"changed"`
}

func newBuilderResponse(s builder.State, changed bool) builderResponse {
	return builderResponse{
		State:          s,
		CurrentStep:    s.CurrentStep(),
		CompletedSteps: s.CompletedCount(),
		TotalSteps:     len(s.Steps),
		Changed:        changed,
	}
}

// session resolves the authenticated user's builder, writing 401 when the
// request carries no user
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return s.sessions.get(r.Context(), userID), true
}

// decodeBody reads a JSON body into v and runs its validator. It writes the
// 400 response itself and reports false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if vv, ok := v.(interface{ Validate() error }); ok {
		if err := vv.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, extractValidationErrors(err))
			return false
		}
	}
	return true
}

func (s *Server) respondState(w http.ResponseWriter, sess *session, status int, changed bool) {
	writeJSON(w, status, newBuilderResponse(sess.ctrl.Snapshot(), changed))
}

func (s *Server) handleGetBuilder(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.respondState(w, sess, http.StatusOK, false)
}

func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req types.NavigationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var changed bool
	switch req.Action {
	case types.NavNext:
		changed = sess.ctrl.Next()
	case types.NavPrevious:
		changed = sess.ctrl.Previous()
	case types.NavGoTo:
		changed = sess.ctrl.GoTo(*req.Index)
	case types.NavTogglePreview:
		changed = sess.ctrl.TogglePreview()
	}
	s.respondState(w, sess, http.StatusOK, changed)
}

func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req types.TemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tmpl, found := templates.Get(req.TemplateID)
	if !found {
		writeTemplateNotFound(w, req.TemplateID)
		return
	}
	changed := sess.ctrl.SelectTemplate(tmpl)
	s.respondState(w, sess, http.StatusOK, changed)
}

func (s *Server) handleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var info types.PersonalInfo
	if !decodeBody(w, r, &info) {
		return
	}
	changed := sess.ctrl.UpdatePersonalInfo(info)
	s.respondState(w, sess, http.StatusOK, changed)
}

func (s *Server) handleUpdateSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req types.SummaryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	changed := sess.ctrl.UpdateSummary(req.Summary)
	s.respondState(w, sess, http.StatusOK, changed)
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req types.SkillRequest
	if !decodeBody(w, r, &req) {
		return
	}
	changed := sess.ctrl.AddSkill(req.Name)
	status := http.StatusCreated
	if !changed {
		// duplicate or blank after trimming
		status = http.StatusOK
	}
	s.respondState(w, sess, status, changed)
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	name := r.PathValue("name")
	if !sess.ctrl.RemoveSkill(name) {
		err := &ErrNotFound{Kind: "skill", ID: name}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	s.respondState(w, sess, http.StatusOK, true)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.ctrl.ValidateForm())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.ctrl.ResetBuilder(r.Context()); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	s.respondState(w, sess, http.StatusOK, true)
}

// entrySection parses the {section} path value, writing 404 for unknown names
func entrySection(w http.ResponseWriter, r *http.Request) (builder.Section, bool) {
	section, err := builder.ParseSection(r.PathValue("section"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return section, true
}

// existingEntry checks that {id} exists in section, writing 404 otherwise
func existingEntry(w http.ResponseWriter, r *http.Request, sess *session, section builder.Section) (string, bool) {
	id := r.PathValue("id")
	if !slices.Contains(sess.ctrl.Snapshot().EntryIDs(section), id) {
		err := &ErrNotFound{Kind: string(section) + " entry", ID: id}
		writeError(w, HTTPStatus(err), err.Error())
		return "", false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return body, true
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	section, ok := entrySection(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	// IDs are always assigned by the server
	id := uuid.NewString()
	cmd, err := builder.DecodeEntry(section, body, id, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess.ctrl.Dispatch(cmd)

	snap := sess.ctrl.Snapshot()
	writeJSON(w, http.StatusCreated, struct {
		ID string `json:"id"`
		builderResponse
	}{ID: id, builderResponse: newBuilderResponse(snap, true)})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	section, ok := entrySection(w, r)
	if !ok {
		return
	}
	id, ok := existingEntry(w, r, sess, section)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	cmd, err := builder.DecodeEntry(section, body, id, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	changed := sess.ctrl.Dispatch(cmd)
	s.respondState(w, sess, http.StatusOK, changed)
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	section, ok := entrySection(w, r)
	if !ok {
		return
	}
	id, ok := existingEntry(w, r, sess, section)
	if !ok {
		return
	}
	cmd, err := builder.RemoveEntry(section, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	changed := sess.ctrl.Dispatch(cmd)
	s.respondState(w, sess, http.StatusOK, changed)
}

func (s *Server) handleMoveEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	section, ok := entrySection(w, r)
	if !ok {
		return
	}
	id, ok := existingEntry(w, r, sess, section)
	if !ok {
		return
	}
	var req types.MoveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	cmd, err := builder.MoveEntry(section, id, *req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	changed := sess.ctrl.Dispatch(cmd)
	s.respondState(w, sess, http.StatusOK, changed)
}
