package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleListTemplates lists the catalog, narrowed by ?category= and ?q=
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	category := types.TemplateCategory(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category"))))
	if category == "all" {
		category = ""
	}
	if category != "" && !category.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", category))
		return
	}
	list := templates.FilterAndSearch(category, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{
		"templates": list,
		"count":     len(list),
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tmpl, ok := templates.Get(id)
	if !ok {
		writeTemplateNotFound(w, id)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// writeTemplateNotFound writes a 404 that names the closest catalog template
func writeTemplateNotFound(w http.ResponseWriter, id string) {
	err := &ErrNotFound{Kind: "template", ID: id}
	body := map[string]string{"error": err.Error()}
	if suggestion, ok := templates.Suggest(id); ok {
		body["suggestion"] = suggestion.ID
	}
	writeJSON(w, HTTPStatus(err), body)
}
