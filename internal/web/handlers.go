package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/sant0-9/planea/internal/document"
	"github.com/sant0-9/planea/internal/planner"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type pageData struct {
	Request    planner.LessonRequest
	Warning    string
	Error      string
	Plan       *planner.Plan
	DownloadID string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, pageData{Error: planner.FailureMessage(err)})
		return
	}
	req := planner.LessonRequest{
		Subject:    r.PostFormValue("asignatura"),
		Grade:      r.PostFormValue("grado"),
		Competency: r.PostFormValue("competencia"),
		Duration:   r.PostFormValue("duracion"),
		Topic:      r.PostFormValue("tema"),
	}
	data := pageData{Request: req}

	plan, err := s.planner.Plan(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, planner.ErrIncompleteRequest) {
			data.Warning = "Por favor llena todos los campos."
		} else {
			data.Error = planner.FailureMessage(err)
		}
		s.render(w, status, data)
		return
	}

	data.Plan = plan
	data.DownloadID = s.downloads.add(plan.Document.Path)
	s.render(w, http.StatusOK, data)
}

type generateResponse struct {
	Text        string `json:"text"`
	Cached      bool   `json:"cached"`
	DownloadURL string `json:"download_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleGenerateJSON is the same pipeline for scripted clients.
func (s *Server) handleGenerateJSON(w http.ResponseWriter, r *http.Request) {
	var req planner.LessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	plan, err := s.planner.Plan(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: planner.FailureMessage(err)})
		return
	}

	id := s.downloads.add(plan.Document.Path)
	writeJSON(w, http.StatusOK, generateResponse{
		Text:        plan.Text,
		Cached:      plan.Cached,
		DownloadURL: "/descargar/" + id,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	path, ok := s.downloads.get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		s.log.Error("open exported document failed", "path", path, "error", err)
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+document.FileName+`"`)
	http.ServeContent(w, r, document.FileName, info.ModTime(), f)
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.Error("render page failed", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, planner.ErrIncompleteRequest):
		return http.StatusUnprocessableEntity
	case errors.Is(err, planner.ErrExport):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
