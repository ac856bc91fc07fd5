package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/gymbro/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	m := s.manager(r.Context(), userIDFromContext(r))
	writeJSON(w, http.StatusOK, m.List())
}

func (s *Server) handleFavoriteTemplates(w http.ResponseWriter, r *http.Request) {
	m := s.manager(r.Context(), userIDFromContext(r))
	favorites := m.Favorites()
	if favorites == nil {
		favorites = []models.WorkoutTemplate{}
	}
	writeJSON(w, http.StatusOK, favorites)
}

// saveTemplateRequest creates or updates a template. An empty id means a new
// template; a known id upserts.
type saveTemplateRequest struct {
	ID          string                    `json:"id,omitempty"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Exercises   []models.TemplateExercise `json:"exercises"`
}

func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req saveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	for _, ex := range req.Exercises {
		if ex.TargetSets < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "targetSets must be at least 1"})
			return
		}
		if ex.TargetRepRange.Min > ex.TargetRepRange.Max {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "targetRepRange min must not exceed max"})
			return
		}
	}

	m := s.manager(r.Context(), userIDFromContext(r))

	tpl := models.NewWorkoutTemplate(req.Name, req.Description, req.Exercises, time.Now())
	if req.ID != "" {
		if existing, ok := m.Get(req.ID); ok {
			tpl.ID = existing.ID
			tpl.IsFavorite = existing.IsFavorite
			tpl.CreatedAt = existing.CreatedAt
		} else {
			tpl.ID = req.ID
		}
	}

	if err := m.Save(r.Context(), tpl); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	m := s.manager(r.Context(), userIDFromContext(r))
	id := chi.URLParam(r, "id")
	if err := m.ToggleFavorite(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	tpl, ok := m.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if err := s.db.DeleteTemplate(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := s.manager(r.Context(), userID).Load(r.Context()); err != nil {
		s.log.Error("failed to reload templates", "user_id", userID, "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
