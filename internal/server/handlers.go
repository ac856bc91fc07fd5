package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/gymbro/internal/catalog"
	"github.com/claude/gymbro/internal/models"
	"github.com/claude/gymbro/internal/stats"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info := userInfoFromContext(r)
	if err := s.db.GetOrCreateUser(r.Context(), info.Login, info.DisplayName); err != nil {
		s.log.Error("failed to upsert user", "login", info.Login, "error", err)
	}
	writeJSON(w, http.StatusOK, info)
}

// --- session lifecycle ---

// sessionStatus is the active session as handlers report it.
type sessionStatus struct {
	State      models.WorkoutState      `json:"state"`
	ElapsedSec float64                  `json:"elapsed_sec"`
	Session    *models.WorkoutSession   `json:"session,omitempty"`
	Exercises  []models.WorkoutExercise `json:"exercises"`
	TotalSets  int                      `json:"total_sets"`
	TotalReps  int                      `json:"total_reps"`
	Error      string                   `json:"error,omitempty"`
}

func (s *Server) sessionStatusFor(userID string) sessionStatus {
	t := s.tracker(userID)
	status := sessionStatus{
		State:      t.State(),
		ElapsedSec: t.Elapsed().Seconds(),
		Session:    t.Session(),
		Exercises:  t.Exercises(),
		TotalSets:  t.TotalSets(),
		TotalReps:  t.TotalReps(),
	}
	if err := t.Err(); err != nil {
		status.Error = "failed to save workout: " + err.Error()
	}
	return status
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userIDFromContext(r)))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	s.tracker(userID).Start()
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

func (s *Server) handleStartFromTemplate(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	tpl, ok := s.manager(r.Context(), userID).Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	s.tracker(userID).StartFromTemplate(tpl)
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	s.tracker(userID).Pause()
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	s.tracker(userID).Resume()
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	s.tracker(userID).Finish()
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	s.tracker(userID).Reset()
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

// --- session mutation ---

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.tracker(userID).AddExercise(ex)
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return
	}
	s.tracker(userID).RemoveExercise(index)
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

// addSetRequest is the payload for appending a set to an exercise.
type addSetRequest struct {
	Reps           int              `json:"reps"`
	TargetRepRange *models.RepRange `json:"targetRepRange,omitempty"`
	Weight         *float64         `json:"weight,omitempty"`
	IsFailure      bool             `json:"isFailure"`
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return
	}

	var req addSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	// The tracker treats reps as the caller's contract; the API boundary is
	// where positivity is enforced.
	if req.Reps < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps must be positive"})
		return
	}
	if req.Weight != nil && *req.Weight < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight must be non-negative"})
		return
	}

	s.tracker(userID).AddSet(index, req.Reps, req.TargetRepRange, req.Weight, req.IsFailure)
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return
	}
	setIndex, err := strconv.Atoi(chi.URLParam(r, "setIndex"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set index"})
		return
	}
	s.tracker(userID).RemoveSet(index, setIndex)
	writeJSON(w, http.StatusOK, s.sessionStatusFor(userID))
}

// --- history & statistics ---

func (s *Server) history(r *http.Request, limit int) ([]models.WorkoutSession, error) {
	return s.db.QuerySessions(r.Context(), userIDFromContext(r), limit, s.log)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	sessions, err := s.history(r, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r)
	if err := s.db.DeleteSession(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.history(r, historyLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats.Compute(sessions, time.Now()))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.history(r, historyLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	series := stats.ProgressSeries(sessions, time.Now())
	if series == nil {
		series = []models.ProgressDataPoint{}
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.history(r, historyLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats.ExerciseProgress(sessions))
}

// --- catalog ---

func (s *Server) handleBodyParts(w http.ResponseWriter, r *http.Request) {
	parts, err := s.catalog.ListBodyParts(r.Context())
	if err != nil {
		s.log.Error("catalog fetch failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{"body_parts": []string{}, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"body_parts": parts})
}

func (s *Server) handleCatalogExercises(w http.ResponseWriter, r *http.Request) {
	var records []catalog.Record
	var err error

	if bodyPart := r.URL.Query().Get("bodyPart"); bodyPart != "" {
		records, err = s.catalog.ExercisesByBodyPart(r.Context(), bodyPart)
	} else if query := r.URL.Query().Get("q"); query != "" {
		records, err = s.catalog.SearchByName(r.Context(), query)
	} else {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bodyPart or q parameter required"})
		return
	}

	if err != nil {
		// Empty-plus-error: callers treat empty as "no data", not a crash.
		s.log.Error("catalog fetch failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{"exercises": []models.Exercise{}, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercises": catalog.ToExercises(records)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
