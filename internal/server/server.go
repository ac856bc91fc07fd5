package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/claude/gymbro/internal/catalog"
	"github.com/claude/gymbro/internal/models"
	"github.com/claude/gymbro/internal/session"
	"github.com/claude/gymbro/internal/storage"
	"github.com/claude/gymbro/internal/templates"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/local"
)

// historyLimit caps how many finished sessions a history/stats read pulls.
const historyLimit = 100

// Store is the persistence surface the server needs. *storage.DB satisfies
// it; tests substitute an in-memory implementation.
type Store interface {
	PutSession(ctx context.Context, s models.WorkoutSession) error
	QuerySessions(ctx context.Context, userID string, limit int, log *slog.Logger) ([]models.WorkoutSession, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
	PutTemplate(ctx context.Context, userID string, tpl models.WorkoutTemplate) error
	QueryTemplates(ctx context.Context, userID string, log *slog.Logger) ([]models.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, userID, templateID string) error
	GetOrCreateUser(ctx context.Context, login, displayName string) error
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers. Each user gets one session
// tracker and one template manager, created on first touch — the tracker is
// the session's single exclusive owner.
type Server struct {
	db      Store
	catalog *catalog.Client
	log     *slog.Logger
	apiKey  string
	clock   session.Clock
	router  chi.Router

	mu       sync.Mutex
	trackers map[string]*session.Tracker
	managers map[string]*templates.Manager
}

// New creates a new Server with all routes configured.
func New(db Store, catalogClient *catalog.Client, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		catalog:  catalogClient,
		log:      log,
		apiKey:   apiKey,
		clock:    session.SystemClock(),
		router:   chi.NewRouter(),
		trackers: make(map[string]*session.Tracker),
		managers: make(map[string]*templates.Manager),
	}
	s.routes(nil)
	return s
}

// SetTailscale swaps the dev identity middleware for WhoIs-based identity.
// Must be called before serving.
func (s *Server) SetTailscale(lc *local.Client) {
	s.router = chi.NewRouter()
	s.routes(lc)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(lc *local.Client) {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	if lc != nil {
		s.router.Use(TailscaleIdentity(lc))
	} else {
		s.router.Use(DevIdentity)
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)

		// Active session lifecycle and mutation.
		r.Route("/session", func(r chi.Router) {
			if s.apiKey != "" {
				r.Use(APIKeyAuth(s.apiKey))
			}
			r.Get("/", s.handleSessionStatus)
			r.Post("/start", s.handleStart)
			r.Post("/start-from-template/{id}", s.handleStartFromTemplate)
			r.Post("/pause", s.handlePause)
			r.Post("/resume", s.handleResume)
			r.Post("/finish", s.handleFinish)
			r.Post("/reset", s.handleReset)
			r.Post("/exercises", s.handleAddExercise)
			r.Delete("/exercises/{index}", s.handleRemoveExercise)
			r.Post("/exercises/{index}/sets", s.handleAddSet)
			r.Delete("/exercises/{index}/sets/{setIndex}", s.handleRemoveSet)
		})

		// History and derived statistics.
		r.Get("/history", s.handleHistory)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Get("/stats", s.handleStats)
		r.Get("/stats/progress", s.handleProgress)
		r.Get("/stats/exercises", s.handleExerciseProgress)

		// Templates.
		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates", s.handleSaveTemplate)
		r.Get("/templates/favorites", s.handleFavoriteTemplates)
		r.Post("/templates/{id}/favorite", s.handleToggleFavorite)
		r.Delete("/templates/{id}", s.handleDeleteTemplate)

		// Exercise catalog proxy.
		r.Get("/catalog/bodyparts", s.handleBodyParts)
		r.Get("/catalog/exercises", s.handleCatalogExercises)
	})
}

// tracker returns the user's session tracker, creating it on first touch.
func (s *Server) tracker(userID string) *session.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[userID]
	if !ok {
		t = session.NewTracker(userID, s.db, s.clock, s.log)
		s.trackers[userID] = t
	}
	return t
}

// manager returns the user's template manager, loading the cache and seeding
// the default templates on first touch.
func (s *Server) manager(ctx context.Context, userID string) *templates.Manager {
	s.mu.Lock()
	m, ok := s.managers[userID]
	if !ok {
		m = templates.NewManager(userID, templateStore{s.db, s.log}, s.log)
		s.managers[userID] = m
	}
	s.mu.Unlock()

	if !ok {
		if err := m.Load(ctx); err != nil {
			s.log.Error("failed to load templates", "user_id", userID, "error", err)
		}
		if err := m.SeedDefaults(ctx, time.Now()); err != nil {
			s.log.Error("failed to seed templates", "user_id", userID, "error", err)
		}
	}
	return m
}

// templateStore adapts the server Store to the templates.Store surface.
type templateStore struct {
	db  Store
	log *slog.Logger
}

func (ts templateStore) PutTemplate(ctx context.Context, userID string, tpl models.WorkoutTemplate) error {
	return ts.db.PutTemplate(ctx, userID, tpl)
}

func (ts templateStore) QueryTemplates(ctx context.Context, userID string) ([]models.WorkoutTemplate, error) {
	return ts.db.QueryTemplates(ctx, userID, ts.log)
}
