// Package templates manages reusable workout templates: a write-through
// in-memory cache over the document store, favorite flagging, and one-time
// seeding of the default Push/Pull templates.
package templates

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/gymbro/internal/models"
	"github.com/google/uuid"
)

// Store is the persistence surface the manager needs.
type Store interface {
	PutTemplate(ctx context.Context, userID string, tpl models.WorkoutTemplate) error
	QueryTemplates(ctx context.Context, userID string) ([]models.WorkoutTemplate, error)
}

// Manager caches one user's templates. Saves go through the store first; the
// cache is refreshed only on success, so a failed save leaves the in-memory
// copy untouched.
type Manager struct {
	mu     sync.Mutex
	userID string
	store  Store
	log    *slog.Logger
	cache  []models.WorkoutTemplate
}

// NewManager creates a manager for the given user.
func NewManager(userID string, store Store, log *slog.Logger) *Manager {
	return &Manager{userID: userID, store: store, log: log}
}

// Load refreshes the cache from the store (created_at desc).
func (m *Manager) Load(ctx context.Context) error {
	tpls, err := m.store.QueryTemplates(ctx, m.userID)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	m.mu.Lock()
	m.cache = tpls
	m.mu.Unlock()
	return nil
}

// List returns the cached templates.
func (m *Manager) List() []models.WorkoutTemplate {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.WorkoutTemplate, len(m.cache))
	copy(out, m.cache)
	return out
}

// Get returns the cached template with the given id.
func (m *Manager) Get(id string) (models.WorkoutTemplate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tpl := range m.cache {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return models.WorkoutTemplate{}, false
}

// Favorites filters the cached templates by the favorite flag.
func (m *Manager) Favorites() []models.WorkoutTemplate {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.WorkoutTemplate
	for _, tpl := range m.cache {
		if tpl.IsFavorite {
			out = append(out, tpl)
		}
	}
	return out
}

// Save upserts the template by id and reloads the cache on success.
func (m *Manager) Save(ctx context.Context, tpl models.WorkoutTemplate) error {
	if err := m.store.PutTemplate(ctx, m.userID, tpl); err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return m.Load(ctx)
}

// ToggleFavorite flips the favorite flag of the cached template with the
// given id and round-trips the change through the store. Unknown ids are a
// no-op.
func (m *Manager) ToggleFavorite(ctx context.Context, templateID string) error {
	tpl, ok := m.Get(templateID)
	if !ok {
		return nil
	}
	tpl.IsFavorite = !tpl.IsFavorite
	return m.Save(ctx, tpl)
}

// SeedDefaults creates the two canonical templates when the collection is
// empty. A one-time bootstrap: once any template exists it does nothing.
func (m *Manager) SeedDefaults(ctx context.Context, now time.Time) error {
	m.mu.Lock()
	empty := len(m.cache) == 0
	m.mu.Unlock()
	if !empty {
		return nil
	}

	push := models.NewWorkoutTemplate("Push Day", "Chest, shoulders, and triceps workout", []models.TemplateExercise{
		{
			ID:             uuid.NewString(),
			ExerciseID:     "bench-press",
			Name:           "Bench Press",
			Category:       "Chest",
			ImageName:      "dumbbell.fill",
			TargetSets:     4,
			TargetRepRange: models.RepRange{Min: 8, Max: 12},
		},
		{
			ID:             uuid.NewString(),
			ExerciseID:     "shoulder-press",
			Name:           "Shoulder Press",
			Category:       "Shoulders",
			ImageName:      "dumbbell.fill",
			TargetSets:     3,
			TargetRepRange: models.RepRange{Min: 10, Max: 15},
		},
		{
			ID:             uuid.NewString(),
			ExerciseID:     "tricep-dips",
			Name:           "Tricep Dips",
			Category:       "Arms",
			ImageName:      "figure.strengthtraining.traditional",
			TargetSets:     3,
			TargetRepRange: models.RepRange{Min: 12, Max: 15},
		},
	}, now)
	push.IsFavorite = true

	pull := models.NewWorkoutTemplate("Pull Day", "Back and biceps focused workout", []models.TemplateExercise{
		{
			ID:             uuid.NewString(),
			ExerciseID:     "pull-ups",
			Name:           "Pull Ups",
			Category:       "Back",
			ImageName:      "figure.strengthtraining.traditional",
			TargetSets:     4,
			TargetRepRange: models.RepRange{Min: 6, Max: 10},
		},
		{
			ID:             uuid.NewString(),
			ExerciseID:     "barbell-rows",
			Name:           "Barbell Rows",
			Category:       "Back",
			ImageName:      "dumbbell.fill",
			TargetSets:     4,
			TargetRepRange: models.RepRange{Min: 8, Max: 12},
		},
		{
			ID:             uuid.NewString(),
			ExerciseID:     "bicep-curls",
			Name:           "Bicep Curls",
			Category:       "Arms",
			ImageName:      "dumbbell.fill",
			TargetSets:     3,
			TargetRepRange: models.RepRange{Min: 12, Max: 15},
		},
	}, now)

	if err := m.Save(ctx, push); err != nil {
		return err
	}
	if err := m.Save(ctx, pull); err != nil {
		return err
	}
	m.log.Info("seeded default templates", "user_id", m.userID)
	return nil
}
