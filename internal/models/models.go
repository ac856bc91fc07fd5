package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutState is the lifecycle state of an in-progress workout.
type WorkoutState string

const (
	StateNotStarted WorkoutState = "not_started"
	StateActive     WorkoutState = "active"
	StatePaused     WorkoutState = "paused"
	StateFinished   WorkoutState = "finished"
)

// Exercise is a catalog item. The favorite flag is client-mutable; everything
// else is fixed once the exercise is created from the catalog or seed data.
type Exercise struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageName   string `json:"imageName"`
	IsFavorite  bool   `json:"isFavorite"`
}

// RepRange is a target rep window annotated on a set. It is guidance only —
// a set may record fewer or more reps and flag itself as a failure.
type RepRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n falls within the range (inclusive).
func (r RepRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// ExerciseSet is one performed unit of an exercise. Sets are append-only
// within an active session and immutable once created.
type ExerciseSet struct {
	ID             string    `json:"id"`
	Reps           int       `json:"reps"`
	TargetRepRange *RepRange `json:"targetRepRange,omitempty"`
	Weight         *float64  `json:"weight,omitempty"`
	IsFailure      bool      `json:"isFailure"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewExerciseSet creates a set with a fresh id and the given creation time.
// Reps positivity is the caller's responsibility.
func NewExerciseSet(reps int, target *RepRange, weight *float64, isFailure bool, now time.Time) ExerciseSet {
	return ExerciseSet{
		ID:             uuid.NewString(),
		Reps:           reps,
		TargetRepRange: target,
		Weight:         weight,
		IsFailure:      isFailure,
		Timestamp:      now,
	}
}

// WorkoutExercise is an exercise inside a session. Name, category and image
// are snapshotted from the catalog Exercise at add time — historical sessions
// stay stable even if the catalog later renames the exercise.
type WorkoutExercise struct {
	ID         string        `json:"id"`
	ExerciseID string        `json:"exerciseId"`
	Name       string        `json:"name"`
	Category   string        `json:"category"`
	ImageName  string        `json:"imageName"`
	Sets       []ExerciseSet `json:"sets"`
}

// NewWorkoutExercise snapshots the given catalog exercise with an empty set list.
func NewWorkoutExercise(ex Exercise) WorkoutExercise {
	return WorkoutExercise{
		ID:         uuid.NewString(),
		ExerciseID: ex.ID,
		Name:       ex.Title,
		Category:   ex.Category,
		ImageName:  ex.ImageName,
		Sets:       []ExerciseSet{},
	}
}

// WorkoutSession is one workout occurrence. EndTime and TotalDuration are set
// exactly once at finish; after that the session is logically immutable.
type WorkoutSession struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	StartTime     time.Time         `json:"startTime"`
	EndTime       *time.Time        `json:"endTime,omitempty"`
	TotalDuration *float64          `json:"totalDuration,omitempty"` // seconds
	Exercises     []WorkoutExercise `json:"exercises"`
	IsActive      bool              `json:"isActive"`
}

// NewWorkoutSession creates an active session for the user starting now.
func NewWorkoutSession(userID string, now time.Time) WorkoutSession {
	return WorkoutSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartTime: now,
		Exercises: []WorkoutExercise{},
		IsActive:  true,
	}
}

// TemplateExercise is one entry of a workout template. Targets are copied
// into a session for guidance, never enforced.
type TemplateExercise struct {
	ID             string   `json:"id"`
	ExerciseID     string   `json:"exerciseId"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	ImageName      string   `json:"imageName"`
	TargetSets     int      `json:"targetSets"`
	TargetRepRange RepRange `json:"targetRepRange"`
}

// WorkoutTemplate is a reusable, named blueprint of exercises.
type WorkoutTemplate struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Exercises   []TemplateExercise `json:"exercises"`
	IsFavorite  bool               `json:"isFavorite"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// NewWorkoutTemplate creates a template with a fresh id, created now.
func NewWorkoutTemplate(name, description string, exercises []TemplateExercise, now time.Time) WorkoutTemplate {
	return WorkoutTemplate{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Exercises:   exercises,
		CreatedAt:   now,
	}
}

// ProgressDataPoint is a day bucket of training load, recomputed on demand
// from session history — never persisted.
type ProgressDataPoint struct {
	Date            time.Time `json:"date"`
	TotalVolume     float64   `json:"total_volume"`
	TotalSets       int       `json:"total_sets"`
	TotalReps       int       `json:"total_reps"`
	WorkoutDuration float64   `json:"workout_duration_sec"`
}

// ExerciseProgress is one session's contribution to a single exercise's
// progress-over-time series.
type ExerciseProgress struct {
	Date          time.Time `json:"date"`
	MaxWeight     float64   `json:"max_weight"`
	TotalVolume   float64   `json:"total_volume"`
	TotalReps     int       `json:"total_reps"`
	SetsCompleted int       `json:"sets_completed"`
}
