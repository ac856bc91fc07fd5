// Package stats derives read-only aggregates from completed workout
// sessions. Every function is a pure derivation of its inputs: no cached
// state, safe to recompute concurrently, bit-identical on repeated calls.
package stats

import (
	"sort"
	"time"

	"github.com/claude/gymbro/internal/models"
)

// progressWindowDays is the trailing window for the volume progress series.
const progressWindowDays = 30

// exerciseProgressSessions caps per-exercise progress to the most recent sessions.
const exerciseProgressSessions = 20

// Summary holds the overall aggregates for a user's workout history.
type Summary struct {
	TotalWorkouts    int     `json:"total_workouts"`
	TotalDurationSec float64 `json:"total_duration_sec"`
	TotalSets        int     `json:"total_sets"`
	TotalReps        int     `json:"total_reps"`

	// TotalWeight is the raw sum of set weights. Volume (weight×reps) is a
	// separate metric, reported per-day in the progress series.
	TotalWeight float64 `json:"total_weight"`

	Streak            int `json:"streak"`
	WorkoutsThisWeek  int `json:"workouts_this_week"`
	WorkoutsThisMonth int `json:"workouts_this_month"`

	AvgWorkoutDurationSec float64 `json:"avg_workout_duration_sec"`
	AvgSetsPerWorkout     float64 `json:"avg_sets_per_workout"`
	AvgRepsPerSet         float64 `json:"avg_reps_per_set"`
}

// Compute builds the overall summary for the given completed sessions,
// evaluated at now (streak and period counts are calendar-relative).
func Compute(sessions []models.WorkoutSession, now time.Time) Summary {
	s := Summary{TotalWorkouts: len(sessions)}

	for _, session := range sessions {
		if session.TotalDuration != nil {
			s.TotalDurationSec += *session.TotalDuration
		}
		for _, ex := range session.Exercises {
			s.TotalSets += len(ex.Sets)
			for _, set := range ex.Sets {
				s.TotalReps += set.Reps
				if set.Weight != nil {
					s.TotalWeight += *set.Weight
				}
			}
		}
	}

	s.Streak = Streak(sessions, now)
	s.WorkoutsThisWeek = countSince(sessions, startOfWeek(now))
	s.WorkoutsThisMonth = countSince(sessions, startOfMonth(now))

	if s.TotalWorkouts > 0 {
		s.AvgWorkoutDurationSec = s.TotalDurationSec / float64(s.TotalWorkouts)
		s.AvgSetsPerWorkout = float64(s.TotalSets) / float64(s.TotalWorkouts)
	}
	if s.TotalSets > 0 {
		s.AvgRepsPerSet = float64(s.TotalReps) / float64(s.TotalSets)
	}
	return s
}

// Streak counts consecutive calendar days with at least one session, ending
// today or yesterday. The walk seeds at 1 for the first matched day, adds 1
// per prior matched day, then subtracts 1 before reporting. The subtraction
// can undercount short streaks by one; it is kept deliberately because
// downstream consumers depend on the historical values.
func Streak(sessions []models.WorkoutSession, now time.Time) int {
	workoutDays := make(map[time.Time]struct{}, len(sessions))
	for _, session := range sessions {
		workoutDays[startOfDay(session.StartTime.In(now.Location()))] = struct{}{}
	}

	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	streak := 0
	var cursor time.Time
	if _, ok := workoutDays[today]; ok {
		streak = 1
		cursor = yesterday
	} else if _, ok := workoutDays[yesterday]; ok {
		streak = 1
		cursor = yesterday.AddDate(0, 0, -1)
	} else {
		return 0
	}

	for {
		if _, ok := workoutDays[cursor]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	if streak-1 < 0 {
		return 0
	}
	return streak - 1
}

// ProgressSeries buckets the trailing 30 days of sessions by calendar day.
// Each bucket sums volume (weight×reps), sets, reps, and session duration.
// Only days with at least one session appear; the result is date-ordered.
func ProgressSeries(sessions []models.WorkoutSession, now time.Time) []models.ProgressDataPoint {
	cutoff := now.AddDate(0, 0, -progressWindowDays)

	daily := make(map[time.Time]*models.ProgressDataPoint)
	for _, session := range sessions {
		if session.StartTime.Before(cutoff) {
			continue
		}
		day := startOfDay(session.StartTime.In(now.Location()))
		point, ok := daily[day]
		if !ok {
			point = &models.ProgressDataPoint{Date: day}
			daily[day] = point
		}

		for _, ex := range session.Exercises {
			point.TotalSets += len(ex.Sets)
			for _, set := range ex.Sets {
				point.TotalReps += set.Reps
				if set.Weight != nil {
					point.TotalVolume += *set.Weight * float64(set.Reps)
				}
			}
		}
		if session.TotalDuration != nil {
			point.WorkoutDuration += *session.TotalDuration
		}
	}

	series := make([]models.ProgressDataPoint, 0, len(daily))
	for _, point := range daily {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

// ExerciseProgress groups sets from the most recent 20 sessions by
// denormalized exercise name (not id), producing a chronological series per
// exercise. Sessions are expected newest-first, as the store returns them.
func ExerciseProgress(sessions []models.WorkoutSession) map[string][]models.ExerciseProgress {
	recent := sessions
	if len(recent) > exerciseProgressSessions {
		recent = recent[:exerciseProgressSessions]
	}

	byName := make(map[string][]models.ExerciseProgress)
	for _, session := range recent {
		for _, ex := range session.Exercises {
			maxWeight := 0.0
			totalVolume := 0.0
			totalReps := 0
			for _, set := range ex.Sets {
				totalReps += set.Reps
				if set.Weight != nil {
					if *set.Weight > maxWeight {
						maxWeight = *set.Weight
					}
					totalVolume += *set.Weight * float64(set.Reps)
				}
			}
			byName[ex.Name] = append(byName[ex.Name], models.ExerciseProgress{
				Date:          session.StartTime,
				MaxWeight:     maxWeight,
				TotalVolume:   totalVolume,
				TotalReps:     totalReps,
				SetsCompleted: len(ex.Sets),
			})
		}
	}

	for name := range byName {
		series := byName[name]
		sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
		byName[name] = series
	}
	return byName
}

func countSince(sessions []models.WorkoutSession, since time.Time) int {
	count := 0
	for _, session := range sessions {
		if !session.StartTime.Before(since) {
			count++
		}
	}
	return count
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday 00:00 of t's ISO week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 … Sunday=6
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
