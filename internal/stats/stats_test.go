package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/claude/gymbro/internal/models"
)

func fptr(v float64) *float64 { return &v }

// sessionOn builds a finished session starting at the given time with one
// exercise holding the given sets.
func sessionOn(start time.Time, exerciseName string, sets ...models.ExerciseSet) models.WorkoutSession {
	duration := 1800.0
	end := start.Add(30 * time.Minute)
	return models.WorkoutSession{
		ID:        "s-" + start.Format("20060102-150405"),
		UserID:    "local",
		StartTime: start,
		EndTime:   &end,
		IsActive:  false,
		Exercises: []models.WorkoutExercise{
			{ID: "e1", Name: exerciseName, Category: "Chest", Sets: sets},
		},
		TotalDuration: &duration,
	}
}

func set(reps int, weight *float64) models.ExerciseSet {
	return models.ExerciseSet{ID: "set", Reps: reps, Weight: weight, Timestamp: time.Now()}
}

// TestStreakThreeConsecutiveDays verifies the streak walk over sessions on
// today, yesterday and the day before reports 2 after the trailing adjustment.
func TestStreakThreeConsecutiveDays(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		sessionOn(now.Add(-2*time.Hour), "Bench Press"),
		sessionOn(now.AddDate(0, 0, -1), "Squats"),
		sessionOn(now.AddDate(0, 0, -2), "Deadlift"),
	}

	if got := Streak(sessions, now); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

// TestStreakEmptyHistory verifies an empty history reports zero.
func TestStreakEmptyHistory(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	if got := Streak(nil, now); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

// TestStreakTodayOnly verifies a single workout today reports zero, since the
// walk seeds at 1 and the trailing adjustment subtracts it back.
func TestStreakTodayOnly(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{sessionOn(now.Add(-time.Hour), "Bench Press")}

	if got := Streak(sessions, now); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

// TestStreakEndsYesterday verifies yesterday-anchored streaks still count when
// there is no workout today.
func TestStreakEndsYesterday(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		sessionOn(now.AddDate(0, 0, -1), "Squats"),
		sessionOn(now.AddDate(0, 0, -2), "Deadlift"),
		sessionOn(now.AddDate(0, 0, -3), "Bench Press"),
	}

	if got := Streak(sessions, now); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

// TestStreakBrokenByGap verifies a gap two days ago resets the streak anchor.
func TestStreakBrokenByGap(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		sessionOn(now.AddDate(0, 0, -3), "Squats"),
		sessionOn(now.AddDate(0, 0, -4), "Deadlift"),
	}

	if got := Streak(sessions, now); got != 0 {
		t.Errorf("streak = %d, want 0 with no workout today or yesterday", got)
	}
}

// TestTotalWeightIsRawSum verifies TotalWeight sums raw set weights and is not
// the weight×reps volume.
func TestTotalWeightIsRawSum(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		sessionOn(now.Add(-time.Hour), "Bench Press",
			set(10, fptr(100)),
			set(5, fptr(50)),
		),
	}

	summary := Compute(sessions, now)
	if summary.TotalWeight != 150.0 {
		t.Errorf("TotalWeight = %v, want 150 (raw sum, not volume)", summary.TotalWeight)
	}

	series := ProgressSeries(sessions, now)
	if len(series) != 1 {
		t.Fatalf("series length = %d, want 1", len(series))
	}
	if series[0].TotalVolume != 1250.0 {
		t.Errorf("TotalVolume = %v, want 1250 (100×10 + 50×5)", series[0].TotalVolume)
	}
}

// TestComputeAggregates checks workout counts, averages, and period counters.
func TestComputeAggregates(t *testing.T) {
	// Tuesday June 10; the ISO week starts Monday June 9.
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		sessionOn(now.Add(-time.Hour), "Bench Press", set(10, fptr(100)), set(8, fptr(100))),
		sessionOn(now.AddDate(0, 0, -1), "Squats", set(5, fptr(120))),
		sessionOn(now.AddDate(0, 0, -8), "Deadlift", set(3, fptr(140))),
	}

	s := Compute(sessions, now)
	if s.TotalWorkouts != 3 {
		t.Errorf("TotalWorkouts = %d, want 3", s.TotalWorkouts)
	}
	if s.TotalSets != 4 {
		t.Errorf("TotalSets = %d, want 4", s.TotalSets)
	}
	if s.TotalReps != 26 {
		t.Errorf("TotalReps = %d, want 26", s.TotalReps)
	}
	if s.TotalDurationSec != 5400.0 {
		t.Errorf("TotalDurationSec = %v, want 5400", s.TotalDurationSec)
	}
	if s.WorkoutsThisWeek != 2 {
		t.Errorf("WorkoutsThisWeek = %d, want 2 (June 2 session is last ISO week)", s.WorkoutsThisWeek)
	}
	if s.WorkoutsThisMonth != 3 {
		t.Errorf("WorkoutsThisMonth = %d, want 3", s.WorkoutsThisMonth)
	}
	if s.AvgWorkoutDurationSec != 1800.0 {
		t.Errorf("AvgWorkoutDurationSec = %v, want 1800", s.AvgWorkoutDurationSec)
	}
	if s.AvgSetsPerWorkout != 4.0/3.0 {
		t.Errorf("AvgSetsPerWorkout = %v, want 4/3", s.AvgSetsPerWorkout)
	}
	if s.AvgRepsPerSet != 6.5 {
		t.Errorf("AvgRepsPerSet = %v, want 6.5", s.AvgRepsPerSet)
	}
}

// TestComputeEmpty verifies all aggregates are zero on empty input, with no
// division by zero in the averages.
func TestComputeEmpty(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	s := Compute(nil, now)
	if !reflect.DeepEqual(s, Summary{}) {
		t.Errorf("Compute(nil) = %+v, want zero summary", s)
	}
}

// TestComputeIdempotent verifies repeated computation over the same input
// yields identical results.
func TestComputeIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		sessionOn(now.Add(-time.Hour), "Bench Press", set(10, fptr(100))),
		sessionOn(now.AddDate(0, 0, -3), "Squats", set(5, fptr(120))),
	}

	first := Compute(sessions, now)
	second := Compute(sessions, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compute not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

// TestProgressSeriesWindowAndOrder verifies day bucketing, the 30-day window
// cutoff, and ascending date order with gap days omitted.
func TestProgressSeriesWindowAndOrder(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := []models.WorkoutSession{
		sessionOn(now.Add(-time.Hour), "Bench Press", set(10, fptr(100))),
		sessionOn(now.Add(-3*time.Hour), "Squats", set(5, fptr(60))),
		sessionOn(now.AddDate(0, 0, -5), "Deadlift", set(3, fptr(140))),
		sessionOn(now.AddDate(0, 0, -40), "Rows", set(8, fptr(70))),
	}

	series := ProgressSeries(sessions, now)
	if len(series) != 2 {
		t.Fatalf("series length = %d, want 2 (old session outside window, gap days omitted)", len(series))
	}
	if !series[0].Date.Before(series[1].Date) {
		t.Error("series must be in ascending date order")
	}

	// Two sessions on the same day merge into one bucket.
	today := series[1]
	if today.TotalSets != 2 {
		t.Errorf("today's TotalSets = %d, want 2", today.TotalSets)
	}
	if today.TotalVolume != 1300.0 {
		t.Errorf("today's TotalVolume = %v, want 1300 (100×10 + 60×5)", today.TotalVolume)
	}
	if today.WorkoutDuration != 3600.0 {
		t.Errorf("today's WorkoutDuration = %v, want 3600", today.WorkoutDuration)
	}
}

// TestExerciseProgressGrouping verifies grouping by denormalized exercise
// name, per-session max weight, and chronological ordering within a group.
func TestExerciseProgressGrouping(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	// Store order is newest first.
	sessions := []models.WorkoutSession{
		sessionOn(now.Add(-time.Hour), "Bench Press", set(8, fptr(105)), set(6, fptr(110))),
		sessionOn(now.AddDate(0, 0, -2), "Bench Press", set(10, fptr(100))),
		sessionOn(now.AddDate(0, 0, -3), "Squats", set(5, nil)),
	}

	progress := ExerciseProgress(sessions)
	if len(progress) != 2 {
		t.Fatalf("groups = %d, want 2", len(progress))
	}

	bench := progress["Bench Press"]
	if len(bench) != 2 {
		t.Fatalf("bench points = %d, want 2", len(bench))
	}
	if !bench[0].Date.Before(bench[1].Date) {
		t.Error("points within a group must be chronological")
	}
	if bench[1].MaxWeight != 110.0 {
		t.Errorf("MaxWeight = %v, want 110", bench[1].MaxWeight)
	}
	if bench[1].TotalVolume != 105*8+110*6 {
		t.Errorf("TotalVolume = %v, want %v", bench[1].TotalVolume, 105*8+110*6)
	}

	// Weightless sets default MaxWeight to zero rather than omitting the point.
	squats := progress["Squats"]
	if len(squats) != 1 {
		t.Fatalf("squat points = %d, want 1", len(squats))
	}
	if squats[0].MaxWeight != 0 {
		t.Errorf("MaxWeight without weights = %v, want 0", squats[0].MaxWeight)
	}
	if squats[0].TotalReps != 5 {
		t.Errorf("TotalReps = %d, want 5", squats[0].TotalReps)
	}
}

// TestExerciseProgressSessionCap verifies only the 20 most recent sessions
// contribute.
func TestExerciseProgressSessionCap(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)
	sessions := make([]models.WorkoutSession, 0, 25)
	for i := 0; i < 25; i++ {
		sessions = append(sessions, sessionOn(now.AddDate(0, 0, -i), "Bench Press", set(10, fptr(100))))
	}

	progress := ExerciseProgress(sessions)
	if got := len(progress["Bench Press"]); got != 20 {
		t.Errorf("points = %d, want 20 (older sessions excluded)", got)
	}
}

// TestStartOfWeekMonday verifies ISO week boundaries.
func TestStartOfWeekMonday(t *testing.T) {
	// Sunday June 8: its week started Monday June 2.
	sunday := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	want := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if got := startOfWeek(sunday); !got.Equal(want) {
		t.Errorf("startOfWeek(sunday) = %v, want %v", got, want)
	}

	// Monday maps to itself at midnight.
	monday := time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC)
	want = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if got := startOfWeek(monday); !got.Equal(want) {
		t.Errorf("startOfWeek(monday) = %v, want %v", got, want)
	}
}
