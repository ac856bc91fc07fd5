package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/gymbro/internal/models"
)

// Store persists finished sessions. Saves are fire-and-forget from the
// tracker's perspective: the in-memory Finished state stands whether or not
// the save succeeds.
type Store interface {
	PutSession(ctx context.Context, session models.WorkoutSession) error
}

const saveTimeout = 10 * time.Second

// Tracker owns one user's in-progress workout and its lifecycle:
// NotStarted → Active ⇄ Paused → Finished, plus Reset back to NotStarted.
//
// All mutation goes through the tracker's mutex — one logical owner per
// session. Invalid transitions and out-of-bounds indices are silent no-ops:
// callers gate their affordances on State, and a misordered call must never
// corrupt the session.
type Tracker struct {
	mu sync.Mutex

	userID string
	clock  Clock
	store  Store
	log    *slog.Logger

	state     models.WorkoutState
	session   *models.WorkoutSession
	exercises []models.WorkoutExercise

	// Displayed elapsed time counts active segments only. accumulated holds
	// time from segments closed by pause; segmentStart opens while Active.
	accumulated  time.Duration
	segmentStart time.Time

	tickStop chan struct{}
	onTick   func(elapsed time.Duration)

	lastErr error
}

// NewTracker creates a tracker in NotStarted for the given user.
func NewTracker(userID string, store Store, clock Clock, log *slog.Logger) *Tracker {
	if clock == nil {
		clock = SystemClock()
	}
	return &Tracker{
		userID: userID,
		clock:  clock,
		store:  store,
		log:    log,
		state:  models.StateNotStarted,
	}
}

// SetOnTick registers a callback invoked roughly once per second while the
// tracker is Active. Must be set before Start.
func (t *Tracker) SetOnTick(fn func(elapsed time.Duration)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTick = fn
}

// State returns the current lifecycle state.
func (t *Tracker) State() models.WorkoutState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Session returns a copy of the current session, or nil before the first Start.
func (t *Tracker) Session() *models.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return nil
	}
	s := *t.session
	return &s
}

// Exercises returns a copy of the working exercise list.
func (t *Tracker) Exercises() []models.WorkoutExercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.WorkoutExercise, len(t.exercises))
	copy(out, t.exercises)
	return out
}

// Elapsed returns the displayed elapsed time: active seconds only. Paused
// wall-clock time is excluded here but included in the session's
// TotalDuration computed at finish.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

func (t *Tracker) elapsedLocked() time.Duration {
	if t.state == models.StateActive {
		return t.accumulated + t.clock.Now().Sub(t.segmentStart)
	}
	return t.accumulated
}

// Err returns the last persistence error reported by Finish, if any. The
// error is informational — the Finished state stands regardless.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Start begins a new session. Valid only from NotStarted; no-op otherwise.
// A working exercise list pre-populated via StartFromTemplate survives Start.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != models.StateNotStarted {
		return
	}

	now := t.clock.Now()
	s := models.NewWorkoutSession(t.userID, now)
	t.session = &s
	t.accumulated = 0
	t.segmentStart = now
	t.state = models.StateActive
	t.lastErr = nil
	t.startTickerLocked()
}

// StartFromTemplate materializes one exercise (no sets) per template entry,
// then starts the session. Valid only from NotStarted.
func (t *Tracker) StartFromTemplate(tpl models.WorkoutTemplate) {
	t.mu.Lock()
	if t.state != models.StateNotStarted {
		t.mu.Unlock()
		return
	}
	exercises := make([]models.WorkoutExercise, 0, len(tpl.Exercises))
	for _, te := range tpl.Exercises {
		exercises = append(exercises, models.NewWorkoutExercise(models.Exercise{
			ID:        te.ExerciseID,
			Title:     te.Name,
			Category:  te.Category,
			ImageName: te.ImageName,
		}))
	}
	t.exercises = exercises
	t.mu.Unlock()

	t.Start()
}

// Pause suspends elapsed-time ticking. Valid only from Active.
func (t *Tracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != models.StateActive {
		return
	}
	t.accumulated += t.clock.Now().Sub(t.segmentStart)
	t.state = models.StatePaused
	t.stopTickerLocked()
}

// Resume continues ticking from the accumulated elapsed time. Valid only from Paused.
func (t *Tracker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != models.StatePaused {
		return
	}
	t.segmentStart = t.clock.Now()
	t.state = models.StateActive
	t.startTickerLocked()
}

// Finish ends the session: sets endTime and totalDuration (wall-clock
// end−start, paused time included), copies the working exercise list into
// the session, and persists it asynchronously. Valid from Active or Paused.
func (t *Tracker) Finish() {
	t.mu.Lock()
	if t.session == nil || (t.state != models.StateActive && t.state != models.StatePaused) {
		t.mu.Unlock()
		return
	}

	now := t.clock.Now()
	if t.state == models.StateActive {
		t.accumulated += now.Sub(t.segmentStart)
	}
	t.stopTickerLocked()

	duration := now.Sub(t.session.StartTime).Seconds()
	t.session.EndTime = &now
	t.session.TotalDuration = &duration
	t.session.IsActive = false
	t.session.Exercises = make([]models.WorkoutExercise, len(t.exercises))
	copy(t.session.Exercises, t.exercises)
	t.state = models.StateFinished

	finished := *t.session
	t.mu.Unlock()

	// Persist outside the lock; the transition above already stands.
	go t.save(finished)
}

func (t *Tracker) save(s models.WorkoutSession) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := t.store.PutSession(ctx, s); err != nil {
		t.log.Error("failed to save workout", "session_id", s.ID, "error", err)
		t.mu.Lock()
		t.lastErr = err
		t.mu.Unlock()
		return
	}
	t.log.Info("workout saved", "session_id", s.ID, "exercises", len(s.Exercises))
}

// Reset discards the finished session and re-enters NotStarted with an empty
// exercise list.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTickerLocked()
	t.session = nil
	t.exercises = nil
	t.accumulated = 0
	t.state = models.StateNotStarted
	t.lastErr = nil
}

// AddExercise appends a snapshot of the given catalog exercise with an empty
// set list. Valid in any state.
func (t *Tracker) AddExercise(ex models.Exercise) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.exercises = append(t.exercises, models.NewWorkoutExercise(ex))
}

// RemoveExercise removes by position; no-op if the index is out of bounds.
func (t *Tracker) RemoveExercise(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.exercises) {
		return
	}
	t.exercises = append(t.exercises[:index], t.exercises[index+1:]...)
}

// AddSet appends a set to the exercise at exerciseIndex; no-op if the index
// is out of bounds. Reps positivity is not re-validated here — that is the
// caller's contract (the HTTP layer rejects reps < 1).
func (t *Tracker) AddSet(exerciseIndex, reps int, target *models.RepRange, weight *float64, isFailure bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if exerciseIndex < 0 || exerciseIndex >= len(t.exercises) {
		return
	}
	set := models.NewExerciseSet(reps, target, weight, isFailure, t.clock.Now())
	t.exercises[exerciseIndex].Sets = append(t.exercises[exerciseIndex].Sets, set)
}

// RemoveSet removes a set by position; no-op if either index is out of bounds.
func (t *Tracker) RemoveSet(exerciseIndex, setIndex int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if exerciseIndex < 0 || exerciseIndex >= len(t.exercises) {
		return
	}
	sets := t.exercises[exerciseIndex].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return
	}
	t.exercises[exerciseIndex].Sets = append(sets[:setIndex], sets[setIndex+1:]...)
}

// TotalSets counts sets across the working exercise list.
func (t *Tracker) TotalSets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, ex := range t.exercises {
		total += len(ex.Sets)
	}
	return total
}

// TotalReps sums reps across the working exercise list.
func (t *Tracker) TotalReps() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, ex := range t.exercises {
		for _, set := range ex.Sets {
			total += set.Reps
		}
	}
	return total
}

// TotalWeight sums raw set weight across the working exercise list. This is
// the raw-weight metric, not volume (weight×reps).
func (t *Tracker) TotalWeight() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0.0
	for _, ex := range t.exercises {
		for _, set := range ex.Sets {
			if set.Weight != nil {
				total += *set.Weight
			}
		}
	}
	return total
}

// TickerRunning reports whether the elapsed-time ticker goroutine is live.
func (t *Tracker) TickerRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tickStop != nil
}

// startTickerLocked launches the 1-second elapsed ticker. At most one runs
// at a time; a second call while one is live is a no-op.
func (t *Tracker) startTickerLocked() {
	if t.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	t.tickStop = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.mu.Lock()
				elapsed := t.elapsedLocked()
				fn := t.onTick
				t.mu.Unlock()
				if fn != nil {
					fn(elapsed)
				}
			}
		}
	}()
}

func (t *Tracker) stopTickerLocked() {
	if t.tickStop == nil {
		return
	}
	close(t.tickStop)
	t.tickStop = nil
}
