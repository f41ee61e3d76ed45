package fitness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/2beens/vitalstats/internal/keyval"
	"github.com/2beens/vitalstats/internal/telemetry/tracing"
	"github.com/2beens/vitalstats/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

//go:generate mockgen -source=ledger.go -destination=gateway_mock_test.go -package=fitness_test

type gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type idGenerator interface {
	NewID() string
}

// Totals is the workout sum over a calendar day.
type Totals struct {
	Workouts       int
	CaloriesBurned int
	DurationSec    float64
}

type MonthlySummary struct {
	Workouts       int
	CaloriesBurned int
	DurationSec    float64
}

// Ledger owns the workout collection, its derived analytics, and the
// live session being timed (see session.go). Every mutation updates
// memory first, persists the whole collection, and refreshes the
// cache of workouts on the selected day.
type Ledger struct {
	store   gateway
	idGen   idGenerator
	loc     *time.Location
	now     func() time.Time
	catalog []Exercise

	mutex          sync.RWMutex
	workouts       []Workout
	todaysWorkouts []Workout
	selectedDate   time.Time

	activeWorkout *Workout
	sessionStart  *time.Time
}

func NewLedger(store gateway, idGen idGenerator, loc *time.Location) *Ledger {
	l := &Ledger{
		store:   store,
		idGen:   idGen,
		loc:     loc,
		now:     time.Now,
		catalog: SampleExercises(),
	}
	l.selectedDate = l.now()
	return l
}

// Load reads the persisted workout collection. Missing or corrupt
// bytes fall back to the demo dataset so the dashboard is never empty.
func (l *Ledger) Load(ctx context.Context) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fitnessLedger.load")
	defer span.End()

	l.mutex.Lock()
	defer l.mutex.Unlock()

	data, err := l.store.Load(ctx, keyval.KeyWorkouts)
	if err != nil {
		if !errors.Is(err, keyval.ErrKeyNotFound) {
			log.Warnf("fitness ledger: load: %s", err)
		}
		if err := l.seedDemoWorkouts(ctx); err != nil {
			log.Warnf("fitness ledger: seed demo workouts: %s", err)
		}
		l.refreshTodaysWorkouts()
		return
	}

	var workouts []Workout
	if err := json.Unmarshal(data, &workouts); err != nil {
		log.Warnf("fitness ledger: corrupt workouts bytes, reseeding: %s", err)
		if err := l.seedDemoWorkouts(ctx); err != nil {
			log.Warnf("fitness ledger: seed demo workouts: %s", err)
		}
		l.refreshTodaysWorkouts()
		return
	}

	l.workouts = workouts
	l.refreshTodaysWorkouts()
	log.Debugf("fitness ledger: loaded %d workouts", len(workouts))
}

func (l *Ledger) Add(ctx context.Context, workout Workout) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.add(ctx, workout)
}

// add must be called with the write lock held.
func (l *Ledger) add(ctx context.Context, workout Workout) error {
	if workout.ID == "" {
		workout.ID = l.idGen.NewID()
	}
	l.workouts = append(l.workouts, workout)
	l.refreshTodaysWorkouts()
	return l.persist(ctx)
}

func (l *Ledger) Update(ctx context.Context, workout Workout) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for i := range l.workouts {
		if l.workouts[i].ID == workout.ID {
			l.workouts[i] = workout
			l.refreshTodaysWorkouts()
			return l.persist(ctx)
		}
	}
	return ErrWorkoutNotFound
}

func (l *Ledger) Delete(ctx context.Context, workoutID string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	workouts := l.workouts[:0]
	for _, w := range l.workouts {
		if w.ID != workoutID {
			workouts = append(workouts, w)
		}
	}
	l.workouts = workouts
	l.refreshTodaysWorkouts()
	return l.persist(ctx)
}

// AddQuickWorkout synthesizes a finished workout at the selected day,
// skipping the live session flow. Calories are estimated the same way
// a timed session would be.
func (l *Ledger) AddQuickWorkout(ctx context.Context, name string, workoutType WorkoutType, duration time.Duration) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	workout := Workout{
		Name:        name,
		Exercises:   []Exercise{},
		Date:        l.selectedDate,
		DurationSec: duration.Seconds(),
		WorkoutType: workoutType,
	}
	workout.TotalCaloriesBurned = EstimateCalories(workout)
	return l.add(ctx, workout)
}

// DuplicateWorkout logs a copy of the given workout under a fresh ID,
// re-dated to the selected day. Duration and burned calories carry over.
func (l *Ledger) DuplicateWorkout(ctx context.Context, workout Workout) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.add(ctx, Workout{
		Name:                workout.Name + " (Copy)",
		Exercises:           workout.Exercises,
		Date:                l.selectedDate,
		DurationSec:         workout.DurationSec,
		TotalCaloriesBurned: workout.TotalCaloriesBurned,
		WorkoutType:         workout.WorkoutType,
		Notes:               workout.Notes,
	})
}

func (l *Ledger) Workouts() []Workout {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	workouts := make([]Workout, len(l.workouts))
	copy(workouts, l.workouts)
	return workouts
}

func (l *Ledger) TodaysWorkouts() []Workout {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	workouts := make([]Workout, len(l.todaysWorkouts))
	copy(workouts, l.todaysWorkouts)
	return workouts
}

func (l *Ledger) SelectedDate() time.Time {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.selectedDate
}

// DailyTotals sums workouts on the given calendar day.
func (l *Ledger) DailyTotals(date time.Time) Totals {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var totals Totals
	for i := range l.workouts {
		w := &l.workouts[i]
		if pkg.SameCalendarDay(w.Date, date, l.loc) {
			totals.Workouts++
			totals.CaloriesBurned += w.TotalCaloriesBurned
			totals.DurationSec += w.DurationSec
		}
	}
	return totals
}

// TodaysTotals sums the workouts on the selected day.
func (l *Ledger) TodaysTotals() Totals {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var totals Totals
	for i := range l.todaysWorkouts {
		totals.Workouts++
		totals.CaloriesBurned += l.todaysWorkouts[i].TotalCaloriesBurned
		totals.DurationSec += l.todaysWorkouts[i].DurationSec
	}
	return totals
}

func (l *Ledger) WorkoutsByType(workoutType WorkoutType) []Workout {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var workouts []Workout
	for _, w := range l.todaysWorkouts {
		if w.WorkoutType == workoutType {
			workouts = append(workouts, w)
		}
	}
	return workouts
}

func (l *Ledger) CaloriesBurnedByType(workoutType WorkoutType) int {
	total := 0
	for _, w := range l.WorkoutsByType(workoutType) {
		total += w.TotalCaloriesBurned
	}
	return total
}

// weeklyWindow returns the 7-calendar-day window ending at the
// selected day, [start, end).
func (l *Ledger) weeklyWindow() (time.Time, time.Time) {
	return pkg.DaysAgo(l.selectedDate, 6, l.loc), pkg.DaysAgo(l.selectedDate, -1, l.loc)
}

func (l *Ledger) WeeklyWorkoutCount() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	start, end := l.weeklyWindow()
	count := 0
	for i := range l.workouts {
		if inWindow(l.workouts[i].Date, start, end) {
			count++
		}
	}
	return count
}

func (l *Ledger) WeeklyCaloriesBurned() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	start, end := l.weeklyWindow()
	total := 0
	for i := range l.workouts {
		if inWindow(l.workouts[i].Date, start, end) {
			total += l.workouts[i].TotalCaloriesBurned
		}
	}
	return total
}

func (l *Ledger) WeeklyWorkoutTime() time.Duration {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	start, end := l.weeklyWindow()
	total := 0.0
	for i := range l.workouts {
		if inWindow(l.workouts[i].Date, start, end) {
			total += l.workouts[i].DurationSec
		}
	}
	return time.Duration(total * float64(time.Second))
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// MonthlySummary sums workouts over the trailing calendar month
// ending at the selected day.
func (l *Ledger) MonthlySummary(ctx context.Context) MonthlySummary {
	_, span := tracing.GlobalTracer.Start(ctx, "fitnessLedger.monthlySummary")
	defer span.End()

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	monthAgo := l.selectedDate.AddDate(0, -1, 0)

	var summary MonthlySummary
	for i := range l.workouts {
		w := &l.workouts[i]
		if w.Date.Before(monthAgo) || w.Date.After(l.selectedDate) {
			continue
		}
		summary.Workouts++
		summary.CaloriesBurned += w.TotalCaloriesBurned
		summary.DurationSec += w.DurationSec
	}
	return summary
}

// FavoriteType is the most logged workout type over all history.
// Ties go to the type that reached the top count first, in insertion
// order, so the result is deterministic. Cardio when nothing is logged.
func (l *Ledger) FavoriteType() WorkoutType {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	counts := make(map[WorkoutType]int)
	favorite := Cardio
	best := 0
	for i := range l.workouts {
		t := l.workouts[i].WorkoutType
		counts[t]++
		if counts[t] > best {
			best = counts[t]
			favorite = t
		}
	}
	return favorite
}

// CurrentStreak walks backward day by day from today (not the
// selected day) and counts consecutive days with at least one
// workout. No workout today means streak 0, even if yesterday had one.
func (l *Ledger) CurrentStreak() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	streak := 0
	day := pkg.StartOfDay(l.now(), l.loc)
	for {
		hasWorkout := false
		for i := range l.workouts {
			if pkg.SameCalendarDay(l.workouts[i].Date, day, l.loc) {
				hasWorkout = true
				break
			}
		}
		if !hasWorkout {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func (l *Ledger) TotalWorkouts() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return len(l.workouts)
}

func (l *Ledger) TotalCaloriesBurned() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	total := 0
	for i := range l.workouts {
		total += l.workouts[i].TotalCaloriesBurned
	}
	return total
}

func (l *Ledger) TotalTime() time.Duration {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	total := 0.0
	for i := range l.workouts {
		total += l.workouts[i].DurationSec
	}
	return time.Duration(total * float64(time.Second))
}

func (l *Ledger) SelectPreviousDay() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.selectedDate = l.selectedDate.AddDate(0, 0, -1)
	l.refreshTodaysWorkouts()
}

func (l *Ledger) SelectNextDay() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.selectedDate = l.selectedDate.AddDate(0, 0, 1)
	l.refreshTodaysWorkouts()
}

func (l *Ledger) SelectToday() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.selectedDate = l.now()
	l.refreshTodaysWorkouts()
}

func (l *Ledger) Catalog() []Exercise {
	return l.catalog
}

func (l *Ledger) ClearAll(ctx context.Context) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.workouts = []Workout{}
	l.refreshTodaysWorkouts()
	return l.persist(ctx)
}

func (l *Ledger) ResetToDefaults(ctx context.Context) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.workouts = nil
	err := l.seedDemoWorkouts(ctx)
	l.selectedDate = l.now()
	l.refreshTodaysWorkouts()
	l.activeWorkout = nil
	l.sessionStart = nil
	return err
}

// refreshTodaysWorkouts must be called with the lock held.
func (l *Ledger) refreshTodaysWorkouts() {
	var todays []Workout
	for _, w := range l.workouts {
		if pkg.SameCalendarDay(w.Date, l.selectedDate, l.loc) {
			todays = append(todays, w)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool {
		return todays[i].Date.Before(todays[j].Date)
	})
	l.todaysWorkouts = todays
}

// persist must be called with the write lock held. A failed write is
// reported but the in-memory collection stays authoritative.
func (l *Ledger) persist(ctx context.Context) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "fitnessLedger.persist")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workouts.count", len(l.workouts)))

	data, err := json.Marshal(l.workouts)
	if err != nil {
		return fmt.Errorf("marshal workouts: %w", err)
	}
	if err := l.store.Save(ctx, keyval.KeyWorkouts, data); err != nil {
		log.Warnf("fitness ledger: persist: %s", err)
		return fmt.Errorf("persist workouts: %w", err)
	}
	return nil
}

// seedDemoWorkouts must be called with the lock held.
func (l *Ledger) seedDemoWorkouts(ctx context.Context) error {
	catalog := l.catalog
	today := l.now()
	yesterday := today.AddDate(0, 0, -1)
	twoDaysAgo := today.AddDate(0, 0, -2)

	l.workouts = []Workout{
		{
			ID:                  l.idGen.NewID(),
			Name:                "Morning Run",
			Exercises:           []Exercise{catalog[2]}, // running
			Date:                today,
			DurationSec:         1800,
			TotalCaloriesBurned: 360,
			WorkoutType:         Running,
		},
		{
			ID:                  l.idGen.NewID(),
			Name:                "Strength Training",
			Exercises:           []Exercise{catalog[0], catalog[1], catalog[3], catalog[4]},
			Date:                yesterday,
			DurationSec:         3600,
			TotalCaloriesBurned: 480,
			WorkoutType:         Strength,
		},
		{
			ID:                  l.idGen.NewID(),
			Name:                "Evening Cycling",
			Exercises:           []Exercise{catalog[6]}, // cycling
			Date:                twoDaysAgo,
			DurationSec:         2400,
			TotalCaloriesBurned: 320,
			WorkoutType:         Cycling,
		},
	}

	log.Debugf("fitness ledger: seeded %d demo workouts", len(l.workouts))
	return l.persist(ctx)
}
