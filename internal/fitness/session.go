package fitness

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrSessionActive   = errors.New("a workout session is already active")
	ErrNoActiveSession = errors.New("no active workout session")
)

// StartSession begins timing a new, unsaved workout. Only one session
// can run at a time.
func (l *Ledger) StartSession(name string, workoutType WorkoutType) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.activeWorkout != nil {
		return ErrSessionActive
	}

	start := l.now()
	l.sessionStart = &start
	l.activeWorkout = &Workout{
		Name:        name,
		Exercises:   []Exercise{},
		Date:        start,
		WorkoutType: workoutType,
	}

	log.Debugf("fitness ledger: session started: %s [%s]", name, workoutType)
	return nil
}

// AddExerciseToSession appends an exercise to the live workout.
func (l *Ledger) AddExerciseToSession(exercise Exercise) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.activeWorkout == nil {
		return ErrNoActiveSession
	}

	l.activeWorkout.Exercises = append(l.activeWorkout.Exercises, exercise)
	return nil
}

// EndSession finalizes the live workout: duration from wall clock,
// calories from the estimator, then commits it to the ledger and
// clears the session state.
func (l *Ledger) EndSession(ctx context.Context) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.activeWorkout == nil || l.sessionStart == nil {
		return ErrNoActiveSession
	}

	workout := *l.activeWorkout
	workout.DurationSec = l.now().Sub(*l.sessionStart).Seconds()
	workout.TotalCaloriesBurned = EstimateCalories(workout)

	l.activeWorkout = nil
	l.sessionStart = nil

	log.Debugf("fitness ledger: session ended: %s, %s burned %d kcal",
		workout.Name, workout.FormattedDuration(), workout.TotalCaloriesBurned)
	return l.add(ctx, workout)
}

// CancelSession discards the live workout without persisting anything.
func (l *Ledger) CancelSession() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.activeWorkout == nil {
		return ErrNoActiveSession
	}

	log.Debugf("fitness ledger: session cancelled: %s", l.activeWorkout.Name)
	l.activeWorkout = nil
	l.sessionStart = nil
	return nil
}

func (l *Ledger) SessionActive() bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.activeWorkout != nil
}

// ActiveWorkout returns a snapshot of the live workout, if any.
func (l *Ledger) ActiveWorkout() (Workout, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	if l.activeWorkout == nil {
		return Workout{}, false
	}
	return *l.activeWorkout, true
}

// ActiveDuration is the elapsed time of the live session.
func (l *Ledger) ActiveDuration() time.Duration {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	if l.sessionStart == nil {
		return 0
	}
	return l.now().Sub(*l.sessionStart)
}
