package fitness

import (
	"fmt"
	"time"
)

// enum labels match the persisted raw values of the mobile app,
// so existing blobs decode unchanged
type WorkoutType string

const (
	Cardio      WorkoutType = "Cardio"
	Strength    WorkoutType = "Strength Training"
	Flexibility WorkoutType = "Flexibility"
	Sports      WorkoutType = "Sports"
	Yoga        WorkoutType = "Yoga"
	Pilates     WorkoutType = "Pilates"
	Hiking      WorkoutType = "Hiking"
	Swimming    WorkoutType = "Swimming"
	Cycling     WorkoutType = "Cycling"
	Running     WorkoutType = "Running"
	Walking     WorkoutType = "Walking"
	Other       WorkoutType = "Other"
)

func WorkoutTypes() []WorkoutType {
	return []WorkoutType{
		Cardio, Strength, Flexibility, Sports, Yoga, Pilates,
		Hiking, Swimming, Cycling, Running, Walking, Other,
	}
}

type ExerciseType string

const (
	StrengthExercise    ExerciseType = "Strength"
	CardioExercise      ExerciseType = "Cardio"
	FlexibilityExercise ExerciseType = "Flexibility"
	BalanceExercise     ExerciseType = "Balance"
)

type MuscleGroup string

const (
	Chest     MuscleGroup = "Chest"
	Back      MuscleGroup = "Back"
	Shoulders MuscleGroup = "Shoulders"
	Arms      MuscleGroup = "Arms"
	Core      MuscleGroup = "Core"
	Legs      MuscleGroup = "Legs"
	Glutes    MuscleGroup = "Glutes"
	FullBody  MuscleGroup = "Full Body"
)

type Set struct {
	Reps        int      `json:"reps"`
	WeightKg    float64  `json:"weightKg"`
	DurationSec *float64 `json:"durationSec,omitempty"` // time-based exercises
	DistanceKm  *float64 `json:"distanceKm,omitempty"`  // cardio exercises
	RestSec     *float64 `json:"restSec,omitempty"`
}

type Exercise struct {
	Name           string        `json:"name"`
	Sets           []Set         `json:"sets"`
	ExerciseType   ExerciseType  `json:"exerciseType"`
	MuscleGroups   []MuscleGroup `json:"muscleGroups"`
	CaloriesPerMin *int          `json:"caloriesPerMinute,omitempty"`
}

// TotalVolume is the sum of weight times reps over all sets.
func (e *Exercise) TotalVolume() float64 {
	total := 0.0
	for _, s := range e.Sets {
		total += s.WeightKg * float64(s.Reps)
	}
	return total
}

type Workout struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Exercises           []Exercise  `json:"exercises"`
	Date                time.Time   `json:"date"`
	DurationSec         float64     `json:"durationSec"`
	TotalCaloriesBurned int         `json:"totalCaloriesBurned"`
	WorkoutType         WorkoutType `json:"workoutType"`
	Notes               string      `json:"notes,omitempty"`
}

// FormattedDuration renders the duration as "1h 30m" or "45m".
func (w *Workout) FormattedDuration() string {
	hours := int(w.DurationSec) / 3600
	minutes := int(w.DurationSec) % 3600 / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
