package fitness

// baseCaloriesPerMinute is the per-type burn rate used when a
// workout carries no exercise-specific rates.
func baseCaloriesPerMinute(workoutType WorkoutType) float64 {
	switch workoutType {
	case Cardio, Running, Cycling:
		return 12
	case Strength:
		return 8
	case Yoga, Pilates, Flexibility:
		return 4
	case Swimming:
		return 14
	case Hiking, Walking:
		return 6
	case Sports:
		return 10
	case Other:
		return 6
	default:
		return 6
	}
}

// EstimateCalories estimates the burn for a finished workout:
// minutes times the type's base rate plus each exercise's explicit
// per-minute rate, truncated to whole kcal. Zero duration burns zero.
func EstimateCalories(w Workout) int {
	minutes := w.DurationSec / 60
	if minutes <= 0 {
		return 0
	}

	rate := baseCaloriesPerMinute(w.WorkoutType)
	for _, ex := range w.Exercises {
		if ex.CaloriesPerMin != nil {
			rate += float64(*ex.CaloriesPerMin)
		}
	}
	return int(minutes * rate)
}
