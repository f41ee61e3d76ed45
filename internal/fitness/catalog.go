package fitness

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

// SampleExercises is the bundled read-only reference catalog, used
// for session building and for seeding the demo dataset on first run.
func SampleExercises() []Exercise {
	return []Exercise{
		{
			Name:         "Push-ups",
			Sets:         []Set{{Reps: 15, WeightKg: 0}},
			ExerciseType: StrengthExercise,
			MuscleGroups: []MuscleGroup{Chest, Arms, Core},
		},
		{
			Name:         "Squats",
			Sets:         []Set{{Reps: 20, WeightKg: 0}},
			ExerciseType: StrengthExercise,
			MuscleGroups: []MuscleGroup{Legs, Glutes},
		},
		{
			Name:           "Running",
			Sets:           []Set{{Reps: 1, WeightKg: 0, DurationSec: floatPtr(1800), DistanceKm: floatPtr(5.0)}},
			ExerciseType:   CardioExercise,
			MuscleGroups:   []MuscleGroup{Legs},
			CaloriesPerMin: intPtr(12),
		},
		{
			Name:         "Bench Press",
			Sets:         []Set{{Reps: 10, WeightKg: 80}},
			ExerciseType: StrengthExercise,
			MuscleGroups: []MuscleGroup{Chest, Arms},
		},
		{
			Name:         "Deadlift",
			Sets:         []Set{{Reps: 8, WeightKg: 100}},
			ExerciseType: StrengthExercise,
			MuscleGroups: []MuscleGroup{Back, Legs, Glutes},
		},
		{
			Name:         "Plank",
			Sets:         []Set{{Reps: 1, WeightKg: 0, DurationSec: floatPtr(60)}},
			ExerciseType: StrengthExercise,
			MuscleGroups: []MuscleGroup{Core},
		},
		{
			Name:           "Cycling",
			Sets:           []Set{{Reps: 1, WeightKg: 0, DurationSec: floatPtr(3600), DistanceKm: floatPtr(20.0)}},
			ExerciseType:   CardioExercise,
			MuscleGroups:   []MuscleGroup{Legs},
			CaloriesPerMin: intPtr(8),
		},
	}
}
