package profile_test

import (
	"testing"

	"github.com/2beens/vitalstats/internal/profile"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDailyCalorieGoalFor(t *testing.T) {
	// bmr = 10*70 + 6.25*175 - 5*30 + 5 = 1648.75; *1.55 = 2555.56 -> 2555
	assert.Equal(t, 2555, profile.DailyCalorieGoalFor(
		70, 175, 30, profile.ModeratelyActive, profile.MaintainWeight,
	))

	testCases := []struct {
		name          string
		activityLevel profile.ActivityLevel
		dietaryGoal   profile.DietaryGoal
		want          int
	}{
		{"sedentary maintain", profile.Sedentary, profile.MaintainWeight, 1978},
		{"sedentary lose", profile.Sedentary, profile.LoseWeight, 1478},
		{"very active gain", profile.VeryActive, profile.GainWeight, 3344},
		{"extra active build muscle", profile.ExtraActive, profile.BuildMuscle, 3432},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := profile.DailyCalorieGoalFor(70, 175, 30, tc.activityLevel, tc.dietaryGoal)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUserProfile_BMI(t *testing.T) {
	p := profile.UserProfile{HeightCm: 175, WeightKg: 70}
	assert.InDelta(t, 22.86, p.BMI(), 0.01)
	assert.Equal(t, "Normal", p.BMICategory())

	testCases := []struct {
		weightKg float64
		category string
	}{
		{50, "Underweight"}, // bmi 16.3
		{60, "Normal"},      // bmi 19.6
		{80, "Overweight"},  // bmi 26.1
		{95, "Obese"},       // bmi 31.0
	}

	for _, tc := range testCases {
		p := profile.UserProfile{HeightCm: 175, WeightKg: tc.weightKg}
		assert.Equal(t, tc.category, p.BMICategory(), "weight %f", tc.weightKg)
	}

	// missing height must not divide by zero
	broken := profile.UserProfile{WeightKg: 70}
	assert.Zero(t, broken.BMI())
}
