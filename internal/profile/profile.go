package profile

import (
	"time"
)

// enum labels match the persisted raw values of the mobile app,
// so existing blobs decode unchanged
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "Sedentary"
	LightlyActive    ActivityLevel = "Lightly Active"
	ModeratelyActive ActivityLevel = "Moderately Active"
	VeryActive       ActivityLevel = "Very Active"
	ExtraActive      ActivityLevel = "Extra Active"
)

func (al ActivityLevel) Multiplier() float64 {
	switch al {
	case Sedentary:
		return 1.2
	case LightlyActive:
		return 1.375
	case ModeratelyActive:
		return 1.55
	case VeryActive:
		return 1.725
	case ExtraActive:
		return 1.9
	default:
		return 1.2
	}
}

type DietaryGoal string

const (
	MaintainWeight DietaryGoal = "Maintain Weight"
	LoseWeight     DietaryGoal = "Lose Weight"
	GainWeight     DietaryGoal = "Gain Weight"
	BuildMuscle    DietaryGoal = "Build Muscle"
)

func (dg DietaryGoal) CalorieOffset() float64 {
	switch dg {
	case MaintainWeight:
		return 0
	case LoseWeight:
		return -500
	case GainWeight:
		return 500
	case BuildMuscle:
		return 300
	default:
		return 0
	}
}

type FitnessGoal struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	Unit         string     `json:"unit"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

type UserProfile struct {
	Name                string        `json:"name"`
	Age                 int           `json:"age"`
	HeightCm            float64       `json:"heightCm"`
	WeightKg            float64       `json:"weightKg"`
	ActivityLevel       ActivityLevel `json:"activityLevel"`
	DietaryGoal         DietaryGoal   `json:"dietaryGoal"`
	DietaryRestrictions []string      `json:"dietaryRestrictions"`
	FitnessGoals        []FitnessGoal `json:"fitnessGoals"`
	DailyCalorieGoal    int           `json:"dailyCalorieGoal"`
	JoinDate            time.Time     `json:"joinDate"`
}

// DailyCalorieGoalFor estimates the daily calorie goal via the
// Mifflin-St Jeor BMR formula, scaled by activity level and
// offset by the dietary goal. Truncated to whole kcal.
func DailyCalorieGoalFor(
	weightKg, heightCm float64,
	age int,
	activityLevel ActivityLevel,
	dietaryGoal DietaryGoal,
) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age) + 5
	maintenance := bmr * activityLevel.Multiplier()
	return int(maintenance + dietaryGoal.CalorieOffset())
}

// BMI is weight over squared height in meters.
func (up *UserProfile) BMI() float64 {
	if up.HeightCm <= 0 {
		return 0
	}
	heightM := up.HeightCm / 100
	return up.WeightKg / (heightM * heightM)
}

func (up *UserProfile) BMICategory() string {
	bmi := up.BMI()
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func (up *UserProfile) recalcDailyCalorieGoal() {
	up.DailyCalorieGoal = DailyCalorieGoalFor(
		up.WeightKg, up.HeightCm, up.Age, up.ActivityLevel, up.DietaryGoal,
	)
}
