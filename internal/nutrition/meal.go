package nutrition

import "time"

type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
	Drink     MealType = "Drink"
)

func MealTypes() []MealType {
	return []MealType{Breakfast, Lunch, Dinner, Snack, Drink}
}

type Meal struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Foods    []Food    `json:"foods"`
	MealType MealType  `json:"mealType"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}

// Totals are always recomputed from the current foods,
// never stored alongside the meal.

func (m *Meal) TotalCalories() int {
	total := 0
	for _, f := range m.Foods {
		total += f.Calories
	}
	return total
}

func (m *Meal) TotalProtein() float64 {
	total := 0.0
	for _, f := range m.Foods {
		total += f.Protein
	}
	return total
}

func (m *Meal) TotalCarbs() float64 {
	total := 0.0
	for _, f := range m.Foods {
		total += f.Carbs
	}
	return total
}

func (m *Meal) TotalFat() float64 {
	total := 0.0
	for _, f := range m.Foods {
		total += f.Fat
	}
	return total
}

func (m *Meal) TotalFiber() float64 {
	total := 0.0
	for _, f := range m.Foods {
		total += f.Fiber
	}
	return total
}

func (m *Meal) TotalSugar() float64 {
	total := 0.0
	for _, f := range m.Foods {
		total += f.Sugar
	}
	return total
}
