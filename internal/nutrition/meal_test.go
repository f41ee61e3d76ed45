package nutrition_test

import (
	"testing"

	"github.com/2beens/vitalstats/internal/nutrition"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestMeal_Totals_Empty(t *testing.T) {
	m := nutrition.Meal{Name: "nothing logged"}
	assert.Zero(t, m.TotalCalories())
	assert.Zero(t, m.TotalProtein())
	assert.Zero(t, m.TotalCarbs())
	assert.Zero(t, m.TotalFat())
	assert.Zero(t, m.TotalFiber())
	assert.Zero(t, m.TotalSugar())
}

func TestMeal_Totals_SingleFood(t *testing.T) {
	m := nutrition.Meal{
		Foods: []nutrition.Food{
			{Name: "Apple", Calories: 95, Protein: 0.3, Carbs: 25, Fat: 0.3, Fiber: 4, Sugar: 19},
		},
	}
	assert.Equal(t, 95, m.TotalCalories())
	assert.Equal(t, 0.3, m.TotalProtein())
	assert.Equal(t, 25.0, m.TotalCarbs())
	assert.Equal(t, 0.3, m.TotalFat())
	assert.Equal(t, 4.0, m.TotalFiber())
	assert.Equal(t, 19.0, m.TotalSugar())
}

func TestMeal_Totals_ManyFoods(t *testing.T) {
	var foods []nutrition.Food
	wantCalories := 0
	wantProtein := 0.0
	for i := 0; i < 25; i++ {
		f := nutrition.Food{
			Name:     gofakeit.Fruit(),
			Calories: gofakeit.Number(10, 900),
			Protein:  float64(gofakeit.Number(0, 60)),
		}
		wantCalories += f.Calories
		wantProtein += f.Protein
		foods = append(foods, f)
	}

	m := nutrition.Meal{Foods: foods}
	assert.Equal(t, wantCalories, m.TotalCalories())
	assert.Equal(t, wantProtein, m.TotalProtein())
}

func TestFilterFoods(t *testing.T) {
	catalog := []nutrition.Food{
		{Name: "Apple"},
		{Name: "Chicken Breast"},
		{Name: "Protein Bar", Brand: "PowerFuel"},
	}

	assert.Len(t, nutrition.FilterFoods(catalog, ""), 3)

	filtered := nutrition.FilterFoods(catalog, "chick")
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Chicken Breast", filtered[0].Name)

	// brand matches too, case-insensitive
	filtered = nutrition.FilterFoods(catalog, "powerfuel")
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Protein Bar", filtered[0].Name)

	assert.Empty(t, nutrition.FilterFoods(catalog, "pizza"))
}
