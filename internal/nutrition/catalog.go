package nutrition

import "strings"

// SampleFoods is the bundled read-only reference catalog, used for
// food search and for seeding the demo dataset on first run.
func SampleFoods() []Food {
	return []Food{
		{Name: "Apple", Quantity: 1, Unit: "medium", Calories: 95, Protein: 0.3, Carbs: 25, Fat: 0.3, Fiber: 4, Sugar: 19},
		{Name: "Banana", Quantity: 1, Unit: "medium", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4, Fiber: 3, Sugar: 14},
		{Name: "Chicken Breast", Quantity: 100, Unit: "g", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
		{Name: "Brown Rice", Quantity: 100, Unit: "g", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9, Fiber: 1.8},
		{Name: "Broccoli", Quantity: 100, Unit: "g", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Fiber: 2.6, Sugar: 1.5},
		{Name: "Salmon", Quantity: 100, Unit: "g", Calories: 208, Protein: 22, Carbs: 0, Fat: 13},
		{Name: "Greek Yogurt", Quantity: 100, Unit: "g", Calories: 59, Protein: 10, Carbs: 3.6, Fat: 0.4, Sugar: 3.6},
		{Name: "Almonds", Quantity: 28, Unit: "g", Calories: 164, Protein: 6, Carbs: 6, Fat: 14, Fiber: 3.5, Sugar: 1.2},
	}
}

// FilterFoods does a case-insensitive substring match on food name
// or brand. An empty query returns the whole catalog.
func FilterFoods(catalog []Food, query string) []Food {
	if query == "" {
		return catalog
	}
	query = strings.ToLower(query)
	var filtered []Food
	for _, f := range catalog {
		if strings.Contains(strings.ToLower(f.Name), query) ||
			strings.Contains(strings.ToLower(f.Brand), query) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
