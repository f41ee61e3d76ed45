package nutrition

// Food is a single nutrient record within a meal. Once logged it is
// never mutated; editing a meal replaces its foods wholesale.
type Food struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"` // grams
	Carbs    float64 `json:"carbs"`   // grams
	Fat      float64 `json:"fat"`     // grams
	Fiber    float64 `json:"fiber"`   // grams
	Sugar    float64 `json:"sugar"`   // grams
	Sodium   float64 `json:"sodium"`  // mg
	Brand    string  `json:"brand,omitempty"`
	Barcode  string  `json:"barcode,omitempty"`
}
