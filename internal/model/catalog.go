package model

// CropDefinition is read-only reference data for a plantable crop
type CropDefinition struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Icon          string `json:"icon" yaml:"icon"`
	Description   string `json:"description" yaml:"description"`
	GrowthTime    int    `json:"growthTime" yaml:"growth_time"`       // check-ins needed to mature
	HarvestAmount int    `json:"harvestAmount" yaml:"harvest_amount"` // storage units granted on harvest
}

// Ingredient is one required crop of a recipe
type Ingredient struct {
	CropID   string `json:"cropId" yaml:"crop"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// RecipeDefinition is read-only reference data for a researchable recipe
type RecipeDefinition struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Icon        string       `json:"icon" yaml:"icon"`
	Difficulty  int          `json:"difficulty" yaml:"difficulty"` // 1-5
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Hints       []string     `json:"hints" yaml:"hints"`
	Clues       []string     `json:"clues,omitempty" yaml:"clues"`
}

// TotalQuantity returns the summed quantity across all ingredients
func (r *RecipeDefinition) TotalQuantity() int {
	total := 0
	for _, ing := range r.Ingredients {
		total += ing.Quantity
	}
	return total
}

// RequiredCropIDs returns the crop IDs of the recipe's ingredients in order
func (r *RecipeDefinition) RequiredCropIDs() []string {
	ids := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ids[i] = ing.CropID
	}
	return ids
}
