package recipes

// Recipe is one generated recipe. Values are filled with defaults at
// parse time, so every field is always populated.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     int      `json:"prep_time"`
	CookTime     int      `json:"cook_time"`
	Servings     int      `json:"servings"`
	Cuisine      []string `json:"cuisine"`
	DietaryTags  []string `json:"dietary_tags"`
	Difficulty   string   `json:"difficulty"`
	Tips         []string `json:"tips,omitempty"`
	Variations   []string `json:"variations,omitempty"`
}

// RecipeWithMissing decorates a recipe with the ingredients the user
// would still need to buy. Derived, recomputed on every ranking pass.
type RecipeWithMissing struct {
	Recipe
	MissingIngredients []string `json:"missing_ingredients"`
	MissingCount       int      `json:"missing_count"`
}

// Preferences parameterizes recipe generation.
type Preferences struct {
	DietaryRestrictions string   `json:"dietary_restrictions"`
	FoodGenres          []string `json:"food_genres"`
	ServingSize         int      `json:"serving_size"`
}
