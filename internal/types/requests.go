package types

// Diet types a profile can declare. DietType is a plain string so that
// "other" diets stay representable without a separate variant field.
const (
	DietOmnivore   = "Omnivore"
	DietVegetarian = "Vegetarian"
	DietVegan      = "Vegan"
	DietKeto       = "Keto"
)

// Skill levels.
const (
	SkillBasic        = "Basic"
	SkillIntermediate = "Intermediate"
	SkillChef         = "Chef"
)

// Time filter options offered by the client. The relay echoes the selected
// value back in the recipe's time field.
const (
	Time15     = "15 min"
	Time30     = "30 min"
	Time45     = "45 min"
	Time60Plus = "+60 min"
)

// Calorie band options.
const (
	CaloriesLight  = "Light (<400)"
	CaloriesMedium = "Medium (600)"
	CaloriesHeavy  = "Hearty (+800)"
)

// Balance options.
const (
	BalanceCheat    = "Cheat Day"
	BalanceBalanced = "Balanced"
	BalanceHealthy  = "100% Healthy"
)

// Filters are the per-request, non-persisted generation preferences.
type Filters struct {
	Time     string `json:"time" binding:"required"`
	Calories string `json:"calories" binding:"required"`
	Balance  string `json:"balance" binding:"required"`
}

// ProfilePayload is the slice of the user profile the relay needs. Empty
// tool/pantry/allergy lists are legal and rendered as "none" downstream.
type ProfilePayload struct {
	DietType         string   `json:"dietType" binding:"required"`
	KitchenTools     []string `json:"kitchenTools"`
	PantryEssentials []string `json:"pantryEssentials"`
	Allergies        []string `json:"allergies"`
	SkillLevel       string   `json:"skillLevel" binding:"required"`
}

// GenerationRequest is the body of POST /generate-recipes.
type GenerationRequest struct {
	Profile ProfilePayload `json:"profile" binding:"required"`
	Filters Filters        `json:"filters" binding:"required"`
}

// ErrorResponse is the error body shape shared by all failure statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}
