package request_models

// TravelRequest is the inbound payload for plan generation. Budget and
// mobility values outside the known enumerations are accepted as-is; the
// mode table resolves unknown budget tiers to the moderate profile.
type TravelRequest struct {
	Destination         string   `json:"destination" binding:"required"`
	DurationDays        int      `json:"duration_days" binding:"required,min=1"`
	Travelers           int      `json:"travelers" binding:"required,min=1"`
	Budget              string   `json:"budget"` // "budget" | "moderate" | "luxury"
	Interests           []string `json:"interests"`
	Mobility            string   `json:"mobility"` // "walking" | "public_transport" | "car" | "mixed"
	FoodPreference      string   `json:"food_preference,omitempty"`
	AllergyNote         string   `json:"allergy_note,omitempty"`
	SpecialRequirements string   `json:"special_requirements,omitempty"`
}

type SimilarPlansRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit,omitempty"`
}
