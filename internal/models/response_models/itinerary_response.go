package response_models

// CreateItineraryResponse mirrors what the planner page consumes: the raw
// itinerary payload plus the plan id that correlates follow-up edits.
// The payload stays a loose map on purpose — the client normalizes field
// casing on its side, and round-tripping through typed structs here would
// silently drop fields the AI adds.
type CreateItineraryResponse struct {
	Data           map[string]any `json:"data"`
	GeneratePlanID string         `json:"generatePlanId"`
}

type UpdateItineraryResponse struct {
	HasChanges    bool   `json:"hasChanges"`
	UpdateSummary string `json:"updateSummary,omitempty"`
	ChangeDetails string `json:"changeDetails,omitempty"`
	UserGuidance  string `json:"userGuidance,omitempty"`
}

type ShareItineraryResponse struct {
	ShareURL string `json:"shareUrl"`
}
