package request_models

// CreateItineraryRequest is the preference form the planner page submits.
type CreateItineraryRequest struct {
	Destination    string   `json:"destination" binding:"required"`
	TravelDate     string   `json:"travel_date" binding:"required"` // "2006-01-02"
	DurationDays   int      `json:"duration_days" binding:"required,min=1,max=14"`
	Preferences    []string `json:"preferences"`
	Budget         string   `json:"budget"`
	Transportation string   `json:"transportation"`
	GroupType      string   `json:"group_type"`
	Accommodation  string   `json:"accommodation"`
}

// UpdateItineraryRequest carries one chat instruction. DayNumber and
// ActivityIndex are present only when the user tapped an activity first;
// Description rides along so the backend can locate the activity even if
// indices drifted since the tap.
type UpdateItineraryRequest struct {
	PlanID        string `json:"plan_id" binding:"required,uuid4"`
	Text          string `json:"text" binding:"required"`
	DayNumber     *int   `json:"day_number"`
	ActivityIndex *int   `json:"activity_index"`
	Description   string `json:"description"`
}

// UpdateItineraryChunkRequest applies one instruction to a bounded span of
// consecutive days.
type UpdateItineraryChunkRequest struct {
	PlanID    string `json:"plan_id" binding:"required,uuid4"`
	Text      string `json:"text" binding:"required"`
	StartDay  int    `json:"start_day" binding:"required,min=1"`
	ChunkSize int    `json:"chunk_size" binding:"required,min=1,max=3"`
}

type ShareItineraryRequest struct {
	PlanID string `json:"plan_id" binding:"required,uuid4"`
}
