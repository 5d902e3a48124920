package planner

import (
	"context"
	"errors"
	"log"
)

var ErrNoActivePlan = errors.New("no active plan in session")

// PreferenceForm is the user's generation form, mirrored from the
// /itineraries/generate request body.
type PreferenceForm struct {
	Destination    string   `json:"destination"`
	TravelDate     string   `json:"travelDate"`
	DurationDays   int      `json:"durationDays"`
	Preferences    []string `json:"preferences"`
	Budget         string   `json:"budget"`
	Transportation string   `json:"transportation"`
	GroupType      string   `json:"groupType"`
	Accommodation  string   `json:"accommodation"`
}

// UpdateResult is what every edit endpoint answers with. HasChanges=false
// is not a failure: the backend understood the request and decided the
// plan already satisfies it, and UserGuidance tells the user so.
type UpdateResult struct {
	HasChanges    bool   `json:"hasChanges"`
	UpdateSummary string `json:"updateSummary,omitempty"`
	ChangeDetails string `json:"changeDetails,omitempty"`
	UserGuidance  string `json:"userGuidance,omitempty"`
}

// GeneratedPlan pairs a fresh payload with its server-assigned plan id.
type GeneratedPlan struct {
	PlanID  string
	Payload map[string]any
}

// PlannerAPI is the backend surface a session needs. pkg/client implements
// it over HTTP; tests substitute fakes.
type PlannerAPI interface {
	CreateItinerary(ctx context.Context, form PreferenceForm) (*GeneratedPlan, error)
	UpdateItinerary(ctx context.Context, planID, text string, dayNumber, activityIndex *int, description string) (*UpdateResult, error)
	UpdateItineraryChunk(ctx context.Context, planID, text string, startDay, chunkSize int) (*UpdateResult, error)
	GetHistoryDetail(ctx context.Context, planID string) (map[string]any, error)
	ShareItinerary(ctx context.Context, planID string) (string, error)
}

// SelectedActivity is the activity the user tapped before typing, if any.
// Description rides along so the backend can disambiguate when indices
// have drifted.
type SelectedActivity struct {
	DayNumber     int
	ActivityIndex int
	Description   string
}

// Session owns one user's reconciliation state: the current normalized
// plan, the optional activity selection and the set of positions to
// highlight as recently updated. The itinerary is only ever replaced
// wholesale after a successful round-trip, so a failed call can never
// leave it half-edited. Sessions are not safe for concurrent use; the
// caller serializes edits the same way the UI disables its input while
// a request is in flight.
type Session struct {
	api PlannerAPI

	PlanID     string
	Current    *Itinerary
	Selected   *SelectedActivity
	Highlights []ActivityRef
}

func NewSession(api PlannerAPI) *Session {
	return &Session{api: api, Highlights: []ActivityRef{}}
}

// Start generates a plan from the preference form and loads it into the
// session.
func (s *Session) Start(ctx context.Context, form PreferenceForm) (*Itinerary, error) {
	plan, err := s.api.CreateItinerary(ctx, form)
	if err != nil {
		return nil, err
	}

	s.PlanID = plan.PlanID
	s.Current = Normalize(plan.Payload)
	s.Selected = nil
	s.Highlights = []ActivityRef{}
	return s.Current, nil
}

// Resume loads an existing plan by id, e.g. when reopening a shared or
// historical itinerary.
func (s *Session) Resume(ctx context.Context, planID string) (*Itinerary, error) {
	payload, err := s.api.GetHistoryDetail(ctx, planID)
	if err != nil {
		return nil, err
	}

	s.PlanID = planID
	s.Current = Normalize(payload)
	s.Selected = nil
	s.Highlights = []ActivityRef{}
	return s.Current, nil
}

// Select marks an activity as the target of the next instruction.
func (s *Session) Select(dayNumber, activityIndex int, description string) {
	s.Selected = &SelectedActivity{
		DayNumber:     dayNumber,
		ActivityIndex: activityIndex,
		Description:   description,
	}
}

func (s *Session) ClearSelection() {
	s.Selected = nil
}

// Apply runs one full reconciliation cycle for a chat instruction:
// parse the text, dispatch the matching update call, and on a reported
// change refetch the authoritative plan, diff it against the previous one
// and swap it in. The highlight set is rebuilt from the fresh diff each
// cycle rather than accumulated.
func (s *Session) Apply(ctx context.Context, text string) (*UpdateResult, error) {
	if s.PlanID == "" {
		return nil, ErrNoActivePlan
	}

	cmd := ParseEditCommand(text)

	var (
		res   *UpdateResult
		scope *DiffScope
		err   error
	)

	switch {
	case cmd.IsRangeUpdate:
		res, err = s.api.UpdateItineraryChunk(ctx, s.PlanID, cmd.Message, cmd.StartDay, cmd.ChunkSize)
		scope = rangeScope(cmd.StartDay, cmd.ChunkSize)
	case s.Selected != nil:
		day, idx := s.Selected.DayNumber, s.Selected.ActivityIndex
		res, err = s.api.UpdateItinerary(ctx, s.PlanID, text, &day, &idx, s.Selected.Description)
		if isAddInstruction(text) {
			scope = &DiffScope{Activity: &ActivityRef{DayNumber: day, ActivityIndex: idx}}
		}
	default:
		res, err = s.api.UpdateItinerary(ctx, s.PlanID, text, nil, nil, "")
	}
	if err != nil {
		return nil, err
	}

	if !res.HasChanges {
		return res, nil
	}

	payload, err := s.api.GetHistoryDetail(ctx, s.PlanID)
	if err != nil {
		return nil, err
	}

	fresh := Normalize(payload)
	changed := Diff(s.Current, fresh, scope)
	log.Printf("plan %s: %d activities changed", s.PlanID, len(changed))

	s.Current = fresh
	s.Highlights = changed
	return res, nil
}

// Share asks the backend for a public link to the current plan.
func (s *Session) Share(ctx context.Context) (string, error) {
	if s.PlanID == "" {
		return "", ErrNoActivePlan
	}
	return s.api.ShareItinerary(ctx, s.PlanID)
}
