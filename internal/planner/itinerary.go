package planner

// Unknown is the placeholder the whole app renders when the backend
// did not provide a usable value for a text field.
const Unknown = "Không xác định"

// Itinerary is the canonical in-memory shape of a generated travel plan.
// Every payload coming back from the API goes through Normalize before it
// is stored on a Session, so the rest of the code never has to care about
// which field casing a given endpoint happened to use.
type Itinerary struct {
	Destination    string `json:"destination"`
	TravelDate     string `json:"travelDate"`
	DurationDays   int    `json:"durationDays"`
	Preferences    string `json:"preferences"`
	Budget         string `json:"budget"`
	TotalCost      string `json:"totalCost"`
	Transportation string `json:"transportation"`
	GroupType      string `json:"groupType"`
	Accommodation  string `json:"accommodation"`
	SuggestedStay  string `json:"suggestedStay"`

	Days []Day `json:"days"`

	HasMore           bool          `json:"hasMore"`
	NextStartDate     string        `json:"nextStartDate"`
	PreviousAddresses []string      `json:"previousAddresses"`
	RelatedTours      []RelatedTour `json:"relatedTours"`
}

// Day is one day of an itinerary. DayNumber is 1-based and is the stable
// half of an activity's identity across refetches.
type Day struct {
	DayNumber   int        `json:"dayNumber"`
	Title       string     `json:"title"`
	DailyCost   string     `json:"dailyCost"`
	Weather     string     `json:"weather"`
	Temperature string     `json:"temperature"`
	Activities  []Activity `json:"activities"`
}

// Activity has no id of its own; it is addressed by its position inside a
// day. Callers must treat indices as invalid the moment an activity is
// inserted or removed before them.
//
// The time fields are kept lower-cased on the wire because that is the
// canonical internal spelling; the API also sends startTime/start_time
// variants and the normalizer accepts all of them.
type Activity struct {
	StartTime      string `json:"starttime"`
	EndTime        string `json:"endtime"`
	Description    string `json:"description"`
	EstimatedCost  string `json:"estimatedCost"`
	Transportation string `json:"transportation"`
	Address        string `json:"address"`
	PlaceDetail    string `json:"placeDetail"`
	MapURL         string `json:"mapUrl"`
	Image          string `json:"image"`
}

// RelatedTour is the slim tour card attached to a generated plan.
type RelatedTour struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

// ActivityRef addresses one activity by position.
type ActivityRef struct {
	DayNumber     int `json:"dayNumber"`
	ActivityIndex int `json:"activityIndex"`
}

// DayByNumber returns the day with the given 1-based number, or nil.
func (it *Itinerary) DayByNumber(n int) *Day {
	if it == nil {
		return nil
	}
	for i := range it.Days {
		if it.Days[i].DayNumber == n {
			return &it.Days[i]
		}
	}
	return nil
}
