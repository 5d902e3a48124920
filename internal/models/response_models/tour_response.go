package response_models

type TourResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Destination string   `json:"destination"`
	Description string   `json:"description"`
	PriceMinor  int64    `json:"price_minor"`
	Currency    string   `json:"currency"`
	Capacity    int      `json:"capacity"`
	SeatsLeft   int      `json:"seats_left"`
	Departures  []string `json:"departures"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	IsActive    bool     `json:"is_active"`
}

// RelatedTourResponse is the slim card embedded into generated plans.
type RelatedTourResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}
