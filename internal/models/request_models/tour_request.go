package request_models

type CreateTourRequest struct {
	Title       string   `json:"title" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	Description string   `json:"description"`
	PriceMinor  int64    `json:"price_minor" binding:"required,min=0"`
	Currency    string   `json:"currency"`
	Capacity    int      `json:"capacity" binding:"required,min=1"`
	Departures  []string `json:"departures"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

type UpdateTourRequest struct {
	Title       *string   `json:"title"`
	Destination *string   `json:"destination"`
	Description *string   `json:"description"`
	PriceMinor  *int64    `json:"price_minor"`
	Capacity    *int      `json:"capacity"`
	Departures  *[]string `json:"departures"`
	Tags        *[]string `json:"tags"`
	Images      *[]string `json:"images"`
	IsActive    *bool     `json:"is_active"`
}
