package request_models

type CreateBookingRequest struct {
	TourID        string `json:"tour_id" binding:"required,uuid4"`
	DepartureDate string `json:"departure_date" binding:"required"`
	Seats         int    `json:"seats" binding:"required,min=1"`
}
