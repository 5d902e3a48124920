package response_models

type BookingResponse struct {
	ID            string `json:"id"`
	TourID        string `json:"tour_id"`
	TourTitle     string `json:"tour_title"`
	DepartureDate string `json:"departure_date"`
	Seats         int    `json:"seats"`
	AmountMinor   int64  `json:"amount_minor"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
}

type CreateCheckoutResponse struct {
	BookingID   string `json:"booking_id"`
	CheckoutURL string `json:"checkout_url"`
	OrderCode   int64  `json:"order_code"`
}
