package db_models

import "github.com/google/uuid"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	BaseModel
	AccountID     uuid.UUID `gorm:"index"`
	TourID        uuid.UUID `gorm:"index"`
	DepartureDate string    // "2006-01-02", one of the tour's departures
	Seats         int
	AmountMinor   int64
	Currency      string        `gorm:"size:3;default:VND"`
	Status        BookingStatus `gorm:"type:varchar(16);index;default:pending"`

	Account Account `gorm:"foreignKey:AccountID"`
	Tour    Tour    `gorm:"foreignKey:TourID"`
}
