package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// TravelPlan is one generated itinerary. Payload holds the full itinerary
// JSON exactly as last produced; edits replace it wholesale, never patch
// it in place, so a failed edit can't leave a half-written plan.
type TravelPlan struct {
	BaseModel
	OwnerID      uuid.UUID `gorm:"index"`
	Destination  string    `gorm:"index"`
	TravelDate   string    // "2006-01-02"
	DurationDays int
	Preferences  pq.StringArray `gorm:"type:text[]"`
	Budget       string

	Payload datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	ShareSlug string `gorm:"index"`

	Owner Account `gorm:"foreignKey:OwnerID"`
}
