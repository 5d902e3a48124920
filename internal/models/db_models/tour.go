package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// Tour is a bookable product managed by a partner account.
type Tour struct {
	BaseModel
	PartnerID   uuid.UUID `gorm:"index"`
	Title       string
	Destination string `gorm:"index"`
	Description string
	PriceMinor  int64  // 4900000 = 4.900.000đ
	Currency    string `gorm:"size:3;default:VND"`
	Capacity    int
	SeatsBooked int            `gorm:"default:0"`
	Departures  pq.StringArray `gorm:"type:text[]"` // "2006-01-02" per departure
	Tags        pq.StringArray `gorm:"type:text[]"`
	Images      pq.StringArray `gorm:"type:text[]"`
	IsActive    bool           `gorm:"default:true"`

	Partner Account `gorm:"foreignKey:PartnerID"`
}

// TourEmbedding carries the vector used for related-tour lookup. Rebuilt
// whenever the tour's title/destination/description change.
type TourEmbedding struct {
	BaseModel
	TourID     uuid.UUID       `gorm:"index;unique"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"`
	SourceText string

	Tour Tour `gorm:"foreignKey:TourID"`
}
