package db_models

const (
	RoleUser    = "user"
	RolePartner = "partner"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"default:user"`

	TravelPlans []TravelPlan `gorm:"foreignKey:OwnerID"`
	Tours       []Tour       `gorm:"foreignKey:PartnerID"`
	Bookings    []Booking    `gorm:"foreignKey:AccountID"`
}
