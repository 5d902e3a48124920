package booking_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripwise/internal/repositories"
	"tripwise/internal/services"
)

var Module = fx.Provide(
	provideBookingService, provideBookingRepo)

func provideBookingRepo(db *gorm.DB) repositories.IBookingRepository {
	return repositories.NewBookingRepository(db)
}

func provideBookingService(bookingRepo repositories.IBookingRepository, tourRepo repositories.ITourRepository) services.BookingServiceInterface {
	cfg := services.PayOSConfig{
		ClientID:    os.Getenv("PAYOS_CLIENT_ID"),
		ApiKey:      os.Getenv("PAYOS_API_KEY"),
		ChecksumKey: os.Getenv("PAYOS_CHECKSUM_KEY"),
		ReturnURL:   os.Getenv("PAYOS_RETURN_URL"),
		CancelURL:   os.Getenv("PAYOS_CANCEL_URL"),
	}
	return services.NewBookingService(bookingRepo, tourRepo, cfg)
}
