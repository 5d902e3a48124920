package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tripwise/cmd/fx/account_fx"
	"tripwise/cmd/fx/booking_fx"
	"tripwise/cmd/fx/controllers_fx"
	"tripwise/cmd/fx/db_fx"
	"tripwise/cmd/fx/itinerary_fx"
	"tripwise/cmd/fx/memcache_fx"
	"tripwise/cmd/fx/tour_fx"
	"tripwise/internal/api/controllers"
	"tripwise/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		tour_fx.Module,
		itinerary_fx.Module,
		booking_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController,
	tourController *controllers.TourController,
	bookingController *controllers.BookingController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, itineraryController, tourController, bookingController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController,
	tourController *controllers.TourController,
	bookingController *controllers.BookingController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)

	// public surfaces
	r.GET("/s/:slug", itineraryController.GetSharedItinerary)
	r.GET("/tours", tourController.ListTours)
	r.GET("/tours/:tourId", tourController.GetTour)
	r.GET("/tours/related/search", tourController.RelatedTours)
	r.POST("/webhooks/payos", bookingController.HandleWebhook)

	itineraries := r.Group("/itineraries")
	itineraries.Use(middleware.JWTAuthMiddleware())
	itineraries.POST("/generate", itineraryController.CreateItinerary)
	itineraries.POST("/update", itineraryController.UpdateItinerary)
	itineraries.POST("/update-chunk", itineraryController.UpdateItineraryChunk)
	itineraries.GET("/history/:planId", itineraryController.GetHistoryDetail)
	itineraries.POST("/share", itineraryController.ShareItinerary)

	partnerTours := r.Group("/tours")
	partnerTours.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("partner"))
	partnerTours.POST("", tourController.CreateTour)
	partnerTours.PUT("/:tourId", tourController.UpdateTour)
	partnerTours.DELETE("/:tourId", tourController.DeactivateTour)
	partnerTours.GET("/mine/list", tourController.ListMyTours)

	bookings := r.Group("/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	bookings.POST("/checkout", bookingController.CreateCheckout)
	bookings.GET("", bookingController.ListBookings)
	bookings.GET("/:bookingId", bookingController.GetBooking)
}
