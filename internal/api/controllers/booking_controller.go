package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payOSHQ/payos-lib-golang"

	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

// CreateCheckout godoc
// @Summary Book a tour and get a payment link
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.CreateBookingRequest true "Booking payload"
// @Success 200 {object} response_models.CreateCheckoutResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/checkout [post]
func (b *BookingController) CreateCheckout(c *gin.Context) {
	var req request_models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	resp, err := b.bookingService.CreateCheckout(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout created")
}

// ListBookings godoc
// @Summary List the caller's bookings
// @Tags Bookings
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {array} response_models.BookingResponse
// @Security BearerAuth
// @Router /bookings [get]
func (b *BookingController) ListBookings(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	accountID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	bookings, err := b.bookingService.ListBookings(c.Request.Context(), accountID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}

// GetBooking godoc
// @Summary Get one of the caller's bookings
// @Tags Bookings
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response_models.BookingResponse
// @Security BearerAuth
// @Router /bookings/{bookingId} [get]
func (b *BookingController) GetBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Booking ID is required")
		return
	}

	accountID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	booking, err := b.bookingService.GetBooking(c.Request.Context(), accountID, bookingID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking fetched successfully")
}

// HandleWebhook receives payOS payment notifications. Always answers 200
// on verified-but-unmatched payloads so the provider stops retrying.
func (b *BookingController) HandleWebhook(c *gin.Context) {
	var body payos.WebhookType
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	if err := b.bookingService.SettleWebhook(c.Request.Context(), body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to process webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
