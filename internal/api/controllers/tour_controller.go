package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

type TourController struct {
	tourService services.TourServiceInterface
}

func NewTourController(tourService services.TourServiceInterface) *TourController {
	return &TourController{
		tourService: tourService,
	}
}

func pagination(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}
	return page, pageSize, true
}

// ListTours godoc
// @Summary List active tours
// @Tags Tours
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {array} response_models.TourResponse
// @Router /tours [get]
func (t *TourController) ListTours(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	tours, err := t.tourService.ListTours(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tours, "Tours fetched successfully")
}

// GetTour godoc
// @Summary Get a tour by ID
// @Tags Tours
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {object} response_models.TourResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tours/{tourId} [get]
func (t *TourController) GetTour(c *gin.Context) {
	tourID := c.Param("tourId")
	if tourID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour ID is required")
		return
	}

	tour, err := t.tourService.GetTour(c.Request.Context(), tourID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tour, "Tour fetched successfully")
}

// RelatedTours godoc
// @Summary Find tours related to a destination
// @Tags Tours
// @Produce json
// @Param destination query string true "Destination name"
// @Param limit query int false "Max results" default(4)
// @Success 200 {array} response_models.RelatedTourResponse
// @Router /tours/related/search [get]
func (t *TourController) RelatedTours(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, "Destination is required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "4"))
	if err != nil || limit < 1 || limit > 20 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-20)")
		return
	}

	tours, err := t.tourService.RelatedTours(c.Request.Context(), destination, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tours, "Related tours fetched successfully")
}

// CreateTour godoc
// @Summary Create a tour
// @Description Partner-only. Creates a tour listing and indexes it for related-tour search
// @Tags Tours
// @Accept json
// @Produce json
// @Param request body request_models.CreateTourRequest true "Tour payload"
// @Success 200 {object} response_models.TourResponse
// @Security BearerAuth
// @Router /tours [post]
func (t *TourController) CreateTour(c *gin.Context) {
	var req request_models.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	partnerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	tour, err := t.tourService.CreateTour(c.Request.Context(), partnerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tour, "Tour created successfully")
}

// UpdateTour godoc
// @Summary Update a tour
// @Tags Tours
// @Accept json
// @Produce json
// @Param tourId path string true "Tour ID"
// @Param request body request_models.UpdateTourRequest true "Fields to update"
// @Success 200 {object} response_models.TourResponse
// @Security BearerAuth
// @Router /tours/{tourId} [put]
func (t *TourController) UpdateTour(c *gin.Context) {
	tourID := c.Param("tourId")
	if tourID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour ID is required")
		return
	}

	var req request_models.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	partnerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	tour, err := t.tourService.UpdateTour(c.Request.Context(), partnerID, tourID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tour, "Tour updated successfully")
}

// DeactivateTour godoc
// @Summary Deactivate a tour
// @Tags Tours
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tours/{tourId} [delete]
func (t *TourController) DeactivateTour(c *gin.Context) {
	tourID := c.Param("tourId")
	if tourID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour ID is required")
		return
	}

	partnerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	if err := t.tourService.DeactivateTour(c.Request.Context(), partnerID, tourID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Tour deactivated")
}

// ListMyTours returns the authenticated partner's tours, active or not.
func (t *TourController) ListMyTours(c *gin.Context) {
	page, pageSize, ok := pagination(c)
	if !ok {
		return
	}

	partnerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	tours, err := t.tourService.ListPartnerTours(c.Request.Context(), partnerID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tours, "Tours fetched successfully")
}
