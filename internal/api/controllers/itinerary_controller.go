package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripwise/internal/models/request_models"
	"tripwise/internal/services"
	"tripwise/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

func ownerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return uuid.Nil, false
	}
	return id, true
}

// CreateItinerary godoc
// @Summary Generate a travel itinerary
// @Description Generate an AI itinerary from the preference form, up to three days per call
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.CreateItineraryRequest true "Trip preference form"
// @Success 200 {object} response_models.CreateItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/generate [post]
func (i *ItineraryController) CreateItinerary(c *gin.Context) {
	var req request_models.CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	resp, err := i.itineraryService.CreateItinerary(c.Request.Context(), ownerID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Itinerary generated successfully")
}

// UpdateItinerary godoc
// @Summary Edit an itinerary from a chat instruction
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.UpdateItineraryRequest true "Edit instruction"
// @Success 200 {object} response_models.UpdateItineraryResponse
// @Security BearerAuth
// @Router /itineraries/update [post]
func (i *ItineraryController) UpdateItinerary(c *gin.Context) {
	var req request_models.UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := i.itineraryService.UpdateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Itinerary update processed")
}

// UpdateItineraryChunk godoc
// @Summary Edit a bounded span of days
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.UpdateItineraryChunkRequest true "Ranged edit instruction"
// @Success 200 {object} response_models.UpdateItineraryResponse
// @Security BearerAuth
// @Router /itineraries/update-chunk [post]
func (i *ItineraryController) UpdateItineraryChunk(c *gin.Context) {
	var req request_models.UpdateItineraryChunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := i.itineraryService.UpdateItineraryChunk(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Itinerary update processed")
}

// GetHistoryDetail godoc
// @Summary Fetch a stored itinerary by plan ID
// @Tags Itineraries
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itineraries/history/{planId} [get]
func (i *ItineraryController) GetHistoryDetail(c *gin.Context) {
	planID := c.Param("planId")
	if planID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Plan ID is required")
		return
	}

	payload, err := i.itineraryService.GetHistoryDetail(c.Request.Context(), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payload, "Itinerary fetched successfully")
}

// ShareItinerary godoc
// @Summary Create a public share link for a plan
// @Tags Itineraries
// @Accept json
// @Produce json
// @Param request body request_models.ShareItineraryRequest true "Plan to share"
// @Success 200 {object} response_models.ShareItineraryResponse
// @Security BearerAuth
// @Router /itineraries/share [post]
func (i *ItineraryController) ShareItinerary(c *gin.Context) {
	var req request_models.ShareItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := i.itineraryService.ShareItinerary(c.Request.Context(), req.PlanID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Share link created")
}

// GetSharedItinerary resolves a public share slug. No auth required.
func (i *ItineraryController) GetSharedItinerary(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.RespondError(c, http.StatusBadRequest, "Share slug is required")
		return
	}

	payload, err := i.itineraryService.GetSharedItinerary(c.Request.Context(), slug)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payload, "Itinerary fetched successfully")
}
