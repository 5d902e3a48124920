package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/repositories"
	"tripwise/pkg/utils"
)

type TourServiceInterface interface {
	CreateTour(ctx context.Context, partnerID uuid.UUID, req request_models.CreateTourRequest) (*response_models.TourResponse, error)
	UpdateTour(ctx context.Context, partnerID uuid.UUID, tourID string, req request_models.UpdateTourRequest) (*response_models.TourResponse, error)
	DeactivateTour(ctx context.Context, partnerID uuid.UUID, tourID string) error
	GetTour(ctx context.Context, tourID string) (*response_models.TourResponse, error)
	ListTours(ctx context.Context, page, pageSize int) ([]response_models.TourResponse, error)
	ListPartnerTours(ctx context.Context, partnerID uuid.UUID, page, pageSize int) ([]response_models.TourResponse, error)
	RelatedTours(ctx context.Context, destination string, limit int) ([]response_models.RelatedTourResponse, error)
}

type TourService struct {
	tourRepo        repositories.ITourRepository
	embeddingClient utils.EmbeddingClientInterface
}

func NewTourService(tourRepo repositories.ITourRepository, embeddingClient utils.EmbeddingClientInterface) TourServiceInterface {
	return &TourService{
		tourRepo:        tourRepo,
		embeddingClient: embeddingClient,
	}
}

func (t *TourService) CreateTour(ctx context.Context, partnerID uuid.UUID, req request_models.CreateTourRequest) (*response_models.TourResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "VND"
	}

	tour := &db_models.Tour{
		PartnerID:   partnerID,
		Title:       req.Title,
		Destination: req.Destination,
		Description: req.Description,
		PriceMinor:  req.PriceMinor,
		Currency:    currency,
		Capacity:    req.Capacity,
		Departures:  req.Departures,
		Tags:        req.Tags,
		Images:      req.Images,
		IsActive:    true,
	}

	if err := t.tourRepo.Insert(ctx, tour); err != nil {
		return nil, utils.ErrDatabaseError
	}

	t.refreshEmbedding(ctx, tour)

	return buildTourResponse(tour), nil
}

func (t *TourService) UpdateTour(ctx context.Context, partnerID uuid.UUID, tourID string, req request_models.UpdateTourRequest) (*response_models.TourResponse, error) {
	tour, err := t.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tour == nil {
		return nil, utils.ErrTourNotFound
	}
	if tour.PartnerID != partnerID {
		return nil, utils.ErrForbidden
	}

	reembed := false
	if req.Title != nil {
		tour.Title = *req.Title
		reembed = true
	}
	if req.Destination != nil {
		tour.Destination = *req.Destination
		reembed = true
	}
	if req.Description != nil {
		tour.Description = *req.Description
		reembed = true
	}
	if req.PriceMinor != nil {
		tour.PriceMinor = *req.PriceMinor
	}
	if req.Capacity != nil {
		tour.Capacity = *req.Capacity
	}
	if req.Departures != nil {
		tour.Departures = *req.Departures
	}
	if req.Tags != nil {
		tour.Tags = *req.Tags
	}
	if req.Images != nil {
		tour.Images = *req.Images
	}
	if req.IsActive != nil {
		tour.IsActive = *req.IsActive
	}

	if err := t.tourRepo.Update(ctx, tour); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if reembed {
		t.refreshEmbedding(ctx, tour)
	}

	return buildTourResponse(tour), nil
}

func (t *TourService) DeactivateTour(ctx context.Context, partnerID uuid.UUID, tourID string) error {
	tour, err := t.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if tour == nil {
		return utils.ErrTourNotFound
	}
	if tour.PartnerID != partnerID {
		return utils.ErrForbidden
	}

	if err := t.tourRepo.Deactivate(ctx, tourID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TourService) GetTour(ctx context.Context, tourID string) (*response_models.TourResponse, error) {
	tour, err := t.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tour == nil {
		return nil, utils.ErrTourNotFound
	}
	return buildTourResponse(tour), nil
}

func (t *TourService) ListTours(ctx context.Context, page, pageSize int) ([]response_models.TourResponse, error) {
	tours, err := t.tourRepo.ListActive(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TourResponse, 0, len(tours))
	for i := range tours {
		out = append(out, *buildTourResponse(&tours[i]))
	}
	return out, nil
}

func (t *TourService) ListPartnerTours(ctx context.Context, partnerID uuid.UUID, page, pageSize int) ([]response_models.TourResponse, error) {
	tours, err := t.tourRepo.ListByPartner(ctx, partnerID.String(), page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TourResponse, 0, len(tours))
	for i := range tours {
		out = append(out, *buildTourResponse(&tours[i]))
	}
	return out, nil
}

// RelatedTours finds active tours close to a destination by embedding
// similarity. An embedding failure degrades to an empty list instead of
// failing the caller: related tours are a decoration on a generated plan.
func (t *TourService) RelatedTours(ctx context.Context, destination string, limit int) ([]response_models.RelatedTourResponse, error) {
	vector, err := t.embeddingClient.GetEmbedding(ctx, "tour du lịch "+destination)
	if err != nil {
		log.Printf("related tours: embedding failed for %q: %v", destination, err)
		return []response_models.RelatedTourResponse{}, nil
	}

	tours, err := t.tourRepo.FindNearestByVector(ctx, vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.RelatedTourResponse, 0, len(tours))
	for _, tour := range tours {
		image := ""
		if len(tour.Images) > 0 {
			image = tour.Images[0]
		}
		out = append(out, response_models.RelatedTourResponse{
			ID:          tour.ID.String(),
			Title:       tour.Title,
			Destination: tour.Destination,
			Price:       formatPrice(tour.PriceMinor, tour.Currency),
			Image:       image,
		})
	}
	return out, nil
}

func (t *TourService) refreshEmbedding(ctx context.Context, tour *db_models.Tour) {
	sourceText := fmt.Sprintf("%s | %s | %s", tour.Title, tour.Destination, tour.Description)

	vector, err := t.embeddingClient.GetEmbedding(ctx, sourceText)
	if err != nil {
		log.Printf("tour %s: embedding failed: %v", tour.ID, err)
		return
	}

	err = t.tourRepo.UpsertEmbedding(ctx, &db_models.TourEmbedding{
		TourID:     tour.ID,
		Embedding:  vector,
		SourceText: sourceText,
	})
	if err != nil {
		log.Printf("tour %s: embedding upsert failed: %v", tour.ID, err)
	}
}

func buildTourResponse(tour *db_models.Tour) *response_models.TourResponse {
	return &response_models.TourResponse{
		ID:          tour.ID.String(),
		Title:       tour.Title,
		Destination: tour.Destination,
		Description: tour.Description,
		PriceMinor:  tour.PriceMinor,
		Currency:    tour.Currency,
		Capacity:    tour.Capacity,
		SeatsLeft:   tour.Capacity - tour.SeatsBooked,
		Departures:  tour.Departures,
		Tags:        tour.Tags,
		Images:      tour.Images,
		IsActive:    tour.IsActive,
	}
}

// formatPrice renders a minor-unit amount for display, e.g. "4.900.000đ".
func formatPrice(amountMinor int64, currency string) string {
	s := fmt.Sprintf("%d", amountMinor)
	var grouped []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, digit)
	}
	if currency == "VND" || currency == "" {
		return string(grouped) + "đ"
	}
	return string(grouped) + " " + currency
}
