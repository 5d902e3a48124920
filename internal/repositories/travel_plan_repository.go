package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripwise/internal/models/db_models"
)

type ITravelPlanRepository interface {
	Insert(ctx context.Context, plan *db_models.TravelPlan) error
	GetByID(ctx context.Context, planID string) (*db_models.TravelPlan, error)
	GetByShareSlug(ctx context.Context, slug string) (*db_models.TravelPlan, error)
	ReplacePayload(ctx context.Context, planID string, payload []byte) error
	SetShareSlug(ctx context.Context, planID string, slug string) error
	ListDestinationsByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]string, error)
}

type TravelPlanRepository struct {
	db *gorm.DB
}

func NewTravelPlanRepository(db *gorm.DB) ITravelPlanRepository {
	return &TravelPlanRepository{db: db}
}

func (r *TravelPlanRepository) Insert(ctx context.Context, plan *db_models.TravelPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *TravelPlanRepository) GetByID(ctx context.Context, planID string) (*db_models.TravelPlan, error) {
	var plan db_models.TravelPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *TravelPlanRepository) GetByShareSlug(ctx context.Context, slug string) (*db_models.TravelPlan, error) {
	var plan db_models.TravelPlan
	err := r.db.WithContext(ctx).First(&plan, "share_slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// ReplacePayload swaps the stored itinerary wholesale. Edits never patch
// the jsonb in place.
func (r *TravelPlanRepository) ReplacePayload(ctx context.Context, planID string, payload []byte) error {
	return r.db.WithContext(ctx).
		Model(&db_models.TravelPlan{}).
		Where("id = ?", planID).
		Update("payload", payload).Error
}

func (r *TravelPlanRepository) SetShareSlug(ctx context.Context, planID string, slug string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.TravelPlan{}).
		Where("id = ?", planID).
		Update("share_slug", slug).Error
}

// ListDestinationsByOwner feeds the previousAddresses hint on generated
// plans, newest first.
func (r *TravelPlanRepository) ListDestinationsByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]string, error) {
	var destinations []string
	err := r.db.WithContext(ctx).
		Model(&db_models.TravelPlan{}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Distinct().
		Pluck("destination", &destinations).Error
	if err != nil {
		return nil, err
	}
	return destinations, nil
}
