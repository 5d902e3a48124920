package repositories

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripwise/internal/models/db_models"
)

type ITourRepository interface {
	Insert(ctx context.Context, tour *db_models.Tour) error
	Update(ctx context.Context, tour *db_models.Tour) error
	GetByID(ctx context.Context, tourID string) (*db_models.Tour, error)
	ListByPartner(ctx context.Context, partnerID string, page, pageSize int) ([]db_models.Tour, error)
	ListActive(ctx context.Context, page, pageSize int) ([]db_models.Tour, error)
	Deactivate(ctx context.Context, tourID string) error
	ReserveSeats(ctx context.Context, tourID string, seats int) error
	ReleaseSeats(ctx context.Context, tourID string, seats int) error

	UpsertEmbedding(ctx context.Context, embedding *db_models.TourEmbedding) error
	FindNearestByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.Tour, error)
}

type TourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) ITourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) Insert(ctx context.Context, tour *db_models.Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *TourRepository) Update(ctx context.Context, tour *db_models.Tour) error {
	return r.db.WithContext(ctx).Save(tour).Error
}

func (r *TourRepository) GetByID(ctx context.Context, tourID string) (*db_models.Tour, error) {
	var tour db_models.Tour
	err := r.db.WithContext(ctx).First(&tour, "id = ?", tourID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepository) ListByPartner(ctx context.Context, partnerID string, page, pageSize int) ([]db_models.Tour, error) {
	var tours []db_models.Tour
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tours).Error
	return tours, err
}

func (r *TourRepository) ListActive(ctx context.Context, page, pageSize int) ([]db_models.Tour, error) {
	var tours []db_models.Tour
	err := r.db.WithContext(ctx).
		Where("is_active = TRUE").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tours).Error
	return tours, err
}

func (r *TourRepository) Deactivate(ctx context.Context, tourID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Tour{}).
		Where("id = ?", tourID).
		Update("is_active", false).Error
}

// ReserveSeats bumps the booked counter only while capacity remains, so
// two concurrent bookings cannot oversell the tour.
func (r *TourRepository) ReserveSeats(ctx context.Context, tourID string, seats int) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Tour{}).
		Where("id = ? AND seats_booked + ? <= capacity", tourID, seats).
		Update("seats_booked", gorm.Expr("seats_booked + ?", seats))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReleaseSeats gives reserved seats back after a failed or cancelled
// checkout. Clamped at zero so a replayed release cannot go negative.
func (r *TourRepository) ReleaseSeats(ctx context.Context, tourID string, seats int) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Tour{}).
		Where("id = ?", tourID).
		Update("seats_booked", gorm.Expr("GREATEST(seats_booked - ?, 0)", seats)).Error
}

// UpsertEmbedding inserts or refreshes the one embedding row per tour,
// keyed on the unique tour_id index.
func (r *TourRepository) UpsertEmbedding(ctx context.Context, embedding *db_models.TourEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tour_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "source_text", "updated_at"}),
		}).
		Create(embedding).Error
}

func (r *TourRepository) FindNearestByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.Tour, error) {
	var tours []db_models.Tour

	query := `
        SELECT t.*
        FROM tours t
        JOIN tour_embeddings e ON e.tour_id = t.id
        WHERE t.is_active = TRUE AND (1 - (e.embedding <=> $1)) > 0.5
        ORDER BY e.embedding <=> $1
        LIMIT $2
    `

	err := r.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&tours).Error
	if err != nil {
		return nil, err
	}
	return tours, nil
}
