package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tripwise/internal/models/db_models"
)

type IBookingRepository interface {
	Insert(ctx context.Context, booking *db_models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*db_models.Booking, error)
	ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]db_models.Booking, error)
	SetStatus(ctx context.Context, bookingID string, status db_models.BookingStatus) error

	InsertTransaction(ctx context.Context, txn *db_models.Transaction) error
	GetTransactionByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *db_models.Transaction) error
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) IBookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Insert(ctx context.Context, booking *db_models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID string) (*db_models.Booking, error) {
	var booking db_models.Booking
	err := r.db.WithContext(ctx).Preload("Tour").First(&booking, "id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ListByAccount(ctx context.Context, accountID string, page, pageSize int) ([]db_models.Booking, error) {
	var bookings []db_models.Booking
	err := r.db.WithContext(ctx).
		Preload("Tour").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) SetStatus(ctx context.Context, bookingID string, status db_models.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

func (r *BookingRepository) InsertTransaction(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *BookingRepository) GetTransactionByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := r.db.WithContext(ctx).First(&txn, "provider_txn_id = ?", providerTxnID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *BookingRepository) UpdateTransaction(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}
