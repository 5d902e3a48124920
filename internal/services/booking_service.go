package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/payOSHQ/payos-lib-golang"
	"gorm.io/gorm"

	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/repositories"
	"tripwise/pkg/utils"
)

type PayOSConfig struct {
	ClientID    string
	ApiKey      string
	ChecksumKey string // secret used to sign webhooks
	ReturnURL   string
	CancelURL   string
}

type BookingServiceInterface interface {
	CreateCheckout(ctx context.Context, accountID uuid.UUID, req request_models.CreateBookingRequest) (*response_models.CreateCheckoutResponse, error)
	ListBookings(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.BookingResponse, error)
	GetBooking(ctx context.Context, accountID uuid.UUID, bookingID string) (*response_models.BookingResponse, error)
	SettleWebhook(ctx context.Context, body payos.WebhookType) error
}

type BookingService struct {
	bookingRepo repositories.IBookingRepository
	tourRepo    repositories.ITourRepository
	cfg         PayOSConfig
}

func NewBookingService(bookingRepo repositories.IBookingRepository, tourRepo repositories.ITourRepository, cfg PayOSConfig) BookingServiceInterface {
	return &BookingService{
		bookingRepo: bookingRepo,
		tourRepo:    tourRepo,
		cfg:         cfg,
	}
}

func (b *BookingService) CreateCheckout(ctx context.Context, accountID uuid.UUID, req request_models.CreateBookingRequest) (*response_models.CreateCheckoutResponse, error) {
	if req.Seats < 1 {
		return nil, utils.ErrInvalidInput
	}

	tour, err := b.tourRepo.GetByID(ctx, req.TourID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tour == nil || !tour.IsActive {
		return nil, utils.ErrTourNotFound
	}
	if !hasDeparture(tour.Departures, req.DepartureDate) {
		return nil, utils.ErrInvalidInput
	}

	// Seats are reserved up front and handed back on every failure after
	// this point; overselling is the worse failure mode.
	if err := b.tourRepo.ReserveSeats(ctx, req.TourID, req.Seats); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrTourSoldOut
		}
		return nil, utils.ErrDatabaseError
	}

	amount := tour.PriceMinor * int64(req.Seats)

	booking := &db_models.Booking{
		AccountID:     accountID,
		TourID:        tour.ID,
		DepartureDate: req.DepartureDate,
		Seats:         req.Seats,
		AmountMinor:   amount,
		Currency:      tour.Currency,
		Status:        db_models.BookingPending,
	}
	if err := b.bookingRepo.Insert(ctx, booking); err != nil {
		b.rollbackCheckout(ctx, req.TourID, req.Seats, nil)
		return nil, utils.ErrDatabaseError
	}

	// payOS expects an int64 order code within 13 digits. Unix seconds
	// plus a short random suffix keeps collisions unlikely.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	txn := &db_models.Transaction{
		AccountID:     accountID,
		BookingID:     &booking.ID,
		AmountMinor:   amount,
		Currency:      strings.ToUpper(tour.Currency),
		Status:        db_models.TxnStatusPending,
		Provider:      "payos",
		ProviderTxnID: fmt.Sprintf("payos:%d", orderCode),
	}
	if err := b.bookingRepo.InsertTransaction(ctx, txn); err != nil {
		b.rollbackCheckout(ctx, req.TourID, req.Seats, &booking.ID)
		return nil, utils.ErrDatabaseError
	}

	if err := payos.Key(b.cfg.ClientID, b.cfg.ApiKey, b.cfg.ChecksumKey); err != nil {
		b.rollbackCheckout(ctx, req.TourID, req.Seats, &booking.ID)
		return nil, fmt.Errorf("payos client init: %w", err)
	}

	body := payos.CheckoutRequestType{
		OrderCode: orderCode,
		Amount:    int(amount),
		Items: []payos.Item{{
			Name:     tour.Title,
			Price:    int(tour.PriceMinor),
			Quantity: req.Seats,
		}},
		Description: fmt.Sprintf("Dat tour %s", booking.ID.String()[:8]),
		CancelUrl:   b.cfg.CancelURL,
		ReturnUrl:   b.cfg.ReturnURL,
	}

	link, err := payos.CreatePaymentLink(body)
	if err != nil {
		txn.Status = db_models.TxnStatusFailed
		_ = b.bookingRepo.UpdateTransaction(ctx, txn)
		b.rollbackCheckout(ctx, req.TourID, req.Seats, &booking.ID)
		log.Printf("payos create link failed for booking %s: %v", booking.ID, err)
		return nil, fmt.Errorf("payos create link: %w", err)
	}

	if meta, err := json.Marshal(map[string]any{"payos_link": link}); err == nil {
		txn.Metadata = meta
		_ = b.bookingRepo.UpdateTransaction(ctx, txn)
	}

	return &response_models.CreateCheckoutResponse{
		BookingID:   booking.ID.String(),
		CheckoutURL: link.CheckoutUrl,
		OrderCode:   orderCode,
	}, nil
}

func (b *BookingService) ListBookings(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.BookingResponse, error) {
	bookings, err := b.bookingRepo.ListByAccount(ctx, accountID.String(), page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *buildBookingResponse(&bookings[i]))
	}
	return out, nil
}

func (b *BookingService) GetBooking(ctx context.Context, accountID uuid.UUID, bookingID string) (*response_models.BookingResponse, error) {
	booking, err := b.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if booking == nil {
		return nil, utils.ErrBookingNotFound
	}
	if booking.AccountID != accountID {
		return nil, utils.ErrForbidden
	}
	return buildBookingResponse(booking), nil
}

// payOS reports per-payment success as code "00" alongside the
// top-level Success flag.
const payosSuccessCode = "00"

// SettleWebhook verifies a payOS notification and settles the matching
// transaction and booking. Unknown order codes are ignored so the
// provider stops retrying.
func (b *BookingService) SettleWebhook(ctx context.Context, body payos.WebhookType) error {
	if err := payos.Key(b.cfg.ClientID, b.cfg.ApiKey, b.cfg.ChecksumKey); err != nil {
		return fmt.Errorf("payos client init: %w", err)
	}

	data, err := payos.VerifyPaymentWebhookData(body)
	if err != nil {
		return fmt.Errorf("verify webhook: %w", err)
	}

	succeeded := body.Success && data.Code == payosSuccessCode
	return b.settleOrder(ctx, data.OrderCode, succeeded, data)
}

func (b *BookingService) settleOrder(ctx context.Context, orderCode int64, succeeded bool, receipt any) error {
	providerTxn := fmt.Sprintf("payos:%d", orderCode)
	txn, err := b.bookingRepo.GetTransactionByProviderTxnID(ctx, providerTxn)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if txn == nil {
		log.Printf("webhook: no transaction for order %d", orderCode)
		return nil
	}

	if !succeeded {
		return b.settleFailure(ctx, txn)
	}

	// Idempotent: a replayed webhook for a settled transaction is a no-op.
	if txn.Status == db_models.TxnStatusPaid {
		return nil
	}

	now := time.Now().Unix()
	txn.Status = db_models.TxnStatusPaid
	txn.PaidAt = &now
	if raw, err := json.Marshal(receipt); err == nil {
		txn.Receipt = raw
	}
	if err := b.bookingRepo.UpdateTransaction(ctx, txn); err != nil {
		return utils.ErrDatabaseError
	}

	if txn.BookingID != nil {
		if err := b.bookingRepo.SetStatus(ctx, txn.BookingID.String(), db_models.BookingConfirmed); err != nil {
			log.Printf("webhook: confirm booking %s failed: %v", txn.BookingID, err)
			return utils.ErrDatabaseError
		}
	}
	return nil
}

// settleFailure marks a cancelled or declined payment failed, cancels its
// booking and hands the seats back. Only a pending transaction settles
// this way, so a replayed failure webhook cannot release seats twice.
func (b *BookingService) settleFailure(ctx context.Context, txn *db_models.Transaction) error {
	if txn.Status != db_models.TxnStatusPending {
		return nil
	}

	txn.Status = db_models.TxnStatusFailed
	if err := b.bookingRepo.UpdateTransaction(ctx, txn); err != nil {
		return utils.ErrDatabaseError
	}

	if txn.BookingID == nil {
		return nil
	}
	booking, err := b.bookingRepo.GetByID(ctx, txn.BookingID.String())
	if err != nil || booking == nil {
		log.Printf("webhook: booking %s lookup failed: %v", txn.BookingID, err)
		return utils.ErrDatabaseError
	}

	if err := b.bookingRepo.SetStatus(ctx, booking.ID.String(), db_models.BookingCancelled); err != nil {
		return utils.ErrDatabaseError
	}
	if err := b.tourRepo.ReleaseSeats(ctx, booking.TourID.String(), booking.Seats); err != nil {
		log.Printf("webhook: seat release for tour %s failed: %v", booking.TourID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

// rollbackCheckout undoes the seat reservation, and cancels the pending
// booking when one was created, after a checkout step fails. Best-effort;
// failures are logged, the caller still reports the original error.
func (b *BookingService) rollbackCheckout(ctx context.Context, tourID string, seats int, bookingID *uuid.UUID) {
	if err := b.tourRepo.ReleaseSeats(ctx, tourID, seats); err != nil {
		log.Printf("checkout rollback: seat release for tour %s failed: %v", tourID, err)
	}
	if bookingID != nil {
		if err := b.bookingRepo.SetStatus(ctx, bookingID.String(), db_models.BookingCancelled); err != nil {
			log.Printf("checkout rollback: cancel booking %s failed: %v", bookingID, err)
		}
	}
}

func hasDeparture(departures []string, date string) bool {
	for _, d := range departures {
		if d == date {
			return true
		}
	}
	return false
}

func buildBookingResponse(booking *db_models.Booking) *response_models.BookingResponse {
	return &response_models.BookingResponse{
		ID:            booking.ID.String(),
		TourID:        booking.TourID.String(),
		TourTitle:     booking.Tour.Title,
		DepartureDate: booking.DepartureDate,
		Seats:         booking.Seats,
		AmountMinor:   booking.AmountMinor,
		Currency:      booking.Currency,
		Status:        string(booking.Status),
	}
}
