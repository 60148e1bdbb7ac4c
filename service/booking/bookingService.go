package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Madruu/astrocode-project/model"
	bookingrepo "github.com/Madruu/astrocode-project/repository/booking"
	gatewayrepo "github.com/Madruu/astrocode-project/repository/gateway"
	"github.com/Madruu/astrocode-project/util/apperr"
	"github.com/Madruu/astrocode-project/util/money"
)

const (
	ErrInvalidInput        apperr.Code = "INVALID_INPUT"
	ErrNotFound            apperr.Code = "NOT_FOUND"
	ErrInsufficientBalance apperr.Code = "INSUFFICIENT_BALANCE"
	ErrSlotUnavailable     apperr.Code = "SLOT_UNAVAILABLE"
	ErrForbidden           apperr.Code = "FORBIDDEN"
	ErrAlreadyCancelled    apperr.Code = "ALREADY_CANCELLED"
	ErrCannotCancelPast    apperr.Code = "CANNOT_CANCEL_PAST"
	ErrCancelLimit         apperr.Code = "CANCEL_LIMIT_EXCEEDED"
	ErrBalanceCap          apperr.Code = "BALANCE_CAP_EXCEEDED"
	ErrPaymentDeclined     apperr.Code = "PAYMENT_DECLINED"
)

const currency = "BRL"

// Tx is the transactional surface the booking state machine runs on.
type Tx = bookingrepo.Tx

type Store interface {
	InTx(ctx context.Context, fn func(Tx) error) error
	TaskByID(ctx context.Context, taskID int64) (*model.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Booking, error)
}

type Service interface {
	// Create books a task slot: NONE -> BOOKED.
	Create(ctx context.Context, userID, taskID int64, scheduledDate time.Time, method model.PaymentMethod) (*model.Booking, error)

	// Cancel transitions BOOKED -> CANCELLED (terminal) and refunds
	// wallet-paid bookings.
	Cancel(ctx context.Context, userID, bookingID int64, reason string) (*model.Booking, error)

	ListByUser(ctx context.Context, userID int64) ([]model.Booking, error)
}

type service struct {
	store Store
	gw    gatewayrepo.Repo

	// cancelLimit caps cancellations per user per calendar month; 0
	// disables the policy.
	cancelLimit int
	now         func() time.Time
}

func New(store Store, gw gatewayrepo.Repo, cancelLimit int) Service {
	return &service{store: store, gw: gw, cancelLimit: cancelLimit, now: time.Now}
}

// NewWithClock is used by tests to pin "now".
func NewWithClock(store Store, gw gatewayrepo.Repo, cancelLimit int, now func() time.Time) Service {
	return &service{store: store, gw: gw, cancelLimit: cancelLimit, now: now}
}

func (s *service) Create(ctx context.Context, userID, taskID int64, scheduledDate time.Time, method model.PaymentMethod) (*model.Booking, error) {
	if method != model.MethodWallet && method != model.MethodDirect {
		return nil, apperr.New(ErrInvalidInput)
	}
	// A slot exactly equal to now is already in the past for booking
	// purposes; the date must be strictly in the future.
	if !scheduledDate.After(s.now()) {
		return nil, apperr.New(ErrInvalidInput)
	}

	// Direct payments are authorized against the gateway before the
	// database transaction opens, so a slow acquirer never holds row locks.
	var reference string
	if method == model.MethodDirect {
		task, err := s.store.TaskByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.New(ErrNotFound)
			}
			return nil, err
		}
		resp, err := s.gw.Authorize(ctx, gatewayrepo.ChargeReq{
			ExternalID:  fmt.Sprintf("booking:%d:%d", userID, s.now().UnixNano()),
			Amount:      task.Price,
			Currency:    currency,
			Description: task.Title,
		})
		if err != nil {
			if errors.Is(err, gatewayrepo.ErrDeclined) {
				return nil, apperr.Wrap(ErrPaymentDeclined, err)
			}
			return nil, err
		}
		reference = resp.TransactionID
	}

	var out *model.Booking
	err := s.store.InTx(ctx, func(tx Tx) error {
		user, err := tx.UserForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.New(ErrNotFound)
			}
			return err
		}
		task, err := tx.TaskByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.New(ErrNotFound)
			}
			return err
		}

		if method == model.MethodWallet && user.Balance < task.Price {
			return apperr.New(ErrInsufficientBalance)
		}

		conflict, err := tx.HasBookingAt(ctx, taskID, scheduledDate)
		if err != nil {
			return err
		}
		if conflict {
			return apperr.New(ErrSlotUnavailable)
		}

		b := &model.Booking{
			UserID:        userID,
			TaskID:        taskID,
			ScheduledDate: scheduledDate,
			Status:        model.BookingBooked,
			Paid:          true,
			Method:        method,
			Price:         task.Price,
			Reference:     reference,
		}
		if err := tx.InsertBooking(ctx, b); err != nil {
			// A concurrent create for the same slot passed the check
			// above; the partial unique index decides the winner.
			if isUniqueViolation(err) {
				return apperr.Wrap(ErrSlotUnavailable, err)
			}
			return err
		}

		if method == model.MethodWallet {
			if err := tx.UpdateUserBalance(ctx, userID, user.Balance-task.Price); err != nil {
				return err
			}
			entry := &model.Payment{
				UserID:      userID,
				Amount:      task.Price,
				Currency:    currency,
				Type:        model.LedgerCharge,
				Status:      model.LedgerCompleted,
				Reference:   fmt.Sprintf("booking:%d", b.ID),
				Description: "Booking charge: " + task.Title,
			}
			if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
				return err
			}
		}

		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int64, reason string) (*model.Booking, error) {
	var out *model.Booking
	err := s.store.InTx(ctx, func(tx Tx) error {
		b, err := tx.BookingForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.New(ErrNotFound)
			}
			return err
		}
		if b.UserID != userID {
			return apperr.New(ErrForbidden)
		}
		if b.Status == model.BookingCancelled {
			return apperr.New(ErrAlreadyCancelled)
		}

		now := s.now()
		if !b.ScheduledDate.After(now) {
			return apperr.New(ErrCannotCancelPast)
		}

		if s.cancelLimit > 0 {
			n, err := tx.CancellationsInMonth(ctx, userID, now)
			if err != nil {
				return err
			}
			if n >= s.cancelLimit {
				return apperr.New(ErrCancelLimit)
			}
		}

		// Only wallet-paid bookings move money back; direct charges are
		// the acquirer's problem and never touched the wallet.
		if b.Paid && b.Method == model.MethodWallet {
			user, err := tx.UserForUpdate(ctx, userID)
			if err != nil {
				return err
			}
			newBalance := user.Balance + b.Price
			if newBalance > money.MaxBalance {
				return apperr.New(ErrBalanceCap)
			}
			if err := tx.UpdateUserBalance(ctx, userID, newBalance); err != nil {
				return err
			}
			entry := &model.Payment{
				UserID:      userID,
				Amount:      b.Price,
				Currency:    currency,
				Type:        model.LedgerRefund,
				Status:      model.LedgerCompleted,
				Reference:   fmt.Sprintf("booking:%d", b.ID),
				Description: "Booking refund: " + reason,
			}
			if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
				return err
			}
		}

		if err := tx.MarkCancelled(ctx, bookingID, now, reason); err != nil {
			return err
		}
		b.Status = model.BookingCancelled
		b.CancelledAt = &now
		b.CancelReason = reason
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	return s.store.ListByUser(ctx, userID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
