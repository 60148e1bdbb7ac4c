package bookingrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Madruu/astrocode-project/model"
	"github.com/Madruu/astrocode-project/util/money"
)

// Tx is the set of operations available inside one booking transaction.
// Services receive it through Store.InTx so every balance mutation, ledger
// append and booking write commits or rolls back together.
type Tx interface {
	UserForUpdate(ctx context.Context, userID int64) (*model.User, error)
	TaskByID(ctx context.Context, taskID int64) (*model.Task, error)
	HasBookingAt(ctx context.Context, taskID int64, at time.Time) (bool, error)
	InsertBooking(ctx context.Context, b *model.Booking) error
	UpdateUserBalance(ctx context.Context, userID int64, newBalance money.Amount) error
	InsertLedgerEntry(ctx context.Context, e *model.Payment) error
	BookingForUpdate(ctx context.Context, bookingID int64) (*model.Booking, error)
	MarkCancelled(ctx context.Context, bookingID int64, at time.Time, reason string) error
	CancellationsInMonth(ctx context.Context, userID int64, ref time.Time) (int, error)
}

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// InTx runs fn inside a single database transaction.
func (s *Store) InTx(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&sqlTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

const bookingCols = `id, user_id, task_id, scheduled_date, status, paid, method,
	price_cents, reference, cancel_reason, cancelled_at, created_at`

func (s *Store) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	const q = `
		SELECT ` + bookingCols + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY scheduled_date DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// TaskByID is the plain read used before any gateway call; the in-tx reload
// is what the booking decision is made on.
func (s *Store) TaskByID(ctx context.Context, taskID int64) (*model.Task, error) {
	const q = `
		SELECT id, title, description, price_cents, provider_id, created_at
		FROM tasks
		WHERE id = $1`
	var t model.Task
	if err := s.db.QueryRowContext(ctx, q, taskID).
		Scan(&t.ID, &t.Title, &t.Description, &t.Price, &t.ProviderID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// BookedSlots returns the scheduled times of non-cancelled bookings for a
// task within [from, to).
func (s *Store) BookedSlots(ctx context.Context, taskID int64, from, to time.Time) ([]time.Time, error) {
	const q = `
		SELECT scheduled_date
		FROM bookings
		WHERE task_id = $1
		  AND status <> 'CANCELLED'
		  AND scheduled_date >= $2 AND scheduled_date < $3
		ORDER BY scheduled_date`
	return s.queryTimes(ctx, q, taskID, from, to)
}

func (s *Store) BlockedSlots(ctx context.Context, taskID int64, from, to time.Time) ([]time.Time, error) {
	const q = `
		SELECT slot_at
		FROM blocked_slots
		WHERE task_id = $1
		  AND slot_at >= $2 AND slot_at < $3
		ORDER BY slot_at`
	return s.queryTimes(ctx, q, taskID, from, to)
}

func (s *Store) BlockSlot(ctx context.Context, taskID int64, at time.Time) error {
	const q = `
		INSERT INTO blocked_slots (task_id, slot_at)
		VALUES ($1, $2)
		ON CONFLICT (task_id, slot_at) DO NOTHING`
	_, err := s.db.ExecContext(ctx, q, taskID, at)
	return err
}

func (s *Store) UnblockSlot(ctx context.Context, taskID int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM blocked_slots WHERE task_id = $1 AND slot_at = $2`, taskID, at)
	return err
}

func (s *Store) queryTimes(ctx context.Context, q string, args ...any) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// sqlTx implements Tx over one *sql.Tx.
type sqlTx struct{ tx *sql.Tx }

func (t *sqlTx) UserForUpdate(ctx context.Context, userID int64) (*model.User, error) {
	const q = `
		SELECT id, name, email, password_hash, account_type, balance_cents, created_at
		FROM users
		WHERE id = $1
		FOR UPDATE`
	u := &model.User{}
	err := t.tx.QueryRowContext(ctx, q, userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AccountType, &u.Balance, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (t *sqlTx) TaskByID(ctx context.Context, taskID int64) (*model.Task, error) {
	const q = `
		SELECT id, title, description, price_cents, provider_id, created_at
		FROM tasks
		WHERE id = $1`
	var task model.Task
	err := t.tx.QueryRowContext(ctx, q, taskID).
		Scan(&task.ID, &task.Title, &task.Description, &task.Price, &task.ProviderID, &task.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *sqlTx) HasBookingAt(ctx context.Context, taskID int64, at time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE task_id = $1 AND scheduled_date = $2 AND status <> 'CANCELLED'
		)`
	var exists bool
	err := t.tx.QueryRowContext(ctx, q, taskID, at).Scan(&exists)
	return exists, err
}

func (t *sqlTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	// The partial unique index on (task_id, scheduled_date) WHERE status <>
	// 'CANCELLED' is the last line of defense against concurrent creates.
	const q = `
		INSERT INTO bookings (user_id, task_id, scheduled_date, status, paid, method, price_cents, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	return t.tx.QueryRowContext(ctx, q,
		b.UserID, b.TaskID, b.ScheduledDate, b.Status, b.Paid, b.Method, b.Price, b.Reference,
	).Scan(&b.ID, &b.CreatedAt)
}

func (t *sqlTx) UpdateUserBalance(ctx context.Context, userID int64, newBalance money.Amount) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE users SET balance_cents = $2 WHERE id = $1`, userID, newBalance)
	return err
}

func (t *sqlTx) InsertLedgerEntry(ctx context.Context, e *model.Payment) error {
	const q = `
		INSERT INTO payments (user_id, amount_cents, currency, type, status, reference, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	return t.tx.QueryRowContext(ctx, q,
		e.UserID, e.Amount, e.Currency, e.Type, e.Status, e.Reference, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
}

func (t *sqlTx) BookingForUpdate(ctx context.Context, bookingID int64) (*model.Booking, error) {
	const q = `
		SELECT ` + bookingCols + `
		FROM bookings
		WHERE id = $1
		FOR UPDATE`
	return scanBooking(t.tx.QueryRowContext(ctx, q, bookingID))
}

func (t *sqlTx) MarkCancelled(ctx context.Context, bookingID int64, at time.Time, reason string) error {
	const q = `
		UPDATE bookings
		SET status = 'CANCELLED', cancelled_at = $2, cancel_reason = $3
		WHERE id = $1`
	_, err := t.tx.ExecContext(ctx, q, bookingID, at, reason)
	return err
}

func (t *sqlTx) CancellationsInMonth(ctx context.Context, userID int64, ref time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM bookings
		WHERE user_id = $1
		  AND status = 'CANCELLED'
		  AND cancelled_at >= date_trunc('month', $2::timestamptz)
		  AND cancelled_at <  date_trunc('month', $2::timestamptz) + interval '1 month'`
	var n int
	err := t.tx.QueryRowContext(ctx, q, userID, ref).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	b := &model.Booking{}
	var reference, reason sql.NullString
	err := row.Scan(&b.ID, &b.UserID, &b.TaskID, &b.ScheduledDate, &b.Status,
		&b.Paid, &b.Method, &b.Price, &reference, &reason, &b.CancelledAt, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Reference = reference.String
	b.CancelReason = reason.String
	return b, nil
}
