package paymentrepo

import (
	"context"
	"database/sql"

	"github.com/Madruu/astrocode-project/model"
	"github.com/Madruu/astrocode-project/util/money"
)

// Tx is the deposit transaction surface. Locking the user row, moving the
// balance and appending the ledger entry commit together.
type Tx interface {
	UserForUpdate(ctx context.Context, userID int64) (*model.User, error)
	UpdateUserBalance(ctx context.Context, userID int64, newBalance money.Amount) error
	InsertEntry(ctx context.Context, e *model.Payment) error
}

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

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

// ListByUser returns the user's ledger, newest first. The ledger is
// append-only; there is no update or delete path anywhere.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	const q = `
		SELECT id, user_id, amount_cents, currency, type, status, reference, description, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var e model.Payment
		var reference, description sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Currency, &e.Type,
			&e.Status, &reference, &description, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Reference = reference.String
		e.Description = description.String
		out = append(out, e)
	}
	return out, rows.Err()
}

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

func (t *sqlTx) UpdateUserBalance(ctx context.Context, userID int64, newBalance money.Amount) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE users SET balance_cents = $2 WHERE id = $1`, userID, newBalance)
	return err
}

func (t *sqlTx) InsertEntry(ctx context.Context, e *model.Payment) error {
	const q = `
		INSERT INTO payments (user_id, amount_cents, currency, type, status, reference, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	return t.tx.QueryRowContext(ctx, q,
		e.UserID, e.Amount, e.Currency, e.Type, e.Status, e.Reference, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
}
