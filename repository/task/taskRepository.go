package taskrepo

import (
	"context"
	"database/sql"

	"github.com/Madruu/astrocode-project/model"
	"github.com/Madruu/astrocode-project/util/money"
)

type Repo interface {
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, id int64, title, description string, price money.Amount) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Task, error)
	Detail(ctx context.Context, id int64) (*model.Task, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, t *model.Task) error {
	const q = `
		INSERT INTO tasks (title, description, price_cents, provider_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, t.Title, t.Description, t.Price, t.ProviderID).
		Scan(&t.ID, &t.CreatedAt)
}

func (r *repo) Update(ctx context.Context, id int64, title, description string, price money.Amount) error {
	const q = `
		UPDATE tasks
		SET title = $2, description = $3, price_cents = $4
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, title, description, price)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) List(ctx context.Context) ([]model.Task, error) {
	const q = `
		SELECT id, title, description, price_cents, provider_id, created_at
		FROM tasks
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Price, &t.ProviderID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Task, error) {
	const q = `
		SELECT id, title, description, price_cents, provider_id, created_at
		FROM tasks
		WHERE id = $1`
	var t model.Task
	if err := r.db.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Price, &t.ProviderID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
