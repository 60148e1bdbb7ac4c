package seedrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Madruu/astrocode-project/util/hash"
)

// Apply inserts idempotent demo data: two accounts, a few provider tasks and
// one blocked slot. It runs only when DEMO_SEED=true; nothing in the request
// path ever falls back to it.
func Apply(ctx context.Context, db *sql.DB) error {
	demoHash, err := hash.HashPassword("demo-password")
	if err != nil {
		return err
	}

	const insertUser = `
		INSERT INTO users (name, email, password_hash, account_type, balance_cents)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING`
	if _, err := db.ExecContext(ctx, insertUser,
		"Demo Cliente", "demo@astrocode.local", demoHash, "USER", int64(10_000_00)); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, insertUser,
		"Demo Prestador", "provider@astrocode.local", demoHash, "PROVIDER", int64(0)); err != nil {
		return err
	}

	var providerID int64
	if err := db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE email = $1`, "provider@astrocode.local").Scan(&providerID); err != nil {
		return err
	}

	tasks := []struct {
		title string
		desc  string
		cents int64
	}{
		{"Corte Masculino", "Corte de cabelo masculino, 45 minutos", 80_00},
		{"Design de Sobrancelhas", "Modelagem de sobrancelhas, 30 minutos", 55_00},
		{"Manicure Premium", "Manicure completa, 60 minutos", 120_00},
		{"Massagem Relaxante", "Massagem de corpo inteiro, 90 minutos", 220_00},
	}
	const insertTask = `
		INSERT INTO tasks (title, description, price_cents, provider_id)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (SELECT 1 FROM tasks WHERE title = $1 AND provider_id = $4)`
	for _, t := range tasks {
		if _, err := db.ExecContext(ctx, insertTask, t.title, t.desc, t.cents, providerID); err != nil {
			return err
		}
	}

	// Block tomorrow 11:00 on the first demo task, mirroring the demo data
	// the web client shipped with.
	var taskID int64
	if err := db.QueryRowContext(ctx,
		`SELECT id FROM tasks WHERE provider_id = $1 ORDER BY id LIMIT 1`, providerID).Scan(&taskID); err != nil {
		return err
	}
	tomorrow := time.Now().AddDate(0, 0, 1)
	slot := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 11, 0, 0, 0, tomorrow.Location())
	_, err = db.ExecContext(ctx, `
		INSERT INTO blocked_slots (task_id, slot_at)
		VALUES ($1, $2)
		ON CONFLICT (task_id, slot_at) DO NOTHING`, taskID, slot)
	return err
}
