package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"palipractice/internal/grammar"
)

// SettingsRepo stores one opaque settings document per domain. The document
// schema is owned by the eligibility package; the store only round-trips
// bytes so it stays decoupled from filter modeling.
type SettingsRepo interface {
	// Save stores the settings document for a domain.
	Save(ctx context.Context, domain grammar.Domain, data []byte) error

	// Load returns the settings document for a domain. Returns ErrNotFound
	// if none has been saved.
	Load(ctx context.Context, domain grammar.Domain) ([]byte, error)
}

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) Save(ctx context.Context, domain grammar.Domain, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO practice_settings (domain, data) VALUES (?, ?)
		ON CONFLICT(domain) DO UPDATE SET data = excluded.data`,
		int(domain), string(data))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *settingsRepo) Load(ctx context.Context, domain grammar.Domain) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM practice_settings WHERE domain = ?`, int(domain)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return []byte(data), nil
}
