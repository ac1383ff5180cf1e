package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"palipractice/internal/grammar"
)

// ComboDifficulty is the exponential-moving-average miss rate of one
// grammatical combination, kept in [0, 1].
type ComboDifficulty struct {
	Combo      string
	Difficulty float64
	Samples    int
}

// DifficultyRepo persists per-combination difficulty scores.
type DifficultyRepo interface {
	// Get returns the difficulty entry for a combination. Returns
	// ErrNotFound if the combination has never been answered.
	Get(ctx context.Context, domain grammar.Domain, combo string) (ComboDifficulty, error)

	// Upsert inserts or replaces a difficulty entry.
	Upsert(ctx context.Context, domain grammar.Domain, d ComboDifficulty) error

	// Hardest returns the highest-difficulty combinations, at most limit
	// rows (0 = unlimited).
	Hardest(ctx context.Context, domain grammar.Domain, limit int) ([]ComboDifficulty, error)

	// Reset deletes all difficulty entries for a domain.
	Reset(ctx context.Context, domain grammar.Domain) error
}

type difficultyRepo struct {
	db *sql.DB
}

func (r *difficultyRepo) Get(ctx context.Context, domain grammar.Domain, combo string) (ComboDifficulty, error) {
	var d ComboDifficulty
	err := r.db.QueryRowContext(ctx,
		`SELECT combo_key, difficulty, samples FROM combo_difficulty WHERE domain = ? AND combo_key = ?`,
		int(domain), combo).Scan(&d.Combo, &d.Difficulty, &d.Samples)
	if errors.Is(err, sql.ErrNoRows) {
		return ComboDifficulty{}, ErrNotFound
	}
	if err != nil {
		return ComboDifficulty{}, fmt.Errorf("get difficulty %s: %w", combo, err)
	}
	return d, nil
}

func (r *difficultyRepo) Upsert(ctx context.Context, domain grammar.Domain, d ComboDifficulty) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO combo_difficulty (domain, combo_key, difficulty, samples)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(domain, combo_key) DO UPDATE SET
			difficulty = excluded.difficulty,
			samples = excluded.samples`,
		int(domain), d.Combo, d.Difficulty, d.Samples)
	if err != nil {
		return fmt.Errorf("upsert difficulty %s: %w", d.Combo, err)
	}
	return nil
}

func (r *difficultyRepo) Hardest(ctx context.Context, domain grammar.Domain, limit int) ([]ComboDifficulty, error) {
	q := `SELECT combo_key, difficulty, samples FROM combo_difficulty
		WHERE domain = ? ORDER BY difficulty DESC, combo_key ASC`
	args := []any{int(domain)}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query hardest combos: %w", err)
	}
	defer rows.Close()

	var out []ComboDifficulty
	for rows.Next() {
		var d ComboDifficulty
		if err := rows.Scan(&d.Combo, &d.Difficulty, &d.Samples); err != nil {
			return nil, fmt.Errorf("scan difficulty: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *difficultyRepo) Reset(ctx context.Context, domain grammar.Domain) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM combo_difficulty WHERE domain = ?`, int(domain)); err != nil {
		return fmt.Errorf("reset difficulty: %w", err)
	}
	return nil
}
