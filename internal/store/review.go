package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"palipractice/internal/grammar"
)

// FormReview is the persisted mastery state of a single inflected form.
type FormReview struct {
	FormID        grammar.FormID
	Domain        grammar.Domain
	MasteryLevel  int
	NextDue       time.Time
	LastReview    time.Time
	TotalAttempts int
	CorrectCount  int
}

// IsDue reports whether the form is due for review at now.
func (r FormReview) IsDue(now time.Time) bool {
	return !now.Before(r.NextDue)
}

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// ReviewRepo persists per-form review state.
type ReviewRepo interface {
	// Get returns the review state for a form. Returns ErrNotFound if the
	// form has never been practiced.
	Get(ctx context.Context, id grammar.FormID) (FormReview, error)

	// Upsert inserts or replaces the review state for a form.
	Upsert(ctx context.Context, r FormReview) error

	// DueForms returns forms whose next-due time has passed, most overdue
	// first, at most limit rows (0 = unlimited).
	DueForms(ctx context.Context, domain grammar.Domain, now time.Time, limit int) ([]FormReview, error)

	// PracticedFormIDs returns the set of form ids with any review state.
	PracticedFormIDs(ctx context.Context, domain grammar.Domain) (map[grammar.FormID]struct{}, error)

	// DueCount returns the number of due forms for a domain.
	DueCount(ctx context.Context, domain grammar.Domain, now time.Time) (int, error)

	// Reset deletes all review state for a domain.
	Reset(ctx context.Context, domain grammar.Domain) error
}

type reviewRepo struct {
	db *sql.DB
}

func (r *reviewRepo) Get(ctx context.Context, id grammar.FormID) (FormReview, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT form_id, domain, mastery_level, next_due_utc, COALESCE(last_review_utc, ''), total_attempts, correct_count
		FROM form_reviews WHERE form_id = ?`, int(id))
	rec, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return FormReview{}, ErrNotFound
	}
	if err != nil {
		return FormReview{}, fmt.Errorf("get review %d: %w", id, err)
	}
	return rec, nil
}

func (r *reviewRepo) Upsert(ctx context.Context, rec FormReview) error {
	lastReview := ""
	if !rec.LastReview.IsZero() {
		lastReview = rec.LastReview.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO form_reviews (form_id, domain, mastery_level, next_due_utc, last_review_utc, total_attempts, correct_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(form_id) DO UPDATE SET
			mastery_level = excluded.mastery_level,
			next_due_utc = excluded.next_due_utc,
			last_review_utc = excluded.last_review_utc,
			total_attempts = excluded.total_attempts,
			correct_count = excluded.correct_count`,
		int(rec.FormID), int(rec.Domain), rec.MasteryLevel,
		rec.NextDue.UTC().Format(time.RFC3339), lastReview,
		rec.TotalAttempts, rec.CorrectCount)
	if err != nil {
		return fmt.Errorf("upsert review %d: %w", rec.FormID, err)
	}
	return nil
}

func (r *reviewRepo) DueForms(ctx context.Context, domain grammar.Domain, now time.Time, limit int) ([]FormReview, error) {
	q := `
		SELECT form_id, domain, mastery_level, next_due_utc, COALESCE(last_review_utc, ''), total_attempts, correct_count
		FROM form_reviews
		WHERE domain = ? AND next_due_utc <= ?
		ORDER BY next_due_utc ASC, form_id ASC`
	args := []any{int(domain), now.UTC().Format(time.RFC3339)}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query due forms: %w", err)
	}
	defer rows.Close()

	var out []FormReview
	for rows.Next() {
		rec, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan due form: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *reviewRepo) PracticedFormIDs(ctx context.Context, domain grammar.Domain) (map[grammar.FormID]struct{}, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT form_id FROM form_reviews WHERE domain = ?`, int(domain))
	if err != nil {
		return nil, fmt.Errorf("query practiced ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[grammar.FormID]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan practiced id: %w", err)
		}
		ids[grammar.FormID(id)] = struct{}{}
	}
	return ids, rows.Err()
}

func (r *reviewRepo) DueCount(ctx context.Context, domain grammar.Domain, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM form_reviews WHERE domain = ? AND next_due_utc <= ?`,
		int(domain), now.UTC().Format(time.RFC3339)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count due forms: %w", err)
	}
	return n, nil
}

func (r *reviewRepo) Reset(ctx context.Context, domain grammar.Domain) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM form_reviews WHERE domain = ?`, int(domain)); err != nil {
		return fmt.Errorf("reset reviews: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (FormReview, error) {
	var (
		rec        FormReview
		id, domain int
		nextDue    string
		lastReview string
	)
	if err := row.Scan(&id, &domain, &rec.MasteryLevel, &nextDue, &lastReview, &rec.TotalAttempts, &rec.CorrectCount); err != nil {
		return FormReview{}, err
	}
	rec.FormID = grammar.FormID(id)
	rec.Domain = grammar.Domain(domain)

	t, err := time.Parse(time.RFC3339, nextDue)
	if err != nil {
		return FormReview{}, fmt.Errorf("parse next_due_utc %q: %w", nextDue, err)
	}
	rec.NextDue = t

	if lastReview != "" {
		t, err := time.Parse(time.RFC3339, lastReview)
		if err != nil {
			return FormReview{}, fmt.Errorf("parse last_review_utc %q: %w", lastReview, err)
		}
		rec.LastReview = t
	}
	return rec, nil
}
