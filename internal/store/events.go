package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"palipractice/internal/grammar"
)

// AnswerEvent records a single submitted answer. Events are append-only;
// aggregate stats are derived by query.
type AnswerEvent struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	FormID    grammar.FormID
	Domain    grammar.Domain
	Correct   bool
	ElapsedMs int64
	CreatedAt time.Time
}

// AnswerStats summarizes the answer log for a domain.
type AnswerStats struct {
	Total    int
	Correct  int
	Sessions int
}

// EventRepo provides append and aggregate access to the answer log.
type EventRepo interface {
	// AppendAnswer records an answer event. A zero event id is assigned.
	AppendAnswer(ctx context.Context, ev AnswerEvent) error

	// Stats returns aggregate answer counts for a domain.
	Stats(ctx context.Context, domain grammar.Domain) (AnswerStats, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendAnswer(ctx context.Context, ev AnswerEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	correct := 0
	if ev.Correct {
		correct = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO answer_events (id, session_id, form_id, domain, correct, elapsed_ms, created_utc)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.ID.String(), ev.SessionID.String(), int(ev.FormID), int(ev.Domain),
		correct, ev.ElapsedMs, ev.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) Stats(ctx context.Context, domain grammar.Domain) (AnswerStats, error) {
	var s AnswerStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(correct), 0), COUNT(DISTINCT session_id)
		FROM answer_events WHERE domain = ?`, int(domain)).
		Scan(&s.Total, &s.Correct, &s.Sessions)
	if err != nil {
		return AnswerStats{}, fmt.Errorf("answer stats: %w", err)
	}
	return s, nil
}
