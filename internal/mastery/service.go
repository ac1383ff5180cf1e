// Package mastery applies answer outcomes to the persisted review state:
// mastery-level movement, next-due scheduling, and the per-combination
// difficulty average. The queue builder never calls this package; it only
// reads the state this package writes.
package mastery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"palipractice/internal/grammar"
	"palipractice/internal/store"
)

// Mastery levels run 1-10. A correct answer moves one level up; a miss drops
// two levels and makes the form immediately due again.
const (
	MinLevel = 1
	MaxLevel = 10

	missLevelPenalty = 2

	// difficultyAlpha is the EMA weight of the newest outcome.
	difficultyAlpha = 0.3
)

// Service records answers against the stores.
type Service struct {
	reviews    store.ReviewRepo
	difficulty store.DifficultyRepo
	events     store.EventRepo
	now        func() time.Time
}

// NewService creates a mastery service. The events repo may be nil when no
// answer log is wanted (tests).
func NewService(reviews store.ReviewRepo, difficulty store.DifficultyRepo, events store.EventRepo) *Service {
	return &Service{
		reviews:    reviews,
		difficulty: difficulty,
		events:     events,
		now:        time.Now,
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Result describes the state after an answer was applied.
type Result struct {
	FormID    grammar.FormID
	Level     int
	PrevLevel int
	NextDue   time.Time
}

// RecordAnswer applies one answer: updates the form's review state, folds
// the outcome into the combination difficulty, and appends an answer event.
func (s *Service) RecordAnswer(ctx context.Context, domain grammar.Domain, sessionID uuid.UUID, formID grammar.FormID, correct bool, elapsed time.Duration) (Result, error) {
	_, combo, err := grammar.Decompose(formID, domain)
	if err != nil {
		return Result{}, fmt.Errorf("record answer: %w", err)
	}
	now := s.now().UTC()

	rec, err := s.reviews.Get(ctx, formID)
	if errors.Is(err, store.ErrNotFound) {
		rec = store.FormReview{FormID: formID, Domain: domain}
	} else if err != nil {
		return Result{}, fmt.Errorf("record answer: %w", err)
	}

	prev := rec.MasteryLevel
	rec.TotalAttempts++
	rec.LastReview = now
	if correct {
		rec.CorrectCount++
		rec.MasteryLevel++
		if rec.MasteryLevel > MaxLevel {
			rec.MasteryLevel = MaxLevel
		}
		rec.NextDue = now.AddDate(0, 0, IntervalDays(rec.MasteryLevel))
	} else {
		rec.MasteryLevel -= missLevelPenalty
		if rec.MasteryLevel < MinLevel {
			rec.MasteryLevel = MinLevel
		}
		rec.NextDue = now
	}

	if err := s.reviews.Upsert(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("record answer: %w", err)
	}
	if err := s.updateDifficulty(ctx, domain, combo, correct); err != nil {
		return Result{}, err
	}

	if s.events != nil {
		ev := store.AnswerEvent{
			SessionID: sessionID,
			FormID:    formID,
			Domain:    domain,
			Correct:   correct,
			ElapsedMs: elapsed.Milliseconds(),
			CreatedAt: now,
		}
		if err := s.events.AppendAnswer(ctx, ev); err != nil {
			return Result{}, fmt.Errorf("record answer: %w", err)
		}
	}

	return Result{FormID: formID, Level: rec.MasteryLevel, PrevLevel: prev, NextDue: rec.NextDue}, nil
}

// updateDifficulty folds the outcome into the combination's EMA miss rate.
func (s *Service) updateDifficulty(ctx context.Context, domain grammar.Domain, combo string, correct bool) error {
	outcome := 0.0
	if !correct {
		outcome = 1.0
	}

	d, err := s.difficulty.Get(ctx, domain, combo)
	if errors.Is(err, store.ErrNotFound) {
		d = store.ComboDifficulty{Combo: combo, Difficulty: outcome}
	} else if err != nil {
		return fmt.Errorf("update difficulty: %w", err)
	} else {
		d.Difficulty = difficultyAlpha*outcome + (1-difficultyAlpha)*d.Difficulty
	}
	if d.Difficulty < 0 {
		d.Difficulty = 0
	}
	if d.Difficulty > 1 {
		d.Difficulty = 1
	}
	d.Samples++

	if err := s.difficulty.Upsert(ctx, domain, d); err != nil {
		return fmt.Errorf("update difficulty: %w", err)
	}
	return nil
}

// IntervalDays returns the review interval for a mastery level: a doubling
// ladder (1, 2, 4, ...) capped at 60 days.
func IntervalDays(level int) int {
	if level < MinLevel {
		level = MinLevel
	}
	days := 1 << (level - 1)
	if days > 60 {
		return 60
	}
	return days
}
