// Package practice builds bounded, ordered practice queues. It balances
// three goals: surface overdue and struggling forms promptly, introduce new
// material at a controlled pace, and keep grammatical-category and lemma
// diversity high enough that a session does not feel repetitive.
package practice

import (
	"context"
	"time"

	"palipractice/internal/grammar"
	"palipractice/internal/store"
)

// Source classifies why an item entered the queue.
type Source string

const (
	// SourceNewForm marks a form practiced for the first time.
	SourceNewForm Source = "new_form"
	// SourceDueForReview marks a due form with no recorded combination
	// difficulty.
	SourceDueForReview Source = "due_review"
	// SourceDifficultCombo marks a due form whose grammatical combination
	// has a recorded difficulty entry.
	SourceDifficultCombo Source = "difficult_combo"
)

// Item is one scheduled practice prompt. Items are immutable once placed in
// the output queue.
type Item struct {
	FormID       grammar.FormID
	Domain       grammar.Domain
	LemmaID      int
	Combo        string
	Source       Source
	Priority     float64
	MasteryLevel int
}

// EligibilityProvider projects current settings onto the corpus, yielding
// the form ids a session may draw from.
type EligibilityProvider interface {
	EligibleFormIDs(ctx context.Context, domain grammar.Domain) ([]grammar.FormID, error)
}

// ReviewStore is the read side of persisted per-form review state.
type ReviewStore interface {
	DueForms(ctx context.Context, domain grammar.Domain, now time.Time, limit int) ([]store.FormReview, error)
	PracticedFormIDs(ctx context.Context, domain grammar.Domain) (map[grammar.FormID]struct{}, error)
}

// DifficultyStore is the read side of per-combination difficulty scores.
type DifficultyStore interface {
	Hardest(ctx context.Context, domain grammar.Domain, limit int) ([]store.ComboDifficulty, error)
}

// PatternResolver maps a lemma to its base inflection paradigm. Implemented
// by the corpus store; kept as a capability interface so the core never
// touches storage directly.
type PatternResolver interface {
	BasePattern(ctx context.Context, lemmaID int) (string, error)
}

// Tuning constants for the queue builder.
const (
	// floorRatio sets the minimum selection weight of a category relative
	// to the total, so rare paradigms are never starved.
	floorRatio = 0.05

	// minNewInterval/maxNewInterval bound the number of reviews placed
	// between two new forms. The actual interval is re-rolled uniformly
	// from this range each time a new form is placed.
	minNewInterval = 4
	maxNewInterval = 6

	// dueFetchFactor scales the requested queue length into the due-form
	// fetch limit, leaving the selector room to balance categories.
	dueFetchFactor = 3

	// hardComboLimit caps how many difficulty entries feed the scorer.
	hardComboLimit = 20

	// unknownCategory holds forms whose id cannot be decomposed or whose
	// lemma has no corpus record. They stay selectable rather than being
	// dropped.
	unknownCategory = "unknown"
)
