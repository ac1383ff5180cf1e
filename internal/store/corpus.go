package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"palipractice/internal/grammar"
)

// Lemma is a dictionary headword with its inflection pattern and corpus
// frequency rank (1 = most frequent).
type Lemma struct {
	ID      int
	Lemma   string
	Pattern string
	POS     string
	Rank    int
}

// CorpusRepo reads the corpus tables shipped with the training database.
type CorpusRepo interface {
	// Lemma returns a single lemma record. Returns ErrNotFound if absent.
	Lemma(ctx context.Context, id int) (Lemma, error)

	// Lemmas returns all lemmas for a domain (nouns or verbs, by id range).
	Lemmas(ctx context.Context, domain grammar.Domain) ([]Lemma, error)

	// AttestedFormIDs returns the corpus-attested form ids for a domain.
	AttestedFormIDs(ctx context.Context, domain grammar.Domain) ([]grammar.FormID, error)

	// BasePattern resolves a lemma's inflection pattern to its base
	// paradigm, normalizing irregular and variant patterns.
	BasePattern(ctx context.Context, lemmaID int) (string, error)
}

type corpusRepo struct {
	db *sql.DB
}

func (r *corpusRepo) Lemma(ctx context.Context, id int) (Lemma, error) {
	var l Lemma
	err := r.db.QueryRowContext(ctx,
		`SELECT id, lemma, pattern, pos, freq_rank FROM lemmas WHERE id = ?`, id).
		Scan(&l.ID, &l.Lemma, &l.Pattern, &l.POS, &l.Rank)
	if errors.Is(err, sql.ErrNoRows) {
		return Lemma{}, ErrNotFound
	}
	if err != nil {
		return Lemma{}, fmt.Errorf("get lemma %d: %w", id, err)
	}
	return l, nil
}

func (r *corpusRepo) Lemmas(ctx context.Context, domain grammar.Domain) ([]Lemma, error) {
	lo, hi, err := lemmaRange(domain)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, lemma, pattern, pos, freq_rank FROM lemmas WHERE id BETWEEN ? AND ? ORDER BY id`,
		lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query lemmas: %w", err)
	}
	defer rows.Close()

	var out []Lemma
	for rows.Next() {
		var l Lemma
		if err := rows.Scan(&l.ID, &l.Lemma, &l.Pattern, &l.POS, &l.Rank); err != nil {
			return nil, fmt.Errorf("scan lemma: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *corpusRepo) AttestedFormIDs(ctx context.Context, domain grammar.Domain) ([]grammar.FormID, error) {
	lo, hi, err := lemmaRange(domain)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT form_id FROM inflections WHERE in_corpus = 1 AND lemma_id BETWEEN ? AND ? ORDER BY form_id`,
		lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query attested forms: %w", err)
	}
	defer rows.Close()

	var out []grammar.FormID
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan form id: %w", err)
		}
		out = append(out, grammar.FormID(id))
	}
	return out, rows.Err()
}

func (r *corpusRepo) BasePattern(ctx context.Context, lemmaID int) (string, error) {
	l, err := r.Lemma(ctx, lemmaID)
	if err != nil {
		return "", err
	}
	if lemmaID >= grammar.VerbLemmaStart {
		return grammar.VerbBasePattern(l.Pattern), nil
	}
	return grammar.NounBasePattern(l.Pattern), nil
}

func lemmaRange(domain grammar.Domain) (lo, hi int, err error) {
	switch domain {
	case grammar.Declension:
		return grammar.NounLemmaStart, grammar.NounLemmaMax, nil
	case grammar.Conjugation:
		return grammar.VerbLemmaStart, grammar.VerbLemmaMax, nil
	}
	return 0, 0, fmt.Errorf("unknown domain %d", domain)
}
