package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"palipractice/internal/grammar"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedLemma(t *testing.T, s *Store, l Lemma) {
	t.Helper()
	_, err := s.DB().Exec(
		`INSERT INTO lemmas (id, lemma, pattern, pos, freq_rank) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.Lemma, l.Pattern, l.POS, l.Rank)
	require.NoError(t, err)
}

func seedInflection(t *testing.T, s *Store, formID grammar.FormID, lemmaID int, form string) {
	t.Helper()
	_, err := s.DB().Exec(
		`INSERT INTO inflections (form_id, lemma_id, form, in_corpus) VALUES (?, ?, ?, 1)`,
		int(formID), lemmaID, form)
	require.NoError(t, err)
}

func TestReviewRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rec := FormReview{
		FormID:        107893121,
		Domain:        grammar.Declension,
		MasteryLevel:  4,
		NextDue:       now.AddDate(0, 0, 2),
		LastReview:    now,
		TotalAttempts: 7,
		CorrectCount:  5,
	}
	require.NoError(t, s.Reviews().Upsert(ctx, rec))

	got, err := s.Reviews().Get(ctx, rec.FormID)
	require.NoError(t, err)
	require.Equal(t, rec.MasteryLevel, got.MasteryLevel)
	require.True(t, got.NextDue.Equal(rec.NextDue))
	require.True(t, got.LastReview.Equal(rec.LastReview))
	require.Equal(t, rec.TotalAttempts, got.TotalAttempts)

	_, err = s.Reviews().Get(ctx, 999999999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDueFormsOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, daysAgo := range []int{1, 5, 3} {
		rec := FormReview{
			FormID:       grammar.FormID(107893121 + i*10),
			Domain:       grammar.Declension,
			MasteryLevel: 2,
			NextDue:      now.AddDate(0, 0, -daysAgo),
		}
		require.NoError(t, s.Reviews().Upsert(ctx, rec))
	}
	// Not yet due; must be excluded.
	require.NoError(t, s.Reviews().Upsert(ctx, FormReview{
		FormID: 107893161, Domain: grammar.Declension, MasteryLevel: 2, NextDue: now.AddDate(0, 0, 3),
	}))

	due, err := s.Reviews().DueForms(ctx, grammar.Declension, now, 0)
	require.NoError(t, err)
	require.Len(t, due, 3)
	// Most overdue first.
	require.True(t, due[0].NextDue.Before(due[1].NextDue) || due[0].NextDue.Equal(due[1].NextDue))
	require.Equal(t, grammar.FormID(107893131), due[0].FormID)

	limited, err := s.Reviews().DueForms(ctx, grammar.Declension, now, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)

	n, err := s.Reviews().DueCount(ctx, grammar.Declension, now)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	ids, err := s.Reviews().PracticedFormIDs(ctx, grammar.Declension)
	require.NoError(t, err)
	require.Len(t, ids, 4)

	require.NoError(t, s.Reviews().Reset(ctx, grammar.Declension))
	ids, err = s.Reviews().PracticedFormIDs(ctx, grammar.Declension)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestDifficultyRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for combo, d := range map[string]float64{"gen_pl": 0.8, "acc_sg": 0.2, "dat_sg": 0.5} {
		require.NoError(t, s.Difficulty().Upsert(ctx, grammar.Declension, ComboDifficulty{Combo: combo, Difficulty: d, Samples: 3}))
	}

	hardest, err := s.Difficulty().Hardest(ctx, grammar.Declension, 2)
	require.NoError(t, err)
	require.Len(t, hardest, 2)
	require.Equal(t, "gen_pl", hardest[0].Combo)
	require.Equal(t, "dat_sg", hardest[1].Combo)

	_, err = s.Difficulty().Get(ctx, grammar.Declension, "voc_pl")
	require.ErrorIs(t, err, ErrNotFound)

	// Domains are isolated.
	hardest, err = s.Difficulty().Hardest(ctx, grammar.Conjugation, 0)
	require.NoError(t, err)
	require.Empty(t, hardest)
}

func TestCorpusRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seedLemma(t, s, Lemma{ID: 10001, Lemma: "dhamma", Pattern: "a masc", POS: "masc", Rank: 1})
	seedLemma(t, s, Lemma{ID: 10002, Lemma: "rāja", Pattern: "rāja masc", POS: "masc", Rank: 40})
	seedLemma(t, s, Lemma{ID: 70001, Lemma: "bhavati", Pattern: "ati pr", POS: "pr", Rank: 2})

	nounForm := grammar.EncodeDeclension(grammar.DeclensionForm{
		LemmaID: 10001, Case: grammar.Nominative, Gender: grammar.Masculine, Number: grammar.Singular, EndingIndex: 1,
	})
	verbForm := grammar.EncodeConjugation(grammar.ConjugationForm{
		LemmaID: 70001, Tense: grammar.Present, Person: grammar.Third, Number: grammar.Singular, Voice: grammar.Active, EndingIndex: 1,
	})
	seedInflection(t, s, nounForm, 10001, "dhammo")
	seedInflection(t, s, verbForm, 70001, "bhavati")

	lemmas, err := s.Corpus().Lemmas(ctx, grammar.Declension)
	require.NoError(t, err)
	require.Len(t, lemmas, 2)

	ids, err := s.Corpus().AttestedFormIDs(ctx, grammar.Declension)
	require.NoError(t, err)
	require.Equal(t, []grammar.FormID{nounForm}, ids)

	ids, err = s.Corpus().AttestedFormIDs(ctx, grammar.Conjugation)
	require.NoError(t, err)
	require.Equal(t, []grammar.FormID{verbForm}, ids)

	base, err := s.Corpus().BasePattern(ctx, 10002)
	require.NoError(t, err)
	require.Equal(t, "a masc", base)

	_, err = s.Corpus().BasePattern(ctx, 10999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Settings().Load(ctx, grammar.Declension)
	require.ErrorIs(t, err, ErrNotFound)

	doc := []byte(`{"cases":[2,6]}`)
	require.NoError(t, s.Settings().Save(ctx, grammar.Declension, doc))
	got, err := s.Settings().Load(ctx, grammar.Declension)
	require.NoError(t, err)
	require.Equal(t, doc, got)

	// Overwrite replaces the document.
	doc2 := []byte(`{"cases":[1]}`)
	require.NoError(t, s.Settings().Save(ctx, grammar.Declension, doc2))
	got, err = s.Settings().Load(ctx, grammar.Declension)
	require.NoError(t, err)
	require.Equal(t, doc2, got)
}

func TestEventRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	session := uuid.New()

	for _, correct := range []bool{true, true, false} {
		require.NoError(t, s.Events().AppendAnswer(ctx, AnswerEvent{
			SessionID: session,
			FormID:    107893121,
			Domain:    grammar.Declension,
			Correct:   correct,
			ElapsedMs: 1500,
		}))
	}

	stats, err := s.Events().Stats(ctx, grammar.Declension)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 2, stats.Correct)
	require.Equal(t, 1, stats.Sessions)

	stats, err = s.Events().Stats(ctx, grammar.Conjugation)
	require.NoError(t, err)
	require.Zero(t, stats.Total)
}
