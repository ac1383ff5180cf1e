package mastery

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"palipractice/internal/grammar"
	"palipractice/internal/store"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type memReviews struct {
	recs map[grammar.FormID]store.FormReview
}

func newMemReviews() *memReviews {
	return &memReviews{recs: make(map[grammar.FormID]store.FormReview)}
}

func (m *memReviews) Get(_ context.Context, id grammar.FormID) (store.FormReview, error) {
	rec, ok := m.recs[id]
	if !ok {
		return store.FormReview{}, store.ErrNotFound
	}
	return rec, nil
}

func (m *memReviews) Upsert(_ context.Context, rec store.FormReview) error {
	m.recs[rec.FormID] = rec
	return nil
}

func (m *memReviews) DueForms(_ context.Context, _ grammar.Domain, _ time.Time, _ int) ([]store.FormReview, error) {
	return nil, nil
}

func (m *memReviews) PracticedFormIDs(_ context.Context, _ grammar.Domain) (map[grammar.FormID]struct{}, error) {
	return nil, nil
}

func (m *memReviews) DueCount(_ context.Context, _ grammar.Domain, _ time.Time) (int, error) {
	return 0, nil
}

func (m *memReviews) Reset(_ context.Context, _ grammar.Domain) error { return nil }

type memDifficulty struct {
	entries map[string]store.ComboDifficulty
}

func newMemDifficulty() *memDifficulty {
	return &memDifficulty{entries: make(map[string]store.ComboDifficulty)}
}

func (m *memDifficulty) Get(_ context.Context, _ grammar.Domain, combo string) (store.ComboDifficulty, error) {
	d, ok := m.entries[combo]
	if !ok {
		return store.ComboDifficulty{}, store.ErrNotFound
	}
	return d, nil
}

func (m *memDifficulty) Upsert(_ context.Context, _ grammar.Domain, d store.ComboDifficulty) error {
	m.entries[d.Combo] = d
	return nil
}

func (m *memDifficulty) Hardest(_ context.Context, _ grammar.Domain, _ int) ([]store.ComboDifficulty, error) {
	return nil, nil
}

func (m *memDifficulty) Reset(_ context.Context, _ grammar.Domain) error { return nil }

func testService(rev *memReviews, diff *memDifficulty) *Service {
	return NewService(rev, diff, nil).WithClock(func() time.Time { return testNow })
}

func testFormID() grammar.FormID {
	return grammar.EncodeDeclension(grammar.DeclensionForm{
		LemmaID: 10001, Case: grammar.Accusative, Gender: grammar.Masculine,
		Number: grammar.Singular, EndingIndex: 1,
	})
}

func TestRecordAnswerCorrectRaisesLevel(t *testing.T) {
	rev, diff := newMemReviews(), newMemDifficulty()
	svc := testService(rev, diff)
	id := testFormID()

	res, err := svc.RecordAnswer(context.Background(), grammar.Declension, uuid.New(), id, true, time.Second)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if res.Level != 1 || res.PrevLevel != 0 {
		t.Errorf("level = %d (prev %d), want 1 (prev 0)", res.Level, res.PrevLevel)
	}
	if want := testNow.AddDate(0, 0, 1); !res.NextDue.Equal(want) {
		t.Errorf("next due = %v, want %v", res.NextDue, want)
	}
}

func TestRecordAnswerMissDropsLevelAndMakesDue(t *testing.T) {
	rev, diff := newMemReviews(), newMemDifficulty()
	svc := testService(rev, diff)
	id := testFormID()
	rev.recs[id] = store.FormReview{FormID: id, Domain: grammar.Declension, MasteryLevel: 5, NextDue: testNow.AddDate(0, 0, 10)}

	res, err := svc.RecordAnswer(context.Background(), grammar.Declension, uuid.New(), id, false, time.Second)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if res.Level != 3 {
		t.Errorf("level = %d, want 3", res.Level)
	}
	if !res.NextDue.Equal(testNow) {
		t.Errorf("missed form should be due immediately, next due %v", res.NextDue)
	}
}

func TestRecordAnswerLevelBounds(t *testing.T) {
	rev, diff := newMemReviews(), newMemDifficulty()
	svc := testService(rev, diff)
	id := testFormID()
	ctx := context.Background()

	rev.recs[id] = store.FormReview{FormID: id, Domain: grammar.Declension, MasteryLevel: MaxLevel, NextDue: testNow}
	res, err := svc.RecordAnswer(ctx, grammar.Declension, uuid.New(), id, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Level != MaxLevel {
		t.Errorf("level above cap: %d", res.Level)
	}

	rev.recs[id] = store.FormReview{FormID: id, Domain: grammar.Declension, MasteryLevel: MinLevel, NextDue: testNow}
	res, err = svc.RecordAnswer(ctx, grammar.Declension, uuid.New(), id, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Level != MinLevel {
		t.Errorf("level below floor: %d", res.Level)
	}
}

func TestRecordAnswerMalformedID(t *testing.T) {
	svc := testService(newMemReviews(), newMemDifficulty())
	if _, err := svc.RecordAnswer(context.Background(), grammar.Declension, uuid.New(), grammar.FormID(42), true, 0); err == nil {
		t.Error("expected error for undecodable form id")
	}
}

func TestDifficultyEMA(t *testing.T) {
	rev, diff := newMemReviews(), newMemDifficulty()
	svc := testService(rev, diff)
	id := testFormID()
	ctx := context.Background()

	// First answer is a miss: difficulty seeds at 1.0.
	if _, err := svc.RecordAnswer(ctx, grammar.Declension, uuid.New(), id, false, 0); err != nil {
		t.Fatal(err)
	}
	d := diff.entries["acc_sg"]
	if d.Difficulty != 1.0 || d.Samples != 1 {
		t.Fatalf("after first miss: %+v", d)
	}

	// A hit decays it: 0.3*0 + 0.7*1.0 = 0.7.
	if _, err := svc.RecordAnswer(ctx, grammar.Declension, uuid.New(), id, true, 0); err != nil {
		t.Fatal(err)
	}
	d = diff.entries["acc_sg"]
	if delta := d.Difficulty - 0.7; delta > 1e-9 || delta < -1e-9 {
		t.Errorf("difficulty after hit = %v, want 0.7", d.Difficulty)
	}
	if d.Difficulty < 0 || d.Difficulty > 1 {
		t.Errorf("difficulty out of range: %v", d.Difficulty)
	}
}

func TestIntervalDaysLadder(t *testing.T) {
	want := map[int]int{1: 1, 2: 2, 3: 4, 4: 8, 5: 16, 6: 32, 7: 60, 10: 60}
	for level, days := range want {
		if got := IntervalDays(level); got != days {
			t.Errorf("IntervalDays(%d) = %d, want %d", level, got, days)
		}
	}
}
