package practice

import (
	"context"
	"sort"
	"time"

	"palipractice/internal/grammar"
	"palipractice/internal/store"
)

// dueForm is a scored review candidate inside a bucket.
type dueForm struct {
	rec      store.FormReview
	lemmaID  int
	combo    string
	priority float64
}

// untriedForm is a never-practiced candidate inside a bucket.
type untriedForm struct {
	id      grammar.FormID
	lemmaID int
	combo   string
}

// bucket groups the candidates of one grammatical category. Buckets are
// built once per queue build and consumed in place; they never outlive the
// build.
type bucket struct {
	key     string
	due     []dueForm
	untried []untriedForm
}

// categoryKey assigns a form to its practice category: the lemma's base noun
// paradigm for declension, the tense+voice pair for conjugation. Forms that
// cannot be decomposed or resolved land in the unknown category rather than
// being dropped.
func (b *Builder) categoryKey(ctx context.Context, domain grammar.Domain, id grammar.FormID, lemmaID int) string {
	switch domain {
	case grammar.Declension:
		pattern, err := b.patterns.BasePattern(ctx, lemmaID)
		if err != nil {
			return unknownCategory
		}
		return pattern
	case grammar.Conjugation:
		cat, err := grammar.ConjugationCategory(id)
		if err != nil {
			return unknownCategory
		}
		return cat
	}
	return unknownCategory
}

// group partitions due and untried forms into category buckets, scoring the
// due forms and sorting each bucket's due list by descending priority.
func (b *Builder) group(ctx context.Context, domain grammar.Domain, due []store.FormReview, untried []grammar.FormID, difficulty map[string]float64, now time.Time) map[string]*bucket {
	buckets := make(map[string]*bucket)
	get := func(key string) *bucket {
		bk, ok := buckets[key]
		if !ok {
			bk = &bucket{key: key}
			buckets[key] = bk
		}
		return bk
	}

	for _, rec := range due {
		lemmaID, combo, err := grammar.Decompose(rec.FormID, domain)
		key := unknownCategory
		if err == nil {
			key = b.categoryKey(ctx, domain, rec.FormID, lemmaID)
		}
		get(key).due = append(get(key).due, dueForm{
			rec:      rec,
			lemmaID:  lemmaID,
			combo:    combo,
			priority: PriorityScore(rec, combo, difficulty, now),
		})
	}

	for _, id := range untried {
		lemmaID, combo, err := grammar.Decompose(id, domain)
		key := unknownCategory
		if err == nil {
			key = b.categoryKey(ctx, domain, id, lemmaID)
		}
		get(key).untried = append(get(key).untried, untriedForm{id: id, lemmaID: lemmaID, combo: combo})
	}

	for _, bk := range buckets {
		sort.SliceStable(bk.due, func(i, j int) bool {
			if bk.due[i].priority != bk.due[j].priority {
				return bk.due[i].priority > bk.due[j].priority
			}
			return bk.due[i].rec.FormID < bk.due[j].rec.FormID
		})
	}
	return buckets
}
