package practice

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"palipractice/internal/grammar"
	"palipractice/internal/store"
)

// Builder assembles practice queues. It holds no mutable state between
// builds; everything a build needs is read from the stores up front, so a
// queue is internally consistent even if the stores change concurrently.
type Builder struct {
	eligibility EligibilityProvider
	reviews     ReviewStore
	difficulty  DifficultyStore
	patterns    PatternResolver
	rng         *rand.Rand
	now         func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithRandSource injects the randomness used for category rolls, tier
// shuffles and tie-breaks. A fixed-seed source makes builds deterministic.
func WithRandSource(src rand.Source) Option {
	return func(b *Builder) { b.rng = rand.New(src) }
}

// WithClock injects the time source used for due checks and scoring.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a queue builder over the given collaborators.
func NewBuilder(eligibility EligibilityProvider, reviews ReviewStore, difficulty DifficultyStore, patterns PatternResolver, opts ...Option) *Builder {
	b := &Builder{
		eligibility: eligibility,
		reviews:     reviews,
		difficulty:  difficulty,
		patterns:    patterns,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// EligibleFormIDs is a pass-through used by callers to pre-check whether any
// material is available before starting a session.
func (b *Builder) EligibleFormIDs(ctx context.Context, domain grammar.Domain) ([]grammar.FormID, error) {
	return b.eligibility.EligibleFormIDs(ctx, domain)
}

// BuildQueue assembles an ordered practice queue of at most count items.
// Running out of material yields a shorter queue, never an error; an empty
// eligible set yields an empty queue.
func (b *Builder) BuildQueue(ctx context.Context, domain grammar.Domain, count int) ([]Item, error) {
	if count <= 0 {
		return nil, nil
	}
	now := b.now().UTC()

	eligible, err := b.eligibility.EligibleFormIDs(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("eligible forms: %w", err)
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	eligibleSet := make(map[grammar.FormID]struct{}, len(eligible))
	for _, id := range eligible {
		eligibleSet[id] = struct{}{}
	}

	due, err := b.reviews.DueForms(ctx, domain, now, count*dueFetchFactor)
	if err != nil {
		return nil, fmt.Errorf("due forms: %w", err)
	}
	// Drop due forms excluded by the current filters.
	kept := due[:0]
	for _, rec := range due {
		if _, ok := eligibleSet[rec.FormID]; ok {
			kept = append(kept, rec)
		}
	}
	due = kept

	practiced, err := b.reviews.PracticedFormIDs(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("practiced forms: %w", err)
	}
	var untried []grammar.FormID
	for _, id := range eligible {
		if _, ok := practiced[id]; !ok {
			untried = append(untried, id)
		}
	}

	hardest, err := b.difficulty.Hardest(ctx, domain, hardComboLimit)
	if err != nil {
		return nil, fmt.Errorf("hardest combos: %w", err)
	}
	difficulty := make(map[string]float64, len(hardest))
	for _, d := range hardest {
		difficulty[d.Combo] = d.Difficulty
	}

	buckets := b.group(ctx, domain, due, untried, difficulty, now)
	queue := b.assemble(domain, buckets, count, difficulty, now)
	return b.shuffleByPriority(queue), nil
}

// assemble runs the interleaving loop: per iteration it decides new-vs-review
// (stage 1), picks a category with the floor-weighted roll (stage 2), then
// picks a form with anti-repetition fallback (stage 3). The loop consumes
// one form per iteration, so it terminates after at most count picks or when
// every bucket is empty.
func (b *Builder) assemble(domain grammar.Domain, bucketMap map[string]*bucket, count int, difficulty map[string]float64, now time.Time) []Item {
	keys := make([]string, 0, len(bucketMap))
	for k := range bucketMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buckets := make([]*bucket, len(keys))
	for i, k := range keys {
		buckets[i] = bucketMap[k]
	}

	reviewsSinceLastNew := 0
	nextNewInterval := b.rollNewInterval()
	var last lastPlaced
	queue := make([]Item, 0, count)

	for len(queue) < count {
		totalUntried, totalDue := 0, 0
		for _, bk := range buckets {
			totalUntried += len(bk.untried)
			totalDue += len(bk.due)
		}
		if totalUntried == 0 && totalDue == 0 {
			break
		}

		wantNew := reviewsSinceLastNew >= nextNewInterval && totalUntried > 0
		if totalDue == 0 {
			wantNew = true
		}

		var item Item
		if wantNew {
			bk := selectCategory(b.rng, buckets, func(bk *bucket) int { return len(bk.untried) })
			f, ok := pickUntried(b.rng, bk, last)
			if !ok {
				break
			}
			item = Item{
				FormID:   f.id,
				Domain:   domain,
				LemmaID:  f.lemmaID,
				Combo:    f.combo,
				Source:   SourceNewForm,
				Priority: newFormPriority(f.combo, difficulty, now),
			}
			reviewsSinceLastNew = 0
			nextNewInterval = b.rollNewInterval()
		} else {
			bk := selectCategory(b.rng, buckets, func(bk *bucket) int { return len(bk.due) })
			f, ok := pickDue(bk, last)
			if !ok {
				break
			}
			src := SourceDueForReview
			if _, hard := difficulty[f.combo]; hard {
				src = SourceDifficultCombo
			}
			item = Item{
				FormID:       f.rec.FormID,
				Domain:       domain,
				LemmaID:      f.lemmaID,
				Combo:        f.combo,
				Source:       src,
				Priority:     f.priority,
				MasteryLevel: f.rec.MasteryLevel,
			}
			reviewsSinceLastNew++
		}

		queue = append(queue, item)
		last = lastPlaced{lemmaID: item.LemmaID, combo: item.Combo, valid: true}
	}
	return queue
}

// newFormPriority scores a never-practiced form: the full low-mastery term
// plus any hard-combination bonus, with no overdue component.
func newFormPriority(combo string, difficulty map[string]float64, now time.Time) float64 {
	return PriorityScore(store.FormReview{NextDue: now}, combo, difficulty, now)
}

// rollNewInterval draws how many reviews to place before the next new form.
func (b *Builder) rollNewInterval() int {
	return minNewInterval + b.rng.Intn(maxNewInterval-minNewInterval+1)
}
