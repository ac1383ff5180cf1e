package practice

import (
	"math"
	"math/rand"
)

// lastPlaced carries the anti-repetition context between assembler
// iterations: the lemma and combination of the most recently placed item.
type lastPlaced struct {
	lemmaID int
	combo   string
	valid   bool
}

func (l lastPlaced) sameLemma(lemmaID int) bool { return l.valid && l.lemmaID == lemmaID }
func (l lastPlaced) sameCombo(combo string) bool { return l.valid && l.combo == combo }

// selectCategory performs a weighted-random pick among buckets. Buckets with
// zero weight are excluded from the roll entirely; the rest are lifted to a
// floor weight of ceil(total x floorRatio) so rare categories keep a
// non-trivial minimum probability. Callers pass buckets in a deterministic
// order so a fixed seed yields a fixed pick.
func selectCategory(rng *rand.Rand, buckets []*bucket, weight func(*bucket) int) *bucket {
	type weighted struct {
		bk *bucket
		w  int
	}
	var (
		candidates []weighted
		total      int
	)
	for _, bk := range buckets {
		w := weight(bk)
		if w <= 0 {
			continue
		}
		candidates = append(candidates, weighted{bk: bk, w: w})
		total += w
	}
	if len(candidates) == 0 {
		return nil
	}

	floor := int(math.Ceil(float64(total) * floorRatio))
	if floor < 1 {
		floor = 1
	}

	lifted := 0
	for i := range candidates {
		if candidates[i].w < floor {
			candidates[i].w = floor
		}
		lifted += candidates[i].w
	}

	roll := rng.Intn(lifted)
	for _, c := range candidates {
		roll -= c.w
		if roll < 0 {
			return c.bk
		}
	}
	return candidates[len(candidates)-1].bk
}

// pickUntried selects a new form from the bucket, removing it by index.
// Preference order: a candidate differing from the previous item in both
// lemma and combination; failing that, in either; failing that, any
// candidate. Within the chosen tier the pick is uniformly random.
func pickUntried(rng *rand.Rand, bk *bucket, last lastPlaced) (untriedForm, bool) {
	if len(bk.untried) == 0 {
		return untriedForm{}, false
	}

	pickFrom := func(keep func(untriedForm) bool) (untriedForm, bool) {
		var idxs []int
		for i, f := range bk.untried {
			if keep(f) {
				idxs = append(idxs, i)
			}
		}
		if len(idxs) == 0 {
			return untriedForm{}, false
		}
		i := idxs[rng.Intn(len(idxs))]
		f := bk.untried[i]
		bk.untried = append(bk.untried[:i], bk.untried[i+1:]...)
		return f, true
	}

	if f, ok := pickFrom(func(f untriedForm) bool {
		return !last.sameLemma(f.lemmaID) && !last.sameCombo(f.combo)
	}); ok {
		return f, true
	}
	if f, ok := pickFrom(func(f untriedForm) bool {
		return !last.sameLemma(f.lemmaID) || !last.sameCombo(f.combo)
	}); ok {
		return f, true
	}
	return pickFrom(func(untriedForm) bool { return true })
}

// pickDue selects a review from the bucket, removing it by index. The due
// list is kept in descending priority order, so scanning front to back finds
// the highest-priority candidate satisfying each repetition-avoidance tier:
// first a candidate differing in both lemma and combination, then in either,
// then the head of the list. Skipped candidates remain available for later
// turns.
func pickDue(bk *bucket, last lastPlaced) (dueForm, bool) {
	if len(bk.due) == 0 {
		return dueForm{}, false
	}

	take := func(i int) dueForm {
		f := bk.due[i]
		bk.due = append(bk.due[:i], bk.due[i+1:]...)
		return f
	}

	for i, f := range bk.due {
		if !last.sameLemma(f.lemmaID) && !last.sameCombo(f.combo) {
			return take(i), true
		}
	}
	for i, f := range bk.due {
		if !last.sameLemma(f.lemmaID) || !last.sameCombo(f.combo) {
			return take(i), true
		}
	}
	return take(0), true
}
