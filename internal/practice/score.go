package practice

import (
	"math"
	"time"

	"palipractice/internal/store"
)

// Priority score weights. The three terms are independently bounded and
// additive; the sum is clamped to 1.0.
const (
	overduePerDay   = 0.1
	overdueCap      = 0.3
	perMissingLevel = 0.05
	maxMasteryLevel = 10
	hardComboWeight = 0.3
)

// PriorityScore computes the urgency of a due form in [0, 1]. It is a pure
// function of its inputs:
//
//   - overdue term: 0.1 per day past due, saturating at 0.3
//   - low-mastery term: 0.05 per level below 10, never negative
//   - hard-combination term: 0.3 x recorded combo difficulty, 0 if none
func PriorityScore(rec store.FormReview, combo string, difficulty map[string]float64, now time.Time) float64 {
	var overdue float64
	if days := now.Sub(rec.NextDue).Hours() / 24.0; days > 0 {
		overdue = math.Min(overdueCap, days*overduePerDay)
	}

	missing := float64(maxMasteryLevel - rec.MasteryLevel)
	if missing < 0 {
		missing = 0
	}
	lowMastery := missing * perMissingLevel

	var hard float64
	if d, ok := difficulty[combo]; ok {
		hard = d * hardComboWeight
	}

	return math.Min(1.0, overdue+lowMastery+hard)
}
