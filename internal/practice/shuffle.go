package practice

// Priority tier boundaries for the final shuffle.
const (
	tierHighMin   = 0.7
	tierMediumMin = 0.4
)

// shuffleByPriority re-orders the assembled queue into interleaved priority
// tiers: high [0.7, 1.0], medium [0.4, 0.7), low [0, 0.4). Each tier is
// shuffled independently, then the tiers are drained in a repeating
// high-medium-low pattern, falling back to the next non-empty tier when the
// preferred one is exhausted. A final forward pass repairs adjacent
// lemma/combination collisions where an alternative exists; repair is
// best-effort, not guaranteed collision-free.
func (b *Builder) shuffleByPriority(items []Item) []Item {
	if len(items) < 2 {
		return items
	}

	var tiers [3][]Item
	for _, it := range items {
		switch {
		case it.Priority >= tierHighMin:
			tiers[0] = append(tiers[0], it)
		case it.Priority >= tierMediumMin:
			tiers[1] = append(tiers[1], it)
		default:
			tiers[2] = append(tiers[2], it)
		}
	}
	for t := range tiers {
		tier := tiers[t]
		b.rng.Shuffle(len(tier), func(i, j int) {
			tier[i], tier[j] = tier[j], tier[i]
		})
	}

	out := make([]Item, 0, len(items))
	for pos := 0; len(out) < len(items); pos++ {
		preferred := pos % 3
		for offset := 0; offset < 3; offset++ {
			t := (preferred + offset) % 3
			if len(tiers[t]) == 0 {
				continue
			}
			out = append(out, tiers[t][0])
			tiers[t] = tiers[t][1:]
			break
		}
	}

	repairCollisions(out)
	return out
}

// collides reports whether two adjacent items would feel repetitive: same
// lemma or same grammatical combination.
func collides(a, b Item) bool {
	return a.LemmaID == b.LemmaID || a.Combo == b.Combo
}

// repairCollisions walks the queue once; for each item colliding with its
// predecessor it swaps in the nearest later item that collides with neither
// the predecessor nor the displaced item. Collisions with no such candidate
// are left in place.
func repairCollisions(items []Item) {
	for i := 1; i < len(items); i++ {
		if !collides(items[i-1], items[i]) {
			continue
		}
		for j := i + 1; j < len(items); j++ {
			if collides(items[i-1], items[j]) || collides(items[i], items[j]) {
				continue
			}
			items[i], items[j] = items[j], items[i]
			break
		}
	}
}
