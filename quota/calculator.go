package quota

import (
	"math"
	"sort"
)

// Rounding selects how the mean of the kept scores becomes an integer quota.
type Rounding int

const (
	// RoundCeiling rounds up to the next whole number. Club standard.
	RoundCeiling Rounding = iota
	// RoundNearest rounds half away from zero. Kept selectable because some
	// deployed revisions of the old tool used it.
	RoundNearest
)

// Divisor selects what the kept scores are averaged over.
type Divisor int

const (
	// DivisorSelected divides by however many scores were actually kept.
	DivisorSelected Divisor = iota
	// DivisorFixed always divides by Policy.Best, even with fewer scores.
	DivisorFixed
)

// Policy pins down the quota rule. The old tool's revisions disagreed on
// rounding and divisor, so both are explicit here instead of hardcoded.
type Policy struct {
	Window   int // most recent N rounds eligible
	Best     int // top M scores kept from the window
	Rounding Rounding
	Divisor  Divisor
}

// DefaultPolicy is best 6 of the most recent 9, mean over the kept scores,
// rounded up.
func DefaultPolicy() Policy {
	return Policy{Window: 9, Best: 6, Rounding: RoundCeiling, Divisor: DivisorSelected}
}

// CurrentQuota computes a player's current quota from their rounds. With no
// rounds the initial quota is returned unchanged. Recency is by date
// descending; rounds with empty dates count as least recent. The sort is
// stable, so same-date rounds keep their input order.
func CurrentQuota(rounds []Round, initialQuota int, p Policy) int {
	if len(rounds) == 0 {
		return initialQuota
	}

	ordered := make([]Round, len(rounds))
	copy(ordered, rounds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return laterDate(ordered[i].Date, ordered[j].Date)
	})

	window := ordered
	if p.Window > 0 && len(window) > p.Window {
		window = window[:p.Window]
	}

	scores := make([]float64, len(window))
	for i, r := range window {
		scores[i] = r.Score
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i] > scores[j] })
	if p.Best > 0 && len(scores) > p.Best {
		scores = scores[:p.Best]
	}
	if len(scores) == 0 {
		return initialQuota
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	divisor := float64(len(scores))
	if p.Divisor == DivisorFixed && p.Best > 0 {
		divisor = float64(p.Best)
	}
	mean := sum / divisor

	if p.Rounding == RoundNearest {
		return int(math.Round(mean))
	}
	return int(math.Ceil(mean))
}

// BestOfRecent returns the window of most recent scores and the kept best
// subset, in the order the calculator would use them. The lookup page shows
// this breakdown so members can see which rounds made their quota.
func BestOfRecent(rounds []Round, p Policy) (recent []float64, best []float64) {
	if len(rounds) == 0 {
		return nil, nil
	}
	ordered := make([]Round, len(rounds))
	copy(ordered, rounds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return laterDate(ordered[i].Date, ordered[j].Date)
	})
	if p.Window > 0 && len(ordered) > p.Window {
		ordered = ordered[:p.Window]
	}
	recent = make([]float64, len(ordered))
	for i, r := range ordered {
		recent[i] = r.Score
	}
	best = make([]float64, len(recent))
	copy(best, recent)
	sort.SliceStable(best, func(i, j int) bool { return best[i] > best[j] })
	if p.Best > 0 && len(best) > p.Best {
		best = best[:p.Best]
	}
	return recent, best
}

// laterDate orders ISO dates descending with empty dates last. ISO strings
// compare correctly as plain strings.
func laterDate(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return a > b
}
