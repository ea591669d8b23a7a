package generator

import (
	"fmt"
	"math/rand"
	"time"
)

// NewRand builds the single pseudorandom sequence shared by every stage of
// a run. Stage execution order and the draw order inside each stage are
// part of the observable contract: identical seed and configuration yield
// byte-identical output.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Choice returns a uniformly drawn element of outcomes.
func Choice[T any](r *rand.Rand, outcomes []T) T {
	if len(outcomes) == 0 {
		panic("generator: Choice on empty outcome set")
	}
	return outcomes[r.Intn(len(outcomes))]
}

// WeightedChoice draws one outcome with probability proportional to its
// weight. Outcome and weight vectors must align; configuration validation
// guarantees non-empty vocabularies, so a violation here is a programming
// error and panics.
func WeightedChoice[T any](r *rand.Rand, outcomes []T, weights []float64) T {
	if len(outcomes) == 0 {
		panic("generator: WeightedChoice on empty outcome set")
	}
	if len(outcomes) != len(weights) {
		panic(fmt.Sprintf("generator: WeightedChoice outcome/weight mismatch (%d vs %d)", len(outcomes), len(weights)))
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic("generator: WeightedChoice weights sum to zero")
	}

	target := r.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return outcomes[i]
		}
	}
	// Float accumulation can leave target at exactly zero.
	return outcomes[len(outcomes)-1]
}

func uniformWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// intBetween returns a uniform integer in [min, max], both inclusive.
func intBetween(r *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// floatBetween returns a uniform float in [min, max).
func floatBetween(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// dateBetween returns a uniform calendar date (midnight UTC) in
// [start, end], both inclusive.
func dateBetween(r *rand.Rand, start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, r.Intn(days+1))
}

// timeBetween returns a uniform instant in [start, end) with one-second
// granularity.
func timeBetween(r *rand.Rand, start, end time.Time) time.Time {
	secs := int64(end.Sub(start).Seconds())
	if secs <= 0 {
		return start
	}
	return start.Add(time.Duration(r.Int63n(secs)) * time.Second)
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
