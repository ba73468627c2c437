package questions

import (
	"math/rand"
	"time"
)

// NewRand returns a generator seeded from the clock.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle returns a uniformly random permutation of items using
// Fisher-Yates on a copy. The input slice is left untouched.
func Shuffle[T any](items []T, r *rand.Rand) []T {
	if r == nil {
		r = NewRand()
	}
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// ShuffleWithLimit shuffles items and keeps at most limit of them.
// A limit of zero or less keeps everything.
func ShuffleWithLimit[T any](items []T, limit int, r *rand.Rand) []T {
	shuffled := Shuffle(items, r)
	if limit <= 0 || limit > len(shuffled) {
		limit = len(shuffled)
	}
	return shuffled[:limit]
}
