package questions_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/examprep/internal/questions"
)

func TestShuffle_IsPermutation(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f", "g"}
	orig := append([]string(nil), in...)

	out := questions.Shuffle(in, rand.New(rand.NewSource(7)))

	assert.Equal(t, orig, in, "input must not be modified")
	require.Len(t, out, len(in))
	sorted := append([]string(nil), out...)
	sort.Strings(sorted)
	assert.Equal(t, orig, sorted)
}

func TestShuffle_Empty(t *testing.T) {
	assert.Empty(t, questions.Shuffle([]int{}, nil))
	assert.Empty(t, questions.Shuffle[int](nil, nil))
}

func TestShuffle_UniformPositions(t *testing.T) {
	const (
		n       = 5
		samples = 50000
	)
	r := rand.New(rand.NewSource(42))
	in := []int{0, 1, 2, 3, 4}

	var counts [n][n]int
	for s := 0; s < samples; s++ {
		for pos, v := range questions.Shuffle(in, r) {
			counts[v][pos]++
		}
	}

	// Expected 10000 per cell; 5% tolerance is far outside sampling noise.
	expected := float64(samples) / n
	for v := 0; v < n; v++ {
		for pos := 0; pos < n; pos++ {
			assert.InEpsilon(t, expected, float64(counts[v][pos]), 0.05, "element %d at position %d", v, pos)
		}
	}
}

func TestShuffle_AllPermutationsEquallyLikely(t *testing.T) {
	const samples = 60000
	r := rand.New(rand.NewSource(99))
	in := []string{"x", "y", "z"}

	seen := map[string]int{}
	for s := 0; s < samples; s++ {
		out := questions.Shuffle(in, r)
		seen[out[0]+out[1]+out[2]]++
	}
	require.Len(t, seen, 6)
	for perm, c := range seen {
		assert.InEpsilon(t, samples/6, c, 0.05, "permutation %s", perm)
	}
}

func TestShuffleWithLimit(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	r := rand.New(rand.NewSource(1))

	assert.Len(t, questions.ShuffleWithLimit(in, 3, r), 3)
	assert.Len(t, questions.ShuffleWithLimit(in, 0, r), 5)
	assert.Len(t, questions.ShuffleWithLimit(in, 50, r), 5)
}
