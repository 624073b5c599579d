package sampler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroSource always draws the lower bound.
type zeroSource struct{}

func (zeroSource) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}
	return 0
}

// upperSource always draws n-1, so every swap is a no-op.
type upperSource struct{}

func (upperSource) Intn(n int) int { return n - 1 }

// scriptedSource replays a fixed list of draws and records the bounds it saw.
type scriptedSource struct {
	draws  []int
	bounds []int
}

func (s *scriptedSource) Intn(n int) int {
	s.bounds = append(s.bounds, n)
	d := s.draws[0]
	s.draws = s.draws[1:]
	return d
}

func letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

func TestSampleZeroSourceTrace(t *testing.T) {
	seq := []string{"A", "B", "C", "D", "E"}

	got, err := Sample(zeroSource{}, seq, 2)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"E", "A"}, got); diff != "" {
		t.Errorf("Sample() result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"D", "B", "C", "E", "A"}, seq); diff != "" {
		t.Errorf("Sample() final sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleUpperSourceKeepsOrder(t *testing.T) {
	seq := letters(5)

	got, err := Sample(upperSource{}, seq, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"D", "E"}, got)
	assert.Equal(t, letters(5), seq)
}

func TestSampleDrawBounds(t *testing.T) {
	src := &scriptedSource{draws: []int{1, 3, 0}}
	seq := letters(6)

	got, err := Sample(src, seq, 3)
	require.NoError(t, err)

	// i walks 5, 4, 3 and each draw covers [0, i].
	assert.Equal(t, []int{6, 5, 4}, src.bounds)
	// i=5 swap(5,1): A F C D E B
	// i=4 swap(4,3): A F C E D B
	// i=3 swap(3,0): E F C A D B
	assert.Equal(t, []string{"E", "F", "C", "A", "D", "B"}, seq)
	assert.Equal(t, []string{"A", "D", "B"}, got)
}

func TestSampleResultIsTailOfInput(t *testing.T) {
	seq := make([]string, 7, 10)
	copy(seq, letters(7))

	got, err := Sample(NewSource(42), seq, 3)
	require.NoError(t, err)

	assert.Equal(t, seq[4:], got)
	assert.Equal(t, len(got), cap(got))

	got = append(got, "Z")
	assert.Len(t, got, 4)
	assert.Equal(t, "", seq[:cap(seq)][7], "append must not write into the spare capacity of the input")
}

func TestSampleProperties(t *testing.T) {
	src := NewSource(7)

	for n := 0; n <= 8; n++ {
		for k := 0; k <= n; k++ {
			original := letters(n)
			seq := letters(n)

			got, err := Sample(src, seq, k)
			require.NoError(t, err, "n=%d k=%d", n, k)
			require.Len(t, got, k, "n=%d k=%d", n, k)

			seen := make(map[string]bool, k)
			for _, v := range got {
				assert.False(t, seen[v], "duplicate %q for n=%d k=%d", v, n, k)
				seen[v] = true
				assert.Contains(t, original, v)
			}

			// The input is only ever permuted.
			assert.ElementsMatch(t, original, seq, "n=%d k=%d", n, k)

			if k == n {
				assert.ElementsMatch(t, original, got, "n=%d k=%d", n, k)
			}
		}
	}
}

func TestSampleBoundaries(t *testing.T) {
	t.Run("single element", func(t *testing.T) {
		got, err := Sample(NewSource(1), []string{"A"}, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := Sample(zeroSource{}, []string{}, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("nil input", func(t *testing.T) {
		got, err := Sample[int](zeroSource{}, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("zero picks leaves input untouched", func(t *testing.T) {
		seq := letters(4)
		got, err := Sample(zeroSource{}, seq, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, letters(4), seq)
	})
}

func TestSampleInvalidPickCount(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int
	}{
		{name: "more picks than records", n: 3, k: 4},
		{name: "picks from empty input", n: 0, k: 1},
		{name: "negative picks", n: 3, k: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := letters(tt.n)

			got, err := Sample(zeroSource{}, seq, tt.k)

			assert.ErrorIs(t, err, ErrInvalidPickCount)
			assert.Nil(t, got)
			assert.Equal(t, letters(tt.n), seq)
		})
	}
}

func TestSampleDistribution(t *testing.T) {
	const (
		trials = 20000
		n      = 5
		k      = 2
	)
	src := NewSource(2024)
	counts := make(map[string]int, n)

	for i := 0; i < trials; i++ {
		got, err := Sample(src, letters(n), k)
		require.NoError(t, err)
		for _, v := range got {
			counts[v]++
		}
	}

	expected := float64(trials) * k / n
	for _, v := range letters(n) {
		assert.InDelta(t, expected, float64(counts[v]), expected*0.05, "element %s", v)
	}
}
