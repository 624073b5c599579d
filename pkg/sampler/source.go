package sampler

import (
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/mathext/prng"
)

// Source yields uniformly distributed integers. It does not need to be
// cryptographically secure.
type Source interface {
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
}

type mtSource struct {
	lock sync.Mutex
	rng  *prng.MT19937_64
}

// NewSource returns a Source backed by a 64-bit Mersenne Twister seeded with
// seed. Identical seeds produce identical draw sequences. The returned Source
// is safe for concurrent use.
func NewSource(seed uint64) Source {
	rng := prng.NewMT19937_64()
	rng.Seed(seed)
	return &mtSource{rng: rng}
}

// NewTimeSeededSource returns a Source seeded from the wall clock.
func NewTimeSeededSource() Source {
	return NewSource(uint64(time.Now().UnixNano()))
}

func (s *mtSource) Intn(n int) int {
	if n <= 0 {
		panic("sampler: invalid argument to Intn")
	}
	return int(s.uint64Inclusive(uint64(n - 1)))
}

// Float64 returns a value in [0, 1).
func (s *mtSource) Float64() float64 {
	// 53 random bits fill the mantissa exactly.
	return float64(s.uint64()>>11) / (1 << 53)
}

// uint64Inclusive returns a value in [0, n] without modulo bias.
func (s *mtSource) uint64Inclusive(n uint64) uint64 {
	switch {
	// n+1 is a power of two, so masking is exact.
	case n&(n+1) == 0:
		return s.uint64() & n

	case n > math.MaxInt64:
		v := s.uint64()
		for v > n {
			v = s.uint64()
		}
		return v

	// Reject draws from the incomplete last bucket of [0, MaxInt64].
	default:
		maximum := uint64((1<<63)-1) - uint64((1<<63)%(n+1))
		v := s.uint64() & math.MaxInt64
		for v > maximum {
			v = s.uint64() & math.MaxInt64
		}
		return v % (n + 1)
	}
}

func (s *mtSource) uint64() uint64 {
	s.lock.Lock()
	v := s.rng.Uint64()
	s.lock.Unlock()
	return v
}

// Float64 returns a value in [0, 1) drawn from src. Sources that expose their
// own Float64 are used directly; others fall back to a 53-bit Intn draw.
func Float64(src Source) float64 {
	if f, ok := src.(interface{ Float64() float64 }); ok {
		return f.Float64()
	}
	return float64(src.Intn(1<<53)) / (1 << 53)
}
