// Package sampler picks records without replacement using a partial
// Fisher-Yates shuffle over the tail of a slice.
package sampler

import "errors"

// ErrInvalidPickCount is returned when the pick count is negative or larger
// than the number of records available.
var ErrInvalidPickCount = errors.New("invalid pick count")

// Sample draws k elements of seq without replacement and returns them in a
// randomized order.
//
// seq is permuted in place: after the call its last k positions hold the
// chosen elements, and the returned slice is exactly that tail. The result
// aliases seq, with its capacity clipped so appending to it cannot overwrite
// the rest of seq.
//
// k must satisfy 0 <= k <= len(seq). Otherwise ErrInvalidPickCount is
// returned and seq is left untouched.
func Sample[T any](src Source, seq []T, k int) ([]T, error) {
	n := len(seq)
	if k < 0 || k > n {
		return nil, ErrInvalidPickCount
	}

	for i := n - 1; i >= n-k; i-- {
		// Every position in [0, i] is still unpicked, including i itself.
		r := src.Intn(i + 1)
		seq[i], seq[r] = seq[r], seq[i]
	}
	return seq[n-k : n : n], nil
}
