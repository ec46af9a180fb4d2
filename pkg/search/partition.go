package search

import (
	"iter"

	"github.com/itohio/rnet/pkg/network"
)

// Partitions yields every partition of n into positive parts, each in
// non-decreasing order, in lexicographic order from [1 1 ... 1] to [n].
// Every yielded partition is a fresh slice. The sequence can be ranged over
// any number of times.
func Partitions(n int) iter.Seq[network.Partition] {
	return func(yield func(network.Partition) bool) {
		if n < 1 {
			return
		}

		parts := make([]int, n)
		for i := range parts {
			parts[i] = 1
		}

		for {
			if !yield(append(network.Partition(nil), parts...)) {
				return
			}
			if len(parts) < 2 {
				return
			}

			// Bump the second to last part and refill the tail with the
			// smallest non-decreasing run that keeps the sum.
			j := len(parts) - 2
			tail := parts[j] + parts[j+1]
			next := parts[j] + 1
			if 2*next > tail {
				next = tail
			}

			parts = append(parts[:j], next)
			rest := tail - next
			if rest > 0 {
				q := rest / next
				for range q - 1 {
					parts = append(parts, next)
				}
				parts = append(parts, rest-next*(q-1))
			}
		}
	}
}

// Bounded yields the partitions of n with at most maxParts parts.
func Bounded(n, maxParts int) iter.Seq[network.Partition] {
	return func(yield func(network.Partition) bool) {
		for p := range Partitions(n) {
			if len(p) > maxParts {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
