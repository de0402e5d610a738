// Package sieve implements the two halves of a segmented Sieve of
// Eratosthenes: a plain full-range sieve for finding base primes, and a
// windowed sieve that marks a segment using only those base primes.
package sieve

import "math"

// Simple computes all primes up to limit (inclusive) with the classic
// Sieve of Eratosthenes. A limit below 2 yields no primes.
func Simple(limit uint64) []uint64 {
	if limit < 2 {
		return nil
	}

	isPrime := make([]bool, limit+1)
	for i := range isPrime {
		isPrime[i] = true
	}
	isPrime[0] = false
	isPrime[1] = false

	sqrtLimit := Isqrt(limit)
	for num := uint64(2); num <= sqrtLimit; num++ {
		if isPrime[num] {
			// Multiples below num*num were already marked by smaller primes.
			for multiple := num * num; multiple <= limit; multiple += num {
				isPrime[multiple] = false
			}
		}
	}

	var primes []uint64
	for n, ok := range isPrime {
		if ok {
			primes = append(primes, uint64(n))
		}
	}
	return primes
}

// Segment computes all primes in [low, high] using base primes that cover
// at least Isqrt(high). Index i of the local sieve represents the value
// low+i, so the working set is sized to the segment, not the full limit.
// The function is pure and safe to run concurrently on disjoint ranges.
func Segment(low, high uint64, basePrimes []uint64) []uint64 {
	if low > high {
		return nil
	}

	isPrime := make([]bool, high-low+1)
	for i := range isPrime {
		isPrime[i] = true
	}
	if low == 0 {
		isPrime[0] = false
	}
	if low <= 1 && high >= 1 {
		isPrime[1-low] = false
	}

	for _, p := range basePrimes {
		// A prime whose square is past the segment marks nothing new.
		if p*p > high {
			continue
		}

		start := p * p
		if low > start {
			// First multiple of p at or above low.
			if rem := low % p; rem == 0 {
				start = low
			} else {
				start = low + (p - rem)
			}
		}

		for multiple := start; multiple <= high; multiple += p {
			isPrime[multiple-low] = false
		}
	}

	var primes []uint64
	for i, ok := range isPrime {
		if !ok {
			continue
		}
		if n := low + uint64(i); n > 1 {
			primes = append(primes, n)
		}
	}
	return primes
}

// Isqrt returns the integer square root of n: the largest s with s*s <= n.
func Isqrt(n uint64) uint64 {
	s := uint64(math.Sqrt(float64(n)))
	for s > 0 && s*s > n {
		s--
	}
	for (s+1)*(s+1) <= n {
		s++
	}
	return s
}

// Stats summarizes a computed prime sequence.
type Stats struct {
	Count   int
	Largest uint64
	Density float64
}

// Summarize reports count, largest prime, and density relative to the
// searched range. The prime slice must be in ascending order.
func Summarize(primes []uint64, limit uint64) Stats {
	s := Stats{Count: len(primes)}
	if len(primes) > 0 {
		s.Largest = primes[len(primes)-1]
	}
	if limit > 0 {
		s.Density = float64(len(primes)) / float64(limit)
	}
	return s
}
