package engine

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/dgryski/go-farm"
	"github.com/shamaton/msgpack/v2"
)

// Result is the aggregate outcome of one run. The counting invariant holds
// for every strategy: TotalPrimes = BasePrimeCount + sum(NodeCounts). The
// single-node path reports its one full sieve as node 0 with no base-prime
// split.
type Result struct {
	RunID          string
	TotalPrimes    int
	Nodes          int
	Elapsed        time.Duration
	NodeCounts     []int
	BasePrimeCount int

	// Largest and Density describe the found primes. Like Fingerprint they
	// are only set by strategies that materialize the full sequence.
	Largest uint64
	Density float64

	// Fingerprint identifies the complete ordered prime sequence. Count-only
	// strategies (collective, socket) leave it zero.
	Fingerprint uint64
}

// SegmentTotal sums the per-node counts, excluding base primes.
func (r *Result) SegmentTotal() int {
	total := 0
	for _, c := range r.NodeCounts {
		total += c
	}
	return total
}

// Serialize writes the result in msgpack form for downstream tooling.
func (r *Result) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, r)
}

// Deserialize reads a result previously written by Serialize.
func (r *Result) Deserialize(rd io.Reader) error {
	return msgpack.UnmarshalRead(rd, r)
}

// Fingerprint64 hashes an ordered prime sequence to a stable 64-bit
// identity, used to verify that different strategies and worker counts
// produced the same sequence.
func Fingerprint64(primes []uint64) uint64 {
	buf := make([]byte, 8*len(primes))
	for i, p := range primes {
		binary.LittleEndian.PutUint64(buf[i*8:], p)
	}
	return farm.Fingerprint64(buf)
}
