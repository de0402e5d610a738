package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/primegrid-dev/primegrid/partition"
	"github.com/primegrid-dev/primegrid/sieve"
)

// LocalEngine runs every worker as a goroutine in this process. Workers
// share the base primes read-only and never touch each other's ranges, so
// the only synchronization is the write of each finished segment into its
// result slot, plus the final join.
type LocalEngine struct {
	Limit   uint64
	Workers int

	mu     sync.Mutex
	slots  [][]uint64
	primes []uint64
}

// NewLocal validates the configuration for the in-process strategy.
func NewLocal(cfg Config) (*LocalEngine, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("local strategy needs at least one worker, got %d", cfg.Workers)
	}
	return &LocalEngine{Limit: cfg.Limit, Workers: cfg.Workers}, nil
}

// Run computes the base primes, fans the remaining range out across worker
// goroutines, joins them all, and merges the per-worker segments in worker
// order. A failed worker fails the whole run; there is no partial result.
func (e *LocalEngine) Run() (*Result, error) {
	start := time.Now()

	if e.Limit < 2 {
		return &Result{
			Nodes:      e.Workers,
			Elapsed:    time.Since(start),
			NodeCounts: make([]int, e.Workers),
		}, nil
	}

	basePrimeLimit := sieve.Isqrt(e.Limit)
	basePrimes := sieve.Simple(basePrimeLimit)

	e.slots = make([][]uint64, e.Workers)
	ranges := partition.Plan(e.Limit, basePrimeLimit, e.Workers)

	var g errgroup.Group
	for id, r := range ranges {
		id, r := id, r
		if r.Empty() {
			continue
		}
		g.Go(func() error {
			segment := sieve.Segment(r.Low, r.High, basePrimes)

			e.mu.Lock()
			e.slots[id] = segment
			e.mu.Unlock()

			log.Debug().
				Int("worker", id).
				Uint64("low", r.Low).
				Uint64("high", r.High).
				Int("primes", len(segment)).
				Msg("segment sieved")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make([]int, e.Workers)
	e.primes = append([]uint64(nil), basePrimes...)
	for id, segment := range e.slots {
		counts[id] = len(segment)
		e.primes = append(e.primes, segment...)
	}

	stats := sieve.Summarize(e.primes, e.Limit)
	return &Result{
		TotalPrimes:    stats.Count,
		Nodes:          e.Workers,
		Elapsed:        time.Since(start),
		NodeCounts:     counts,
		BasePrimeCount: len(basePrimes),
		Largest:        stats.Largest,
		Density:        stats.Density,
		Fingerprint:    Fingerprint64(e.primes),
	}, nil
}

// Primes returns the merged ordered prime sequence from the last Run.
func (e *LocalEngine) Primes() []uint64 {
	return e.primes
}
