package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/primegrid-dev/primegrid/partition"
	"github.com/primegrid-dev/primegrid/sieve"
)

// CollectiveEngine runs one peer goroutine per rank. Every rank recomputes
// the base primes locally — they are cheap and deterministic, so no
// broadcast is needed — and sieves the range it derives from its own rank.
// Only counts cross rank boundaries, in the final gather into rank 0.
type CollectiveEngine struct {
	Limit uint64
	group *Group
}

// NewCollective forms the peer group for the collective strategy.
func NewCollective(cfg Config) (*CollectiveEngine, error) {
	group, err := NewGroup(cfg.Workers)
	if err != nil {
		return nil, err
	}
	return &CollectiveEngine{Limit: cfg.Limit, group: group}, nil
}

// Run starts all ranks, waits for the group to finish, and returns rank 0's
// aggregate. The gather is an implicit barrier, so by the time rank 0 has a
// result every other rank has finished its segment.
func (e *CollectiveEngine) Run() (*Result, error) {
	start := time.Now()

	results := make(chan *Result, 1)
	var wg sync.WaitGroup
	for rank := 0; rank < e.group.Size(); rank++ {
		rank := rank
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res := e.peerMain(rank); res != nil {
				results <- res
			}
		}()
	}
	wg.Wait()
	close(results)

	res := <-results
	if res == nil {
		return nil, fmt.Errorf("collective run produced no root result")
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// peerMain is the body every rank executes. Only rank 0 returns a Result.
func (e *CollectiveEngine) peerMain(rank int) *Result {
	basePrimeLimit := sieve.Isqrt(e.Limit)
	basePrimes := sieve.Simple(basePrimeLimit)

	ranges := partition.Plan(e.Limit, basePrimeLimit, e.group.Size())
	r := ranges[rank]

	var local []uint64
	if !r.Empty() {
		local = sieve.Segment(r.Low, r.High, basePrimes)
	}
	log.Debug().
		Int("rank", rank).
		Uint64("low", r.Low).
		Uint64("high", r.High).
		Int("primes", len(local)).
		Msg("rank finished segment")

	counts := e.group.GatherIntoRoot(rank, len(local))
	if rank != 0 {
		return nil
	}

	total := len(basePrimes)
	for _, c := range counts {
		total += c
	}
	return &Result{
		TotalPrimes:    total,
		Nodes:          e.group.Size(),
		NodeCounts:     counts,
		BasePrimeCount: len(basePrimes),
	}
}
