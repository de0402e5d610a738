// Package engine partitions a prime search across execution units and
// aggregates their counts. Three interchangeable strategies share one run
// contract — in-process goroutines, an in-process collective peer group,
// and a TCP coordinator with remote workers — and every distributed
// strategy degrades to a plain single-node sieve when it cannot
// initialize.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/primegrid-dev/primegrid/sieve"
)

// ErrUnavailable marks a distribution strategy that could not be
// initialized. The orchestrator treats it as a signal to degrade to the
// single-node path, not as a failed run. Errors after initialization are
// never ErrUnavailable: once a strategy is dispatched, its failures abort
// the run.
var ErrUnavailable = errors.New("strategy unavailable")

// Runner is the contract every strategy engine implements.
type Runner interface {
	Run() (*Result, error)
}

var (
	_ Runner = (*LocalEngine)(nil)
	_ Runner = (*CollectiveEngine)(nil)
	_ Runner = (*SocketEngine)(nil)
)

// Run drives one computation end to end: pick a strategy from the
// configured preference, fall back to the single-node path when a
// distributed strategy is unavailable, and stamp the aggregate with a run
// ID. Either a complete Result is returned or an error; there is no
// partial aggregate.
func Run(cfg Config) (*Result, error) {
	cfg.applyDefaults()

	runID := uuid.NewString()
	logger := log.With().Str("run", runID).Logger()
	logger.Info().
		Uint64("limit", cfg.Limit).
		Int("workers", cfg.Workers).
		Str("strategy", string(cfg.Strategy)).
		Msg("starting run")

	res, err := runStrategy(cfg, logger)
	if err != nil {
		return nil, err
	}
	res.RunID = runID

	logger.Info().
		Int("total", res.TotalPrimes).
		Int("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("run complete")
	return res, nil
}

func runStrategy(cfg Config, logger zerolog.Logger) (*Result, error) {
	switch cfg.Strategy {
	case StrategySingle:
		return SingleNode(cfg.Limit), nil

	case StrategyLocal:
		eng, err := NewLocal(cfg)
		if err != nil {
			return nil, err
		}
		return eng.Run()

	case StrategySocket:
		eng, err := NewSocket(cfg)
		if errors.Is(err, ErrUnavailable) {
			logger.Warn().Err(err).Msg("socket strategy unavailable, degrading to single node")
			return SingleNode(cfg.Limit), nil
		}
		if err != nil {
			return nil, err
		}
		return eng.Run()

	case StrategyAuto, StrategyCollective:
		eng, err := NewCollective(cfg)
		if errors.Is(err, ErrUnavailable) {
			logger.Warn().Err(err).Msg("collective strategy unavailable, degrading to single node")
			return SingleNode(cfg.Limit), nil
		}
		if err != nil {
			return nil, err
		}
		return eng.Run()

	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
}

// SingleNode computes the whole range with one full sieve — no
// partitioning, no base-prime split. It cannot fail and needs no
// distribution mechanism, so it is the floor every other strategy degrades
// to.
func SingleNode(limit uint64) *Result {
	start := time.Now()
	primes := sieve.Simple(limit)
	stats := sieve.Summarize(primes, limit)

	return &Result{
		TotalPrimes: stats.Count,
		Nodes:       1,
		Elapsed:     time.Since(start),
		NodeCounts:  []int{stats.Count},
		Largest:     stats.Largest,
		Density:     stats.Density,
		Fingerprint: Fingerprint64(primes),
	}
}
