package engine

import (
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/primegrid-dev/primegrid/partition"
	"github.com/primegrid-dev/primegrid/sieve"
)

// SocketEngine is the coordinator side of the point-to-point strategy. It
// owns the listener; workers are separately started processes that dial in
// (see RunWorker) — connecting is their responsibility, not the engine's.
type SocketEngine struct {
	Limit   uint64
	Workers int

	listener net.Listener
}

// NewSocket binds the coordinator listener. A bind failure means the
// strategy is unavailable on this host, not that the run failed.
func NewSocket(cfg Config) (*SocketEngine, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: socket strategy needs at least one worker, got %d", ErrUnavailable, cfg.Workers)
	}
	l, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("%w: bind %s: %v", ErrUnavailable, cfg.Addr, err)
	}
	return &SocketEngine{Limit: cfg.Limit, Workers: cfg.Workers, listener: l}, nil
}

// Addr returns the coordinator's bound address.
func (e *SocketEngine) Addr() string {
	return e.listener.Addr().String()
}

// Run blocks until all expected workers have connected, ships each one its
// share, sieves the coordinator's own share, then collects one count per
// connection in connection order. A missing worker stalls the run
// indefinitely; a transport error aborts it. Neither is retried.
func (e *SocketEngine) Run() (*Result, error) {
	defer e.listener.Close()
	start := time.Now()

	log.Info().Str("addr", e.Addr()).Int("workers", e.Workers).Msg("coordinator waiting for workers")

	conns := make([]net.Conn, 0, e.Workers)
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()
	for i := 0; i < e.Workers; i++ {
		conn, err := e.listener.Accept()
		if err != nil {
			return nil, fmt.Errorf("accepting worker %d: %w", i+1, err)
		}
		log.Info().Int("worker", i+1).Str("remote", conn.RemoteAddr().String()).Msg("worker connected")
		conns = append(conns, conn)
	}

	basePrimeLimit := sieve.Isqrt(e.Limit)
	basePrimes := sieve.Simple(basePrimeLimit)

	// The coordinator takes share 0; workers take shares 1..N.
	nodes := e.Workers + 1
	ranges := partition.Plan(e.Limit, basePrimeLimit, nodes)

	for i, conn := range conns {
		r := ranges[i+1]
		if err := writeWork(conn, r.Low, r.High, basePrimes); err != nil {
			return nil, fmt.Errorf("dispatching to worker %d: %w", i+1, err)
		}
	}

	own := ranges[0]
	var ownPrimes []uint64
	if !own.Empty() {
		ownPrimes = sieve.Segment(own.Low, own.High, basePrimes)
	}
	log.Debug().Uint64("low", own.Low).Uint64("high", own.High).Int("primes", len(ownPrimes)).Msg("coordinator share sieved")

	counts := make([]int, 0, nodes)
	counts = append(counts, len(ownPrimes))
	for i, conn := range conns {
		count, err := readCount(conn)
		if err != nil {
			return nil, fmt.Errorf("collecting from worker %d: %w", i+1, err)
		}
		counts = append(counts, count)
	}

	total := len(basePrimes)
	for _, c := range counts {
		total += c
	}
	return &Result{
		TotalPrimes:    total,
		Nodes:          nodes,
		Elapsed:        time.Since(start),
		NodeCounts:     counts,
		BasePrimeCount: len(basePrimes),
	}, nil
}

// RunWorker connects to the coordinator, sieves the one share it is sent,
// reports the count, and returns. A worker never loops, retries, or
// reconnects; a dropped connection is fatal.
func RunWorker(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to coordinator %s: %w", addr, err)
	}
	defer conn.Close()

	low, high, basePrimes, err := readWork(conn)
	if err != nil {
		return err
	}

	primes := sieve.Segment(low, high, basePrimes)
	log.Info().Uint64("low", low).Uint64("high", high).Int("primes", len(primes)).Msg("segment sieved")

	return writeCount(conn, len(primes))
}
