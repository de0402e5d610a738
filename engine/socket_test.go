package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primegrid-dev/primegrid/sieve"
)

func runSocketStrategy(t *testing.T, limit uint64, workers int) *Result {
	t.Helper()

	eng, err := NewSocket(Config{Limit: limit, Workers: workers, Addr: "127.0.0.1:0"})
	require.NoError(t, err)
	addr := eng.Addr()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, RunWorker(addr))
		}()
	}

	result, err := eng.Run()
	wg.Wait()
	require.NoError(t, err)
	return result
}

func TestSocketRoundTrip(t *testing.T) {
	const limit = 10000
	result := runSocketStrategy(t, limit, 2)

	assert.Equal(t, len(sieve.Simple(limit)), result.TotalPrimes)
	assert.Equal(t, 3, result.Nodes, "coordinator plus two workers")
	assert.Len(t, result.NodeCounts, 3)
	assert.Equal(t, result.TotalPrimes, result.BasePrimeCount+result.SegmentTotal())
}

func TestSocketSingleWorker(t *testing.T) {
	result := runSocketStrategy(t, 1000, 1)
	assert.Equal(t, 168, result.TotalPrimes)
	assert.Equal(t, 2, result.Nodes)
}

func TestSocketSmallLimit(t *testing.T) {
	// Workers receive empty ranges when base primes cover everything.
	result := runSocketStrategy(t, 4, 3)
	assert.Equal(t, 2, result.TotalPrimes)
}

func TestNewSocketUnavailable(t *testing.T) {
	_, err := NewSocket(Config{Limit: 100, Workers: 0, Addr: "127.0.0.1:0"})
	assert.ErrorIs(t, err, ErrUnavailable)

	// An unbindable address is a degraded strategy, not a failed run.
	_, err = NewSocket(Config{Limit: 100, Workers: 1, Addr: "203.0.113.1:1"})
	assert.ErrorIs(t, err, ErrUnavailable)
}
