package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanScenario(t *testing.T) {
	ranges := Plan(10000, 100, 4)
	require.Len(t, ranges, 4)

	assert.Equal(t, Range{Low: 101, High: 2575}, ranges[0])
	assert.Equal(t, Range{Low: 2576, High: 5050}, ranges[1])
	assert.Equal(t, Range{Low: 5051, High: 7525}, ranges[2])
	assert.Equal(t, Range{Low: 7526, High: 10000}, ranges[3])

	for i, r := range ranges {
		assert.Equal(t, uint64(2475), r.Size(), "range %d", i)
	}
}

func TestPlanCoversRangeWithoutGaps(t *testing.T) {
	testCases := []struct {
		name           string
		limit          uint64
		basePrimeLimit uint64
		workers        int
	}{
		{"single worker", 1000, 31, 1},
		{"even split", 10000, 100, 4},
		{"uneven split", 1000, 31, 7},
		{"many workers", 100000, 316, 13},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ranges := Plan(tc.limit, tc.basePrimeLimit, tc.workers)
			require.Len(t, ranges, tc.workers)

			next := tc.basePrimeLimit + 1
			var covered uint64
			for i, r := range ranges {
				if r.Empty() {
					continue
				}
				assert.Equal(t, next, r.Low, "range %d must start where the previous ended", i)
				assert.LessOrEqual(t, r.High, tc.limit)
				next = r.High + 1
				covered += r.Size()
			}
			assert.Equal(t, tc.limit+1, next, "last range must end at the limit")
			assert.Equal(t, tc.limit-tc.basePrimeLimit, covered)
		})
	}
}

func TestPlanMoreWorkersThanValues(t *testing.T) {
	ranges := Plan(10, 3, 20)
	require.Len(t, ranges, 20)

	nonEmpty := 0
	for _, r := range ranges {
		if !r.Empty() {
			assert.Equal(t, uint64(1), r.Size())
			nonEmpty++
		}
	}
	assert.Equal(t, 7, nonEmpty)
}

func TestPlanExhaustedRange(t *testing.T) {
	for _, r := range Plan(100, 100, 3) {
		assert.True(t, r.Empty())
		assert.Equal(t, uint64(0), r.Size())
	}
}

func TestPlanClampsWorkerCount(t *testing.T) {
	ranges := Plan(1000, 31, 0)
	require.Len(t, ranges, 1)
	assert.Equal(t, Range{Low: 32, High: 1000}, ranges[0])
}
