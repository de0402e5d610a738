package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkMessageRoundTrip(t *testing.T) {
	testCases := []struct {
		name       string
		low, high  uint64
		basePrimes []uint64
	}{
		{"no base primes", 2, 2, nil},
		{"one base prime", 4, 9, []uint64{2}},
		{"many base primes", 101, 10000, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}},
		{"empty range", 31, 30, []uint64{2, 3, 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeWork(&buf, tc.low, tc.high, tc.basePrimes))

			// Length prefix covers everything after itself.
			assert.Equal(t, 4+workHeaderLen+8*len(tc.basePrimes), buf.Len())

			low, high, basePrimes, err := readWork(&buf)
			require.NoError(t, err)
			assert.Equal(t, tc.low, low)
			assert.Equal(t, tc.high, high)
			assert.Equal(t, tc.basePrimes, basePrimes)
			assert.Zero(t, buf.Len(), "no trailing bytes")
		})
	}
}

func TestReadWorkTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeWork(&buf, 10, 30, []uint64{2, 3, 5}))

	truncated := buf.Bytes()[:buf.Len()-5]
	_, _, _, err := readWork(bytes.NewReader(truncated))
	assert.Error(t, err)
}

func TestReadWorkMalformedLength(t *testing.T) {
	// Length prefix below the fixed header is never valid.
	_, _, _, err := readWork(bytes.NewReader([]byte{10, 0, 0, 0}))
	assert.Error(t, err)

	// A payload that is not a whole number of u64 base primes is malformed.
	_, _, _, err = readWork(bytes.NewReader(append([]byte{27, 0, 0, 0}, make([]byte, 27)...)))
	assert.Error(t, err)
}

func TestCountMessageRoundTrip(t *testing.T) {
	for _, count := range []int{0, 1, 1229} {
		var buf bytes.Buffer
		require.NoError(t, writeCount(&buf, count))
		assert.Equal(t, 4, buf.Len())

		got, err := readCount(&buf)
		require.NoError(t, err)
		assert.Equal(t, count, got)
	}
}

func TestReadCountShort(t *testing.T) {
	_, err := readCount(bytes.NewReader([]byte{1, 2}))
	assert.Error(t, err)
}
