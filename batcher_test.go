package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandomBatchBounds(t *testing.T) {
	for _, replacement := range []bool{true, false} {
		b := &RandomBatch{Size: 3, Replacement: replacement, Source: rand.NewSource(1)}
		require.NoError(t, b.Init(10))
		for draw := 0; draw < 50; draw++ {
			batch := b.Batch()
			require.Len(t, batch, 3)
			for _, idx := range batch {
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, 10)
			}
		}
	}
}

// Without replacement, when the batch size divides the dataset, one cycle of
// draws covers every index exactly once.
func TestRandomBatchCoverage(t *testing.T) {
	const nData, size = 12, 3
	b := &RandomBatch{Size: size, Source: rand.NewSource(7)}
	require.NoError(t, b.Init(nData))

	for cycle := 0; cycle < 4; cycle++ {
		seen := make(map[int]int)
		for draw := 0; draw < nData/size; draw++ {
			for _, idx := range b.Batch() {
				seen[idx]++
			}
		}
		require.Len(t, seen, nData)
		for idx, n := range seen {
			assert.Equal(t, 1, n, "index %d drawn %d times in one cycle", idx, n)
		}
	}
}

// When the batch size does not divide the dataset, the leftover indices are
// discarded and a fresh permutation starts, so draws never repeat an index
// within a batch and stay in bounds across the reshuffle boundary.
func TestRandomBatchReshuffle(t *testing.T) {
	const nData, size = 10, 4
	b := &RandomBatch{Size: size, Source: rand.NewSource(3)}
	require.NoError(t, b.Init(nData))

	for draw := 0; draw < 25; draw++ {
		batch := b.Batch()
		require.Len(t, batch, size)
		seen := make(map[int]bool)
		for _, idx := range batch {
			require.False(t, seen[idx], "duplicate index %d without replacement", idx)
			seen[idx] = true
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, nData)
		}
	}
}

func TestRandomBatchDeterministic(t *testing.T) {
	for _, replacement := range []bool{true, false} {
		b1 := &RandomBatch{Size: 4, Replacement: replacement, Source: rand.NewSource(42)}
		b2 := &RandomBatch{Size: 4, Replacement: replacement, Source: rand.NewSource(42)}
		require.NoError(t, b1.Init(20))
		require.NoError(t, b2.Init(20))
		for draw := 0; draw < 30; draw++ {
			assert.Equal(t, b1.Batch(), b2.Batch())
		}
	}
}

func TestRandomBatchInitErrors(t *testing.T) {
	// A batch larger than the dataset needs replacement.
	b := &RandomBatch{Size: 11}
	require.Error(t, b.Init(10))

	b = &RandomBatch{Size: 11, Replacement: true}
	require.NoError(t, b.Init(10))

	b = &RandomBatch{Size: 0}
	require.Error(t, b.Init(10))
	b = &RandomBatch{Size: -2, Replacement: true}
	require.Error(t, b.Init(10))
}
