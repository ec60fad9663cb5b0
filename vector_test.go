package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorOps(t *testing.T) {
	for _, vec := range []Vector{
		NewDenseVector(4),
		NewSparseVector(4),
	} {
		require.Equal(t, 4, vec.Len())

		vec.Set(1, 2)
		vec.Add(1, 0.5)
		vec.Add(3, -1)
		assert.Equal(t, 0.0, vec.Get(0))
		assert.Equal(t, 2.5, vec.Get(1))
		assert.Equal(t, -1.0, vec.Get(3))

		vec.Scale(2)
		assert.Equal(t, 5.0, vec.Get(1))
		assert.Equal(t, -2.0, vec.Get(3))

		// Multiplicative so that the zero entries a dense vector visits and a
		// sparse one skips stay equivalent.
		vec.Apply(func(i int, v float64) float64 { return 2 * v })
		assert.Equal(t, 10.0, vec.Get(1))
		assert.Equal(t, -4.0, vec.Get(3))

		var sum float64
		vec.Do(func(i int, v float64) { sum += v })
		assert.Equal(t, 6.0, sum)

		c := vec.Copy()
		vec.Set(1, 100)
		assert.Equal(t, 10.0, c.Get(1), "copy must be independent")

		like := vec.Like()
		require.Equal(t, 4, like.Len())
		for i := 0; i < 4; i++ {
			assert.Equal(t, 0.0, like.Get(i))
		}

		vec.Zero()
		for i := 0; i < 4; i++ {
			assert.Equal(t, 0.0, vec.Get(i))
		}
	}
}

// A dense vector visits every index; a sparse vector only the written ones.
func TestVectorIteration(t *testing.T) {
	d := NewDenseVector(3)
	var visits int
	d.Do(func(i int, v float64) { visits++ })
	assert.Equal(t, 3, visits)

	s := NewSparseVector(1000)
	s.Set(7, 1)
	s.Add(600, 2)
	visits = 0
	s.Do(func(i int, v float64) { visits++ })
	assert.Equal(t, 2, visits)
}

func TestSparseVectorBounds(t *testing.T) {
	s := NewSparseVector(3)
	assert.Panics(t, func() { s.Get(3) })
	assert.Panics(t, func() { s.Set(-1, 1) })
	assert.Panics(t, func() { s.Add(5, 1) })
}
