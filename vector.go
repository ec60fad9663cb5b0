package optimize

import (
	"gonum.org/v1/gonum/floats"
)

// Vector is the numeric primitive used for the point being optimized and for
// gradients. Implementations may be dense or sparse. Apply and Do visit the
// stored entries of the vector: every index for a dense vector, only the
// populated indices for a sparse one. Consumers of gradients must not assume
// every index is visited; an unvisited index holds zero.
type Vector interface {
	// Len returns the number of dimensions.
	Len() int
	// Get returns the value at index i.
	Get(i int) float64
	// Set stores v at index i.
	Set(i int, v float64)
	// Add adds v to the value at index i.
	Add(i int, v float64)
	// Scale multiplies every stored entry by c.
	Scale(c float64)
	// Apply replaces each stored entry with fn(i, v).
	Apply(fn func(i int, v float64) float64)
	// Do calls fn with each stored entry.
	Do(fn func(i int, v float64))
	// Zero sets every entry to zero.
	Zero()
	// Copy returns an independent copy of the vector.
	Copy() Vector
	// Like returns a new zero vector of the same kind and length.
	Like() Vector
}

var (
	_ Vector = &DenseVector{}
	_ Vector = &SparseVector{}
)

// DenseVector is a Vector backed by a []float64 holding every dimension.
type DenseVector struct {
	data []float64
}

// NewDenseVector returns a zero dense vector with dim dimensions.
func NewDenseVector(dim int) *DenseVector {
	return &DenseVector{data: make([]float64, dim)}
}

// NewDenseVectorFrom returns a dense vector wrapping data. The slice is used
// directly, not copied.
func NewDenseVectorFrom(data []float64) *DenseVector {
	return &DenseVector{data: data}
}

// Raw returns the underlying slice.
func (v *DenseVector) Raw() []float64 { return v.data }

func (v *DenseVector) Len() int             { return len(v.data) }
func (v *DenseVector) Get(i int) float64    { return v.data[i] }
func (v *DenseVector) Set(i int, x float64) { v.data[i] = x }
func (v *DenseVector) Add(i int, x float64) { v.data[i] += x }

func (v *DenseVector) Scale(c float64) { floats.Scale(c, v.data) }

func (v *DenseVector) Apply(fn func(i int, x float64) float64) {
	for i, x := range v.data {
		v.data[i] = fn(i, x)
	}
}

func (v *DenseVector) Do(fn func(i int, x float64)) {
	for i, x := range v.data {
		fn(i, x)
	}
}

func (v *DenseVector) Zero() {
	for i := range v.data {
		v.data[i] = 0
	}
}

func (v *DenseVector) Copy() Vector {
	return &DenseVector{data: append([]float64(nil), v.data...)}
}

func (v *DenseVector) Like() Vector { return NewDenseVector(len(v.data)) }

// SparseVector is a Vector storing only the indices that have been written.
// Iteration order over stored entries is unspecified.
type SparseVector struct {
	dim  int
	elem map[int]float64
}

// NewSparseVector returns an empty sparse vector with dim dimensions.
func NewSparseVector(dim int) *SparseVector {
	return &SparseVector{dim: dim, elem: make(map[int]float64)}
}

func (v *SparseVector) Len() int { return v.dim }

func (v *SparseVector) Get(i int) float64 {
	v.checkIndex(i)
	return v.elem[i]
}

func (v *SparseVector) Set(i int, x float64) {
	v.checkIndex(i)
	v.elem[i] = x
}

func (v *SparseVector) Add(i int, x float64) {
	v.checkIndex(i)
	v.elem[i] += x
}

func (v *SparseVector) Scale(c float64) {
	for i := range v.elem {
		v.elem[i] *= c
	}
}

func (v *SparseVector) Apply(fn func(i int, x float64) float64) {
	for i, x := range v.elem {
		v.elem[i] = fn(i, x)
	}
}

func (v *SparseVector) Do(fn func(i int, x float64)) {
	for i, x := range v.elem {
		fn(i, x)
	}
}

func (v *SparseVector) Zero() {
	for i := range v.elem {
		delete(v.elem, i)
	}
}

func (v *SparseVector) Copy() Vector {
	c := NewSparseVector(v.dim)
	for i, x := range v.elem {
		c.elem[i] = x
	}
	return c
}

func (v *SparseVector) Like() Vector { return NewSparseVector(v.dim) }

func (v *SparseVector) checkIndex(i int) {
	if i < 0 || i >= v.dim {
		panic("optimize: vector index out of range")
	}
}
