package optimize

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Batcher generates minibatches from a dataset of a fixed size.
type Batcher interface {
	// Init initializes the Batcher for a dataset of a size specified by nSamples.
	Init(nSamples int) error
	// Batch returns the indices of the next minibatch to evaluate. The
	// returned slice is reused by subsequent calls and must not be modified.
	Batch() []int
}

// RandomBatch generates a minibatch of the specified size at random from the
// total dataset. With Replacement, every call draws Size indices
// independently and uniformly. Without, indices are consumed in order from a
// uniform random permutation of the dataset; when fewer than Size indices
// remain, the leftovers are discarded and a fresh permutation is drawn, so a
// batch never spans two permutations and each permutation yields
// floor(nSamples/Size) batches. Both modes are deterministic given a fixed
// Source.
type RandomBatch struct {
	// Size is the minibatch size.
	Size int
	// Replacement sets if the minibatch can have the same sample multiple times
	// in the minibatch.
	Replacement bool
	// Source sets the random number source. If nil, the global source is used.
	Source rand.Source

	nData int
	idxs  []int
	perm  []int
	used  int
}

func (r *RandomBatch) Init(nSamples int) error {
	if r.Size <= 0 {
		return errors.Errorf("optimize: batch size must be positive: %d", r.Size)
	}
	if !r.Replacement && r.Size > nSamples {
		return errors.Errorf("optimize: batch size %d exceeds %d samples when sampling without replacement", r.Size, nSamples)
	}
	r.nData = nSamples
	r.idxs = make([]int, r.Size)
	r.perm = nil
	r.used = 0
	return nil
}

func (r *RandomBatch) Batch() []int {
	if r.Replacement {
		// Replacement okay.
		intn := rand.Intn
		if r.Source != nil {
			intn = rand.New(r.Source).Intn
		}
		for i := range r.idxs {
			r.idxs[i] = intn(r.nData)
		}
		return r.idxs
	}
	if r.perm == nil || r.nData-r.used < r.Size {
		if r.perm == nil {
			r.perm = make([]int, r.nData)
		}
		sampleuv.WithoutReplacement(r.perm, r.nData, r.Source)
		r.used = 0
	}
	copy(r.idxs, r.perm[r.used:r.used+r.Size])
	r.used += r.Size
	return r.idxs
}
