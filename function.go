package optimize

// Function is a scalar-valued objective evaluated at a bound point.
type Function interface {
	// SetPoint binds the point at which subsequent evaluations take place.
	// The function does not own the point; the caller may mutate it and
	// rebind before the next evaluation.
	SetPoint(point Vector)
	// Value returns the value of the function at the bound point.
	Value() float64
	// NumDimensions returns the dimensionality of the domain.
	NumDimensions() int
}

// DifferentiableFunction is a Function that can also compute its gradient.
type DifferentiableFunction interface {
	Function
	// Gradient writes the gradient at the bound point into dst. The caller
	// owns dst and must zero it beforehand; implementations add their
	// contribution to the entries already present.
	Gradient(dst Vector)
}

// BatchFunction is a Function defined as a sum over a dataset of examples
// that can be evaluated restricted to a batch of example indices. Value must
// equal BatchValue over the full index range [0, NumExamples()).
type BatchFunction interface {
	Function
	// NumExamples returns the number of examples in the dataset.
	NumExamples() int
	// BatchValue returns the value restricted to the examples named by
	// batch. Indices may repeat; each must lie in [0, NumExamples()).
	BatchValue(batch []int) float64
}

// DifferentiableBatchFunction is a BatchFunction with gradients, the contract
// consumed by SGD. BatchGradient over the full index range must equal
// Gradient.
type DifferentiableBatchFunction interface {
	DifferentiableFunction
	BatchFunction
	// BatchGradient writes the gradient restricted to the examples named by
	// batch into dst, under the same dst contract as Gradient.
	BatchGradient(batch []int, dst Vector)
}

// FullBatch returns the index range [0, n), the batch naming every example.
func FullBatch(n int) []int {
	batch := make([]int, n)
	for i := range batch {
		batch[i] = i
	}
	return batch
}

// FunctionAsBatch presents a plain differentiable function as a batch
// function over a nominal number of examples. The wrapped function has no
// notion of examples, so the batch argument is ignored: every batch evaluates
// to the full value and gradient.
type FunctionAsBatch struct {
	fn          DifferentiableFunction
	numExamples int
}

var _ DifferentiableBatchFunction = &FunctionAsBatch{}

// NewFunctionAsBatch wraps fn as a batch function reporting numExamples
// examples.
func NewFunctionAsBatch(fn DifferentiableFunction, numExamples int) *FunctionAsBatch {
	return &FunctionAsBatch{fn: fn, numExamples: numExamples}
}

func (f *FunctionAsBatch) SetPoint(point Vector) { f.fn.SetPoint(point) }
func (f *FunctionAsBatch) Value() float64        { return f.fn.Value() }
func (f *FunctionAsBatch) Gradient(dst Vector)   { f.fn.Gradient(dst) }
func (f *FunctionAsBatch) NumDimensions() int    { return f.fn.NumDimensions() }
func (f *FunctionAsBatch) NumExamples() int      { return f.numExamples }

func (f *FunctionAsBatch) BatchValue(batch []int) float64 { return f.fn.Value() }

func (f *FunctionAsBatch) BatchGradient(batch []int, dst Vector) { f.fn.Gradient(dst) }
