package optimize

import (
	"github.com/pkg/errors"
)

// Scale wraps f so that values and gradients are multiplied by m. The wrapped
// function is not modified.
func Scale(f DifferentiableFunction, m float64) DifferentiableFunction {
	return &scaleFunction{fn: f, m: m}
}

// Negate wraps f so that values and gradients are negated.
func Negate(f DifferentiableFunction) DifferentiableFunction {
	return Scale(f, -1)
}

type scaleFunction struct {
	fn DifferentiableFunction
	m  float64
}

func (s *scaleFunction) SetPoint(point Vector) { s.fn.SetPoint(point) }
func (s *scaleFunction) NumDimensions() int    { return s.fn.NumDimensions() }
func (s *scaleFunction) Value() float64        { return s.m * s.fn.Value() }

func (s *scaleFunction) Gradient(dst Vector) {
	s.fn.Gradient(dst)
	dst.Scale(s.m)
}

// Add returns the function summing the given functions. All functions must
// report the same number of dimensions.
func Add(fns ...DifferentiableFunction) (DifferentiableFunction, error) {
	if len(fns) == 0 {
		return nil, errors.New("optimize: Add requires at least one function")
	}
	dim := fns[0].NumDimensions()
	for _, f := range fns[1:] {
		if f.NumDimensions() != dim {
			return nil, errors.Errorf("optimize: functions have different dimensions: %d != %d", f.NumDimensions(), dim)
		}
	}
	return &addFunction{fns: fns, dim: dim}, nil
}

type addFunction struct {
	fns []DifferentiableFunction
	dim int
}

func (a *addFunction) NumDimensions() int { return a.dim }

func (a *addFunction) SetPoint(point Vector) {
	for _, f := range a.fns {
		f.SetPoint(point)
	}
}

func (a *addFunction) Value() float64 {
	var sum float64
	for _, f := range a.fns {
		sum += f.Value()
	}
	return sum
}

// Gradient accumulates each summand's gradient into dst. The entries of dst
// on entry are the base of the sum.
func (a *addFunction) Gradient(dst Vector) {
	g := dst.Like()
	for _, f := range a.fns {
		g.Zero()
		f.Gradient(g)
		g.Do(func(i int, v float64) {
			dst.Add(i, v)
		})
	}
}
