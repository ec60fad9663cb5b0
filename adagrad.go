package optimize

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// AdaGradPrm holds the parameters of an AdaGrad schedule.
type AdaGradPrm struct {
	// InitialLr is the constant numerator η. If InitialLr is 0, a default
	// value of 0.1 is used.
	InitialLr float64
	// ConstantAddend is the smoothing term ϵ added to the sum of squares
	// inside the square root. If ConstantAddend is 0, a default value of
	// 1e-8 is used; a negative value is a construction error.
	ConstantAddend float64
}

// AdaGrad is a gain schedule with a per-parameter rate that shrinks with the
// accumulated sum of squared gradients (Duchi et al., 2011),
//
//	G_i += g_i^2
//	rate_i = η / sqrt(G_i + ϵ)
//
// The accumulator never decays, so the rate for a parameter is
// non-increasing over a run.
type AdaGrad struct {
	prm       AdaGradPrm
	gradAccum []float64
	lr        []float64
}

// NewAdaGrad returns a schedule with the given parameters, filling in
// defaults for zero fields.
func NewAdaGrad(prm AdaGradPrm) (*AdaGrad, error) {
	if prm.InitialLr == 0 {
		prm.InitialLr = 0.1
	}
	if prm.ConstantAddend == 0 {
		prm.ConstantAddend = 1e-8
	}
	if prm.ConstantAddend < 0 {
		return nil, errors.Errorf("optimize: constant addend must be positive: %g", prm.ConstantAddend)
	}
	return &AdaGrad{prm: prm}, nil
}

func (a *AdaGrad) Init(function DifferentiableBatchFunction) {
	dim := function.NumDimensions()
	a.gradAccum = resizeZero(a.gradAccum, dim)
	a.lr = resizeZero(a.lr, dim)
	for i := range a.lr {
		a.lr[i] = a.prm.InitialLr / math.Sqrt(a.prm.ConstantAddend)
	}
}

// TakeNoteOfGradient folds the squared gradient into the accumulator and
// refreshes the cached rate for every index the gradient stores. Indices a
// sparse gradient leaves out keep their accumulator and rate, which is the
// same as observing a zero gradient for them.
func (a *AdaGrad) TakeNoteOfGradient(gradient Vector) {
	gradient.Do(func(i int, g float64) {
		a.gradAccum[i] += g * g
		if a.gradAccum[i] < 0 {
			panic(fmt.Sprintf("optimize: gradient accumulator is negative: %g", a.gradAccum[i]))
		}
		lr := a.prm.InitialLr / math.Sqrt(a.gradAccum[i]+a.prm.ConstantAddend)
		if math.IsNaN(lr) || math.IsInf(lr, 0) {
			panic(fmt.Sprintf("optimize: learning rate is not finite: %g", lr))
		}
		a.lr[i] = lr
	})
}

func (a *AdaGrad) LearningRate(iterCount, i int) float64 { return a.lr[i] }

func (a *AdaGrad) Copy() GainSchedule {
	return &AdaGrad{
		prm:       a.prm,
		gradAccum: append([]float64(nil), a.gradAccum...),
		lr:        append([]float64(nil), a.lr...),
	}
}

func (a *AdaGrad) SameForAllParameters() bool { return false }

func (a *AdaGrad) Eta0() float64 { return a.prm.InitialLr }

func (a *AdaGrad) SetEta0(eta0 float64) { a.prm.InitialLr = eta0 }
