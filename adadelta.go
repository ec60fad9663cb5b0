package optimize

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// AdaDeltaPrm holds the parameters of an AdaDelta schedule.
type AdaDeltaPrm struct {
	// DecayRate is the rate ρ for exponential decay averaging. If DecayRate
	// is 0, a default value of 0.95 is used.
	DecayRate float64
	// ConstantAddend is the amount ϵ added to the sums of squares inside the
	// square root. If ConstantAddend is 0, a default value of 1e-6 is used;
	// a negative value is a construction error.
	ConstantAddend float64
	// RawFirstStep forces ρ to 0 on the very first update, so the
	// accumulators start from the raw squared gradient instead of a decayed
	// blend against their zero initialization.
	RawFirstStep bool
}

// AdaDelta is the adaptive gain schedule of Zeiler (2012), "ADADELTA: An
// Adaptive Learning Rate Method", http://arxiv.org/abs/1212.5701. Per
// parameter it tracks decayed means of squared gradients and squared updates,
//
//	E[g²]_i = ρ E[g²]_i + (1-ρ) g_i²
//	rate_i  = sqrt((E[Δ²]_i + ϵ) / (E[g²]_i + ϵ))
//	E[Δ²]_i = ρ E[Δ²]_i + (1-ρ) (rate_i g_i)²
//
// There is no global learning rate; Eta0 and SetEta0 panic.
type AdaDelta struct {
	prm AdaDeltaPrm
	// Accumulator for the squared gradient.
	gradAccum []float64
	// Accumulator for the squared updates.
	updAccum []float64
	// Cache of the learning rate for each parameter.
	lr []float64
	// Whether an update has been observed since Init.
	initialized bool
}

// NewAdaDelta returns a schedule with the given parameters, filling in
// defaults for zero fields.
func NewAdaDelta(prm AdaDeltaPrm) (*AdaDelta, error) {
	if prm.DecayRate == 0 {
		prm.DecayRate = 0.95
	}
	if prm.ConstantAddend == 0 {
		prm.ConstantAddend = 1e-6
	}
	if prm.ConstantAddend < 0 {
		return nil, errors.Errorf("optimize: constant addend must be positive: %g", prm.ConstantAddend)
	}
	return &AdaDelta{prm: prm}, nil
}

func (a *AdaDelta) Init(function DifferentiableBatchFunction) {
	dim := function.NumDimensions()
	a.gradAccum = resizeZero(a.gradAccum, dim)
	a.updAccum = resizeZero(a.updAccum, dim)
	a.lr = resizeZero(a.lr, dim)
	for i := range a.lr {
		// sqrt((0+ϵ)/(0+ϵ)): the rate before any gradient is observed.
		a.lr[i] = 1
	}
	a.initialized = false
}

// TakeNoteOfGradient folds the gradient into the accumulators and refreshes
// the cached rate for every index the gradient stores. Indices a sparse
// gradient leaves out keep their accumulators and rate, which is the same as
// observing a zero gradient for them.
func (a *AdaDelta) TakeNoteOfGradient(gradient Vector) {
	gamma := a.prm.DecayRate
	if !a.initialized && a.prm.RawFirstStep {
		gamma = 0
	}
	a.initialized = true

	gradient.Do(func(i int, g float64) {
		a.gradAccum[i] = gamma*a.gradAccum[i] + (1-gamma)*g*g
		a.lr[i] = a.learningRate(i)
		update := a.lr[i] * g
		a.updAccum[i] = gamma*a.updAccum[i] + (1-gamma)*update*update
	})
}

// learningRate computes sqrt((updAccum[i]+ϵ)/(gradAccum[i]+ϵ)). With ϵ > 0
// and non-negative accumulators both numerator and denominator are strictly
// positive, so the result is finite; anything else signals numeric corruption
// upstream.
func (a *AdaDelta) learningRate(i int) float64 {
	if a.gradAccum[i] < 0 {
		panic(fmt.Sprintf("optimize: gradient accumulator is negative: %g", a.gradAccum[i]))
	}
	if a.updAccum[i] < 0 {
		panic(fmt.Sprintf("optimize: update accumulator is negative: %g", a.updAccum[i]))
	}
	lr := math.Sqrt((a.updAccum[i] + a.prm.ConstantAddend) / (a.gradAccum[i] + a.prm.ConstantAddend))
	if math.IsNaN(lr) || math.IsInf(lr, 0) {
		panic(fmt.Sprintf("optimize: learning rate is not finite: %g", lr))
	}
	return lr
}

func (a *AdaDelta) LearningRate(iterCount, i int) float64 { return a.lr[i] }

func (a *AdaDelta) Copy() GainSchedule {
	return &AdaDelta{
		prm:         a.prm,
		gradAccum:   append([]float64(nil), a.gradAccum...),
		updAccum:    append([]float64(nil), a.updAccum...),
		lr:          append([]float64(nil), a.lr...),
		initialized: a.initialized,
	}
}

func (a *AdaDelta) SameForAllParameters() bool { return false }

// Eta0 panics: AdaDelta's rates are strictly per-parameter.
func (a *AdaDelta) Eta0() float64 {
	panic("optimize: AdaDelta has no global learning rate")
}

// SetEta0 panics: AdaDelta's rates are strictly per-parameter.
func (a *AdaDelta) SetEta0(eta0 float64) {
	panic("optimize: AdaDelta has no global learning rate")
}
