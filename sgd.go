package optimize

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Progress describes the state of an SGD run at a reporting point.
type Progress struct {
	// Iter is the index of the gradient step just completed, or 0 for the
	// report before the first step.
	Iter int
	// Pass is the fraction of full passes through the data completed.
	Pass float64
	// Value is the function value over all examples.
	Value float64
	// BatchValue is the function value on the batch of the last step. It is
	// NaN for the report before the first step.
	BatchValue float64
	// AvgLr and AvgStep are the average learning rate and average update
	// magnitude over the parameters with a nonzero gradient entry in the
	// last step.
	AvgLr, AvgStep float64
	// Elapsed is the wall-clock time since the run started.
	Elapsed time.Duration
	// EarlyStop reports that the run is stopping at its deadline before
	// exhausting the step budget.
	EarlyStop bool
}

// SGDPrm holds the configuration of an SGD run. Zero fields take the default
// noted on each; the configuration is treated as immutable for the duration
// of a run.
type SGDPrm struct {
	// Sched produces the learning rates. If Sched is nil, a BottouSchedule
	// with default parameters is used.
	Sched GainSchedule
	// NumPasses is the number of passes over the dataset to perform. If
	// NumPasses is 0, a default value of 10 is used.
	NumPasses float64
	// BatchSize is the number of examples per step. If BatchSize is 0, a
	// default value of 15 is used.
	BatchSize int
	// WithReplacement sets whether batches are sampled with replacement.
	WithReplacement bool
	// StopBy, when nonzero, is a wall-clock deadline checked after each
	// completed step.
	StopBy time.Time
	// ComputeValueOnIterZero sets whether the full-dataset value is computed
	// and reported before the first step. It has no effect on the steps.
	ComputeValueOnIterZero bool
	// Batcher overrides the minibatch source. If Batcher is nil, a
	// RandomBatch built from BatchSize, WithReplacement and Source is used.
	Batcher Batcher
	// Source is the random source for the default batcher. If nil, the
	// global source is used.
	Source rand.Source
	// Observer, if non-nil, is invoked after the optional iteration-zero
	// evaluation, at pass boundaries, on the final step, and when the
	// deadline stops the run early.
	Observer func(Progress)
}

// DefaultSGDPrm returns the default run configuration: a Bottou schedule, 10
// passes with batches of 15 sampled without replacement, and the full-dataset
// value computed before the first step.
func DefaultSGDPrm() SGDPrm {
	return SGDPrm{
		NumPasses:              10,
		BatchSize:              15,
		ComputeValueOnIterZero: true,
	}
}

// SGD is stochastic gradient descent with minibatches. A run performs
// ceil(NumPasses * numExamples / BatchSize) steps; there is no convergence
// test, so the run ends only by exhausting that budget or by crossing the
// StopBy deadline.
type SGD struct {
	prm SGDPrm

	sched   GainSchedule
	batcher Batcher
	// The number of gradient steps to run.
	iterations int
	// The number of iterations performed thus far.
	iterCount int

	maximize  bool
	haveBest  bool
	bestValue float64
	bestTime  time.Duration
}

// NewSGD constructs an SGD optimizer, filling in defaults for zero fields of
// prm.
func NewSGD(prm SGDPrm) *SGD {
	if prm.NumPasses == 0 {
		prm.NumPasses = 10
	}
	if prm.BatchSize == 0 {
		prm.BatchSize = 15
	}
	if prm.Sched == nil {
		prm.Sched = NewBottouSchedule(BottouSchedulePrm{})
	}
	return &SGD{prm: prm}
}

// init prepares all the state for a run.
func (s *SGD) init(function DifferentiableBatchFunction, point Vector) error {
	if point.Len() != function.NumDimensions() {
		return errors.Errorf("optimize: point has %d dimensions, function has %d", point.Len(), function.NumDimensions())
	}
	numExamples := function.NumExamples()

	s.iterCount = 0
	s.batcher = s.prm.Batcher
	if s.batcher == nil {
		s.batcher = &RandomBatch{
			Size:        s.prm.BatchSize,
			Replacement: s.prm.WithReplacement,
			Source:      s.prm.Source,
		}
	}
	if err := s.batcher.Init(numExamples); err != nil {
		return err
	}
	s.sched = s.prm.Sched
	s.sched.Init(function)

	s.iterations = int(math.Ceil(s.prm.NumPasses * float64(numExamples) / float64(s.prm.BatchSize)))
	return nil
}

// Maximize runs the optimizer uphill from point, mutating point in place. The
// returned bool reports whether a convergence test terminated the run; no
// such test exists, so it is always false and does not indicate failure. The
// error covers configuration problems detected before the first step.
func (s *SGD) Maximize(function DifferentiableBatchFunction, point Vector) (bool, error) {
	return s.optimize(function, point, true)
}

// Minimize runs the optimizer downhill from point, mutating point in place,
// under the same return contract as Maximize.
func (s *SGD) Minimize(function DifferentiableBatchFunction, point Vector) (bool, error) {
	return s.optimize(function, point, false)
}

func (s *SGD) optimize(function DifferentiableBatchFunction, point Vector, maximize bool) (bool, error) {
	if err := s.init(function, point); err != nil {
		return false, err
	}
	s.maximize = maximize
	s.haveBest = false
	numExamples := function.NumExamples()
	start := time.Now()

	passCount := 0
	passCountFrac := 0.0

	if s.prm.ComputeValueOnIterZero {
		function.SetPoint(point)
		value := function.Value()
		s.noteValue(value, time.Since(start))
		s.report(Progress{
			Value:      value,
			BatchValue: math.NaN(),
			Elapsed:    time.Since(start),
		})
	}

	gradient := point.Like()
	for s.iterCount = 0; s.iterCount < s.iterations; s.iterCount++ {
		batch := s.batcher.Batch()

		// Get the current value and gradient of the function on the batch.
		function.SetPoint(point)
		batchValue := function.BatchValue(batch)
		gradient.Zero()
		function.BatchGradient(batch, gradient)
		s.sched.TakeNoteOfGradient(gradient)

		// Scale the gradient by the parameter-specific learning rate, signed
		// for the direction of optimization.
		iter := s.iterCount
		gradient.Apply(func(i int, g float64) float64 {
			lr := s.sched.LearningRate(iter, i)
			if maximize {
				return lr * g
			}
			return -lr * g
		})

		// Take the step, and compute the average learning rate and step
		// magnitude over the touched parameters.
		var avgLr, avgStep float64
		var numNonZeros int
		gradient.Do(func(i int, step float64) {
			point.Add(i, step)
			if step != 0 {
				avgLr += s.sched.LearningRate(iter, i)
				avgStep += math.Abs(step)
				numNonZeros++
			}
		})
		if numNonZeros > 0 {
			avgLr /= float64(numNonZeros)
			avgStep /= float64(numNonZeros)
		}

		// If a full pass through the data has been completed, or this is the
		// last iteration, get the value of the function on all the examples.
		passCountFrac = float64(s.iterCount) * float64(s.prm.BatchSize) / float64(numExamples)
		if int(math.Floor(passCountFrac)) > passCount || s.iterCount == s.iterations-1 {
			function.SetPoint(point)
			value := function.Value()
			s.noteValue(value, time.Since(start))
			s.report(Progress{
				Iter:       s.iterCount,
				Pass:       passCountFrac,
				Value:      value,
				BatchValue: batchValue,
				AvgLr:      avgLr,
				AvgStep:    avgStep,
				Elapsed:    time.Since(start),
			})
		}
		if int(math.Floor(passCountFrac)) > passCount {
			passCount++
		}

		if !s.prm.StopBy.IsZero() && time.Now().After(s.prm.StopBy) {
			function.SetPoint(point)
			value := function.Value()
			s.noteValue(value, time.Since(start))
			s.report(Progress{
				Iter:       s.iterCount,
				Pass:       passCountFrac,
				Value:      value,
				BatchValue: batchValue,
				AvgLr:      avgLr,
				AvgStep:    avgStep,
				Elapsed:    time.Since(start),
				EarlyStop:  true,
			})
			break
		}
	}

	// We don't test for convergence.
	return false, nil
}

func (s *SGD) report(p Progress) {
	if s.prm.Observer != nil {
		s.prm.Observer(p)
	}
}

func (s *SGD) noteValue(value float64, elapsed time.Duration) {
	better := !s.haveBest
	if s.maximize {
		better = better || value > s.bestValue
	} else {
		better = better || value < s.bestValue
	}
	if better {
		s.bestValue = value
		s.bestTime = elapsed
		s.haveBest = true
	}
}

// BestValue returns the best full-dataset value observed during the last run.
// It is NaN before any full-dataset evaluation has happened.
func (s *SGD) BestValue() float64 {
	if !s.haveBest {
		return math.NaN()
	}
	return s.bestValue
}

// BestTime returns the elapsed run time at which BestValue was observed.
func (s *SGD) BestTime() time.Duration { return s.bestTime }
