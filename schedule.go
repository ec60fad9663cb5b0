package optimize

// GainSchedule is a policy mapping observed gradients and the iteration count
// to a learning rate, possibly distinct per parameter. The calling optimizer
// updates
//
//	θ_i += ±rate_i * g_i
//
// where θ are the parameters being optimized and the sign selects between
// maximization and minimization. A schedule instance serves one run at a
// time; concurrent runs must each work on an independent Copy.
type GainSchedule interface {
	// Init resets the schedule's state for the dimensionality of function.
	Init(function DifferentiableBatchFunction)
	// TakeNoteOfGradient updates the schedule's statistics with the gradient
	// of the current step. It is called exactly once per step, before any
	// learning rate for that step is read.
	TakeNoteOfGradient(gradient Vector)
	// LearningRate returns the rate to apply to parameter i at iteration
	// iterCount.
	LearningRate(iterCount, i int) float64
	// Copy returns an independent snapshot of the schedule.
	Copy() GainSchedule
	// SameForAllParameters reports whether the rate is shared by every
	// parameter.
	SameForAllParameters() bool
	// Eta0 returns the global initial learning rate. Schedules whose rates
	// are strictly per-parameter have no such rate and panic.
	Eta0() float64
	// SetEta0 sets the global initial learning rate, under the same
	// restriction as Eta0.
	SetEta0(eta0 float64)
}

var (
	_ GainSchedule = &BottouSchedule{}
	_ GainSchedule = &AdaGrad{}
	_ GainSchedule = &AdaDelta{}
)
