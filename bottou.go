package optimize

// BottouSchedulePrm holds the parameters of a BottouSchedule.
type BottouSchedulePrm struct {
	// InitialLr is the initial learning rate γ_0. If InitialLr is 0, a
	// default value of 0.1 is used.
	InitialLr float64
	// Lambda is the learning rate scaler λ. When the objective includes an
	// L2 regularizer (λ/2)||w||^2, Lambda should be set to that same λ; if
	// the regularizer is parameterized by the variance of a Gaussian prior,
	// set λ = 1/σ^2. If Lambda is 0, a default value of 1 is used.
	Lambda float64
}

// BottouSchedule is the time-decayed gain schedule suggested in Leon Bottou's
// (2012) SGD Tricks paper,
//
//	γ_t = γ_0 / (1 + γ_0 λ t)
//
// The rate depends only on the iteration count and is the same for every
// parameter.
type BottouSchedule struct {
	prm BottouSchedulePrm
}

// NewBottouSchedule returns a schedule with the given parameters, filling in
// defaults for zero fields.
func NewBottouSchedule(prm BottouSchedulePrm) *BottouSchedule {
	if prm.InitialLr == 0 {
		prm.InitialLr = 0.1
	}
	if prm.Lambda == 0 {
		prm.Lambda = 1
	}
	return &BottouSchedule{prm: prm}
}

func (b *BottouSchedule) Init(function DifferentiableBatchFunction) {}

func (b *BottouSchedule) TakeNoteOfGradient(gradient Vector) {}

func (b *BottouSchedule) LearningRate(iterCount, i int) float64 {
	return b.prm.InitialLr / (1 + b.prm.InitialLr*b.prm.Lambda*float64(iterCount))
}

func (b *BottouSchedule) Copy() GainSchedule {
	c := *b
	return &c
}

func (b *BottouSchedule) SameForAllParameters() bool { return true }

func (b *BottouSchedule) Eta0() float64 { return b.prm.InitialLr }

func (b *BottouSchedule) SetEta0(eta0 float64) { b.prm.InitialLr = eta0 }
