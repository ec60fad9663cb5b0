// Package optimize implements stochastic gradient descent for functions
// which are a sum over a dataset of examples and can therefore be estimated
// through minibatches. Objectives are expressed through a small family of
// capability interfaces (Function, DifferentiableFunction, BatchFunction,
// DifferentiableBatchFunction) and can be built algebraically with Scale,
// Negate and Add. The step size is controlled by a pluggable GainSchedule
// with fixed-decay and adaptive (AdaGrad, AdaDelta) variants.
package optimize
