package mlp

import "gonum.org/v1/gonum/mat"

// backpropagate updates every weight matrix from the outputs recorded by
// feedForward. errs[i] is the error at the destination layer of weights[i].
func (net *Network) backpropagate(layers []*mat.VecDense, target *mat.VecDense) {
	last := len(net.weights) - 1

	errs := make([]*mat.VecDense, len(net.weights))
	errs[last] = subtract(target, layers[last+1])
	for i := last - 1; i >= 0; i-- {
		errs[i] = dot(net.weights[i+1].T(), errs[i+1])
	}

	// All error signals above were computed from the pre-update weights.
	for i := last; i >= 0; i-- {
		gradients := multiply(errs[i], net.activator.Deactivate(layers[i+1]))
		net.weights[i].RankOne(net.weights[i], net.learningRate, gradients, layers[i])
	}
}
