// Package mlp implements a fully connected feed-forward network trained
// with plain stochastic gradient descent.
//
// A Network is not safe for concurrent use: Train mutates the weight
// matrices in place while Query reads them. Callers sharing a Network
// across goroutines must serialize Train against every other call.
package mlp

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

type Config struct {
	Topology     Topology
	LearningRate float64
	Init         InitKind
	// Src seeds weight initialization. A nil Src gets a time-seeded source
	// private to the network.
	Src rand.Source
}

type Network struct {
	topology     Topology
	learningRate float64
	activator    Activator
	// weights[i] maps layer i to layer i+1 and has shape
	// (topology[i+1], topology[i]).
	weights []*mat.Dense
}

// NewNetwork validates c and draws one weight matrix per adjacent layer pair.
func NewNetwork(c Config) (*Network, error) {
	if err := c.Topology.Validate(); err != nil {
		return nil, err
	}
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 1) {
		return nil, fmt.Errorf("%v: %w", c.LearningRate, ErrInvalidLearningRate)
	}
	src := c.Src
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	net := &Network{
		topology:     c.Topology.clone(),
		learningRate: c.LearningRate,
		activator:    Sigmoid{},
		weights:      make([]*mat.Dense, len(c.Topology)-1),
	}
	for i := range net.weights {
		w, err := Initialize(net.topology[i+1], net.topology[i], c.Init, src)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		net.weights[i] = w
	}
	return net, nil
}

func (net *Network) Topology() Topology {
	return net.topology.clone()
}

func (net *Network) LearningRate() float64 {
	return net.learningRate
}

func (net *Network) Activator() Activator {
	return net.activator
}

// Weights returns a deep copy of every transition matrix.
func (net *Network) Weights() []*mat.Dense {
	out := make([]*mat.Dense, len(net.weights))
	for i, w := range net.weights {
		out[i] = mat.DenseCopyOf(w)
	}
	return out
}

// SetWeights replaces every transition matrix with a copy of the
// corresponding entry of weights. Nothing is replaced unless all shapes
// match the topology.
func (net *Network) SetWeights(weights []*mat.Dense) error {
	if len(weights) != len(net.weights) {
		return fmt.Errorf("got %d weight matrices, want %d: %w", len(weights), len(net.weights), ErrShapeMismatch)
	}
	for i, w := range weights {
		r, c := w.Dims()
		if r != net.topology[i+1] || c != net.topology[i] {
			return fmt.Errorf("transition %d is %dx%d, want %dx%d: %w",
				i, r, c, net.topology[i+1], net.topology[i], ErrShapeMismatch)
		}
	}
	for i, w := range weights {
		net.weights[i] = mat.DenseCopyOf(w)
	}
	return nil
}

// Query runs a forward pass and returns the output layer.
func (net *Network) Query(input []float64) ([]float64, error) {
	if err := net.checkLayer(0, input); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return toSlice(net.propagate(0, vector(input))), nil
}

// QueryFrom resumes a forward pass at layer, treating activations as that
// layer's output. QueryFrom(0, x) is equivalent to Query(x).
func (net *Network) QueryFrom(layer int, activations []float64) ([]float64, error) {
	if layer < 0 || layer >= len(net.topology) {
		return nil, fmt.Errorf("query from layer %d of %d: %w", layer, len(net.topology), ErrShapeMismatch)
	}
	if err := net.checkLayer(layer, activations); err != nil {
		return nil, fmt.Errorf("query from layer %d: %w", layer, err)
	}
	return toSlice(net.propagate(layer, vector(activations))), nil
}

// Train performs one SGD step towards expected for input.
func (net *Network) Train(input, expected []float64) error {
	if err := net.checkLayer(0, input); err != nil {
		return fmt.Errorf("train: input: %w", err)
	}
	if err := net.checkLayer(len(net.topology)-1, expected); err != nil {
		return fmt.Errorf("train: expected: %w", err)
	}

	layers := net.feedForward(vector(input))
	net.backpropagate(layers, vector(expected))
	return nil
}

func (net *Network) checkLayer(layer int, v []float64) error {
	if len(v) != net.topology[layer] {
		return fmt.Errorf("%d values for layer %d with %d nodes: %w", len(v), layer, net.topology[layer], ErrShapeMismatch)
	}
	return nil
}
