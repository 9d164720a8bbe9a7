package mlp

import "errors"

var (
	// ErrShapeMismatch is returned when a vector length does not match the
	// node count of the layer it is fed to or compared against. The network
	// is never mutated when it is returned.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidTopology is returned by NewNetwork for fewer than three
	// layers or a layer without nodes.
	ErrInvalidTopology = errors.New("invalid topology")

	ErrInvalidLearningRate = errors.New("learning rate must be positive")
)
