package mlp

import "fmt"

// Topology is the node count of every layer, input first and output last.
type Topology []int

// Validate reports whether t describes a network with an input layer, at
// least one hidden layer and an output layer, each with at least one node.
func (t Topology) Validate() error {
	if len(t) < 3 {
		return fmt.Errorf("%d layers, need at least 3: %w", len(t), ErrInvalidTopology)
	}
	for i, n := range t {
		if n <= 0 {
			return fmt.Errorf("layer %d has %d nodes: %w", i, n, ErrInvalidTopology)
		}
	}
	return nil
}

func (t Topology) Inputs() int  { return t[0] }
func (t Topology) Outputs() int { return t[len(t)-1] }
func (t Topology) Layers() int  { return len(t) }

func (t Topology) clone() Topology {
	return append(Topology(nil), t...)
}
