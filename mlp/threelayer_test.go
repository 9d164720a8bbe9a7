package mlp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// threeLayer is the fixed input/hidden/output formulation the generalized
// network must reproduce exactly.
type threeLayer struct {
	inputHidden  [][]float64
	hiddenOutput [][]float64
	lr           float64
}

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func (n *threeLayer) layer(w [][]float64, in []float64) []float64 {
	out := make([]float64, len(w))
	for i, row := range w {
		var sum float64
		for j, v := range row {
			sum += v * in[j]
		}
		out[i] = sigmoid(sum)
	}
	return out
}

func (n *threeLayer) query(in []float64) []float64 {
	return n.layer(n.hiddenOutput, n.layer(n.inputHidden, in))
}

func (n *threeLayer) train(in, target []float64) {
	hidden := n.layer(n.inputHidden, in)
	final := n.layer(n.hiddenOutput, hidden)

	outputErr := make([]float64, len(final))
	for i := range final {
		outputErr[i] = target[i] - final[i]
	}
	hiddenErr := make([]float64, len(hidden))
	for j := range hidden {
		for i := range final {
			hiddenErr[j] += n.hiddenOutput[i][j] * outputErr[i]
		}
	}

	for i := range n.hiddenOutput {
		g := outputErr[i] * final[i] * (1 - final[i])
		for j := range n.hiddenOutput[i] {
			n.hiddenOutput[i][j] += n.lr * g * hidden[j]
		}
	}
	for i := range n.inputHidden {
		g := hiddenErr[i] * hidden[i] * (1 - hidden[i])
		for j := range n.inputHidden[i] {
			n.inputHidden[i][j] += n.lr * g * in[j]
		}
	}
}

func TestMatchesThreeLayerFormulation(t *testing.T) {
	net := newTestNetwork(t, Topology{6, 5, 4}, 0.3)
	w := net.Weights()
	ref := &threeLayer{inputHidden: rows(w[0]), hiddenOutput: rows(w[1]), lr: 0.3}

	samples := []Sample{
		{Inputs: []float64{0.01, 0.2, 0.4, 0.6, 0.8, 1.0}, Targets: []float64{0.99, 0.01, 0.01, 0.01}},
		{Inputs: []float64{1.0, 0.8, 0.6, 0.4, 0.2, 0.01}, Targets: []float64{0.01, 0.01, 0.99, 0.01}},
		{Inputs: []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, Targets: []float64{0.01, 0.99, 0.01, 0.99}},
	}
	for epoch := 0; epoch < 20; epoch++ {
		for _, s := range samples {
			require.NoError(t, net.Train(s.Inputs, s.Targets))
			ref.train(s.Inputs, s.Targets)
		}
	}

	w = net.Weights()
	assert.InDeltaSlice(t, flatten(ref.inputHidden), w[0].RawMatrix().Data, 1e-12)
	assert.InDeltaSlice(t, flatten(ref.hiddenOutput), w[1].RawMatrix().Data, 1e-12)
	for _, s := range samples {
		assert.InDeltaSlice(t, ref.query(s.Inputs), mustQuery(t, net, s.Inputs), 1e-12)
	}
}

func flatten(m [][]float64) []float64 {
	var out []float64
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}
