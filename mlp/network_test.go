package mlp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func newTestNetwork(t *testing.T, topology Topology, lr float64) *Network {
	t.Helper()
	net, err := NewNetwork(Config{
		Topology:     topology,
		LearningRate: lr,
		Src:          rand.NewSource(42),
	})
	require.NoError(t, err)
	return net
}

func sameWeights(a, b []*mat.Dense) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !mat.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestNewNetworkShapes(t *testing.T) {
	net := newTestNetwork(t, Topology{784, 100, 30, 10}, 0.3)

	weights := net.Weights()
	require.Len(t, weights, 3)
	want := [][2]int{{100, 784}, {30, 100}, {10, 30}}
	for i, w := range weights {
		r, c := w.Dims()
		assert.Equal(t, want[i], [2]int{r, c}, "transition %d", i)
	}
}

func TestNewNetworkInvalidTopology(t *testing.T) {
	for _, topology := range []Topology{
		nil,
		{3},
		{3, 2},
		{3, 0, 2},
		{0, 3, 2},
		{3, 2, -1},
	} {
		_, err := NewNetwork(Config{Topology: topology, LearningRate: 0.1})
		assert.ErrorIs(t, err, ErrInvalidTopology, "topology %v", topology)
	}
}

func TestNewNetworkInvalidLearningRate(t *testing.T) {
	for _, lr := range []float64{0, -0.5, math.NaN(), math.Inf(1)} {
		_, err := NewNetwork(Config{Topology: Topology{2, 2, 2}, LearningRate: lr})
		assert.ErrorIs(t, err, ErrInvalidLearningRate, "learning rate %v", lr)
	}
}

func TestNewNetworkCopiesTopology(t *testing.T) {
	topology := Topology{3, 4, 2}
	net := newTestNetwork(t, topology, 0.1)
	topology[1] = 99

	assert.Equal(t, Topology{3, 4, 2}, net.Topology())
	got := net.Topology()
	got[0] = 7
	assert.Equal(t, Topology{3, 4, 2}, net.Topology())
}

func TestQueryShape(t *testing.T) {
	for _, topology := range []Topology{{1, 1, 1}, {5, 4, 3}, {2, 8, 8, 8, 1}, {10, 3, 12}} {
		net := newTestNetwork(t, topology, 0.1)
		input := make([]float64, topology.Inputs())
		for i := range input {
			input[i] = float64(i+1) / float64(len(input)+1)
		}

		out, err := net.Query(input)
		require.NoError(t, err)
		assert.Len(t, out, topology.Outputs())
		for _, v := range out {
			assert.True(t, v > 0 && v < 1, "sigmoid output %v out of range", v)
		}

		before := net.Weights()
		for _, n := range []int{0, topology.Inputs() - 1, topology.Inputs() + 1} {
			if n == topology.Inputs() {
				continue
			}
			_, err := net.Query(make([]float64, n))
			assert.ErrorIs(t, err, ErrShapeMismatch)
		}
		assert.True(t, sameWeights(before, net.Weights()))
	}
}

func TestQueryDeterministic(t *testing.T) {
	net := newTestNetwork(t, Topology{5, 4, 3}, 0.5)
	input := []float64{0.1, 0.3, 0.5, 0.7, 0.9}

	first, err := net.Query(input)
	require.NoError(t, err)
	second, err := net.Query(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQueryDoesNotAliasInput(t *testing.T) {
	net := newTestNetwork(t, Topology{3, 3, 3}, 0.5)
	input := []float64{0.2, 0.4, 0.6}
	want, err := net.Query(input)
	require.NoError(t, err)

	require.NoError(t, net.Train(input, []float64{0.9, 0.1, 0.5}))
	assert.Equal(t, []float64{0.2, 0.4, 0.6}, input)
	assert.NotEqual(t, want, mustQuery(t, net, input))
}

func TestInvalidInputLeavesNetworkUntouched(t *testing.T) {
	net := newTestNetwork(t, Topology{3, 3, 3}, 0.3)
	input := []float64{0.1, 0.2, 0.3}
	before := mustQuery(t, net, input)
	weights := net.Weights()

	_, err := net.Query([]float64{0.1, 0.2})
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.True(t, sameWeights(weights, net.Weights()))
	assert.Equal(t, before, mustQuery(t, net, input))
}

func TestTrainShapeMismatch(t *testing.T) {
	net := newTestNetwork(t, Topology{3, 3, 2}, 0.3)
	weights := net.Weights()

	err := net.Train([]float64{0.1, 0.2}, []float64{0.5, 0.5})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	err = net.Train([]float64{0.1, 0.2, 0.3}, []float64{0.5, 0.5, 0.5})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	err = net.Train(nil, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	assert.True(t, sameWeights(weights, net.Weights()))
}

func TestTrainMovesTowardsTarget(t *testing.T) {
	net := newTestNetwork(t, Topology{5, 4, 3}, 0.5)
	input := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	expected := []float64{0.01, 0.98, 0.01}

	before, err := net.SquaredError(input, expected)
	require.NoError(t, err)
	require.NoError(t, net.Train(input, expected))
	after, err := net.SquaredError(input, expected)
	require.NoError(t, err)

	assert.Less(t, after, before)
}

func TestTrainConvergesMonotonically(t *testing.T) {
	for _, topology := range []Topology{{5, 4, 3}, {5, 6, 6, 3}} {
		net := newTestNetwork(t, topology, 0.1)
		input := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
		expected := []float64{0.01, 0.98, 0.01}

		prev, err := net.SquaredError(input, expected)
		require.NoError(t, err)
		first := prev
		for i := 0; i < 50; i++ {
			require.NoError(t, net.Train(input, expected))
			cur, err := net.SquaredError(input, expected)
			require.NoError(t, err)
			assert.LessOrEqual(t, cur, prev+1e-12, "topology %v iteration %d", topology, i)
			prev = cur
		}
		assert.Less(t, prev, first)
	}
}

func TestTrainUpdatesEveryTransitionOnly(t *testing.T) {
	topology := Topology{4, 5, 6, 3}
	net := newTestNetwork(t, topology, 0.4)
	before := net.Weights()

	require.NoError(t, net.Train([]float64{0.9, 0.1, 0.5, 0.3}, []float64{0.99, 0.01, 0.5}))

	after := net.Weights()
	require.Len(t, after, len(before))
	for i := range before {
		br, bc := before[i].Dims()
		ar, ac := after[i].Dims()
		assert.Equal(t, [2]int{br, bc}, [2]int{ar, ac})
		assert.False(t, mat.Equal(before[i], after[i]), "transition %d unchanged", i)
	}
	assert.Equal(t, topology, net.Topology())
	assert.Equal(t, 0.4, net.LearningRate())
}

func TestWeightsAreCopies(t *testing.T) {
	net := newTestNetwork(t, Topology{2, 2, 2}, 0.1)
	w := net.Weights()
	w[0].Set(0, 0, 1000)

	assert.NotEqual(t, 1000.0, net.Weights()[0].At(0, 0))
}

func TestSetWeights(t *testing.T) {
	net := newTestNetwork(t, Topology{2, 3, 1}, 0.1)
	original := net.Weights()

	err := net.SetWeights([]*mat.Dense{mat.NewDense(3, 2, nil)})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	err = net.SetWeights([]*mat.Dense{mat.NewDense(3, 2, nil), mat.NewDense(3, 1, nil)})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.True(t, sameWeights(original, net.Weights()))

	zeros := []*mat.Dense{mat.NewDense(3, 2, nil), mat.NewDense(1, 3, nil)}
	require.NoError(t, net.SetWeights(zeros))
	out := mustQuery(t, net, []float64{0.3, 0.7})
	assert.Equal(t, []float64{0.5}, out)

	zeros[1].Set(0, 0, 5)
	assert.Equal(t, []float64{0.5}, mustQuery(t, net, []float64{0.3, 0.7}))
}

func TestQueryFrom(t *testing.T) {
	net := newTestNetwork(t, Topology{4, 3, 5, 2}, 0.2)
	input := []float64{0.4, 0.1, 0.8, 0.6}

	full := mustQuery(t, net, input)
	fromZero, err := net.QueryFrom(0, input)
	require.NoError(t, err)
	assert.Equal(t, full, fromZero)

	hidden := net.feedForward(vector(input))[1]
	fromHidden, err := net.QueryFrom(1, toSlice(hidden))
	require.NoError(t, err)
	assert.InDeltaSlice(t, full, fromHidden, 1e-15)

	last, err := net.QueryFrom(3, []float64{0.25, 0.75})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.75}, last)

	_, err = net.QueryFrom(1, input)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = net.QueryFrom(4, input)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = net.QueryFrom(-1, input)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSeededNetworksMatch(t *testing.T) {
	a := newTestNetwork(t, Topology{6, 4, 2}, 0.3)
	b := newTestNetwork(t, Topology{6, 4, 2}, 0.3)
	assert.True(t, sameWeights(a.Weights(), b.Weights()))
}

func mustQuery(t *testing.T, net *Network, input []float64) []float64 {
	t.Helper()
	out, err := net.Query(input)
	require.NoError(t, err)
	return out
}
