package mlp

import "gonum.org/v1/gonum/mat"

// feedForward returns the output of every layer, layers[0] being input.
func (net *Network) feedForward(input *mat.VecDense) []*mat.VecDense {
	layers := make([]*mat.VecDense, len(net.topology))
	layers[0] = input
	for i, w := range net.weights {
		layers[i+1] = net.apply(w, layers[i])
	}
	return layers
}

// propagate returns the final layer only, starting from the output of layer from.
func (net *Network) propagate(from int, out *mat.VecDense) *mat.VecDense {
	for i := from; i < len(net.weights); i++ {
		out = net.apply(net.weights[i], out)
	}
	return out
}

func (net *Network) apply(w mat.Matrix, in mat.Vector) *mat.VecDense {
	out := dot(w, in)
	activate(net.activator, out)
	return out
}
