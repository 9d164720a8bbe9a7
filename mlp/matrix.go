package mlp

import "gonum.org/v1/gonum/mat"

func dot(m mat.Matrix, v mat.Vector) *mat.VecDense {
	r, _ := m.Dims()
	o := mat.NewVecDense(r, nil)
	o.MulVec(m, v)
	return o
}

func multiply(u, v mat.Vector) *mat.VecDense {
	o := mat.NewVecDense(u.Len(), nil)
	o.MulElemVec(u, v)
	return o
}

func subtract(u, v mat.Vector) *mat.VecDense {
	o := mat.NewVecDense(u.Len(), nil)
	o.SubVec(u, v)
	return o
}

// vector copies data so the caller's slice is never aliased by the network.
func vector(data []float64) *mat.VecDense {
	return mat.NewVecDense(len(data), append([]float64(nil), data...))
}

func toSlice(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
