package mlp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activator is an elementwise nonlinearity applied after every transition.
// Deactivate is its derivative, expressed in terms of the activated values
// so the backward pass can reuse the outputs recorded on the way forward.
type Activator interface {
	Activate(sum float64) float64
	Deactivate(out mat.Vector) *mat.VecDense
	fmt.Stringer
}

var ActivatorLookup = map[string]Activator{
	"sigmoid": Sigmoid{},
}

type Sigmoid struct{}

func (s Sigmoid) Activate(sum float64) float64 {
	return 1.0 / (1.0 + math.Exp(-sum))
}

// Deactivate returns out ⊙ (1 - out).
func (s Sigmoid) Deactivate(out mat.Vector) *mat.VecDense {
	n := out.Len()
	d := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := out.AtVec(i)
		d.SetVec(i, v*(1-v))
	}
	return d
}

func (s Sigmoid) String() string {
	return "sigmoid"
}

// activate overwrites every component of v with a(v_i).
func activate(a Activator, v *mat.VecDense) {
	for i := 0; i < v.Len(); i++ {
		v.SetVec(i, a.Activate(v.AtVec(i)))
	}
}
