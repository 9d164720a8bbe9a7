package mlp

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// InitKind selects the distribution initial weights are drawn from.
type InitKind int

const (
	// Normal draws from N(0, rows^-0.5), rows being the destination layer size.
	Normal InitKind = iota
	// Uniform draws from U[-0.5, 0.5].
	Uniform
)

func (k InitKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Uniform:
		return "uniform"
	default:
		return fmt.Sprintf("InitKind(%d)", int(k))
	}
}

// ParseInitKind maps "normal" or "uniform" (case-insensitive) to its InitKind.
func ParseInitKind(s string) (InitKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return Normal, nil
	case "uniform":
		return Uniform, nil
	}
	return 0, fmt.Errorf("unknown initializer %q", s)
}

// Initialize returns a rows×cols matrix with entries drawn independently
// from the distribution selected by kind, consuming src.
func Initialize(rows, cols int, kind InitKind, src rand.Source) (*mat.Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("initializing %dx%d weights: %w", rows, cols, ErrInvalidTopology)
	}

	var dist distuv.Rander
	switch kind {
	case Normal:
		dist = distuv.Normal{Mu: 0, Sigma: math.Pow(float64(rows), -0.5), Src: src}
	case Uniform:
		dist = distuv.Uniform{Min: -0.5, Max: 0.5, Src: src}
	default:
		return nil, fmt.Errorf("initializing weights: unknown kind %v", kind)
	}

	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(rows, cols, data), nil
}
