package he

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
	"github.com/tuneinsight/lattigo/v5/he/hefloat"
	"gonum.org/v1/gonum/mat"
)

// Layout packs a rows×cols transition into ciphertext slots. Each row
// occupies a block of Width slots, Width being cols rounded up to a power
// of two, so a rotate-and-sum leaves the row's dot product at the first
// slot of its block.
type Layout struct {
	Rows, Cols int
	Width      int
	PerCt      int
}

func NewLayout(rows, cols, slots int) (Layout, error) {
	width := 1
	for width < cols {
		width *= 2
	}
	if width > slots {
		return Layout{}, fmt.Errorf("%d inputs padded to %d, %d slots: %w", cols, width, slots, ErrTooWide)
	}
	return Layout{Rows: rows, Cols: cols, Width: width, PerCt: slots / width}, nil
}

// Chunks is the number of ciphertexts the transition's output spans.
func (l Layout) Chunks() int {
	return (l.Rows + l.PerCt - 1) / l.PerCt
}

// EncryptInput encrypts x tiled once per block.
func (cs *CryptoSystem) EncryptInput(x []float64, l Layout) (*rlwe.Ciphertext, error) {
	if len(x) != l.Cols {
		return nil, fmt.Errorf("encrypting %d values for %d columns", len(x), l.Cols)
	}
	tiled := make([]float64, l.PerCt*l.Width)
	for b := 0; b < l.PerCt; b++ {
		copy(tiled[b*l.Width:], x)
	}

	pt := hefloat.NewPlaintext(cs.Params, cs.Params.MaxLevel())
	if err := cs.Encoder.Encode(tiled, pt); err != nil {
		return nil, fmt.Errorf("encoding input: %w", err)
	}
	ct, err := cs.Encryptor.EncryptNew(pt)
	if err != nil {
		return nil, fmt.Errorf("encrypting input: %w", err)
	}
	return ct, nil
}

// LinearHE computes w·x for an encrypted, tiled x. It only needs the
// evaluation keys; the result stays encrypted, one ciphertext per chunk.
func (cs *CryptoSystem) LinearHE(w mat.Matrix, ct *rlwe.Ciphertext, l Layout) ([]*rlwe.Ciphertext, error) {
	rows, cols := w.Dims()
	if rows != l.Rows || cols != l.Cols {
		return nil, fmt.Errorf("LinearHE: %dx%d weights for %dx%d layout", rows, cols, l.Rows, l.Cols)
	}

	out := make([]*rlwe.Ciphertext, l.Chunks())
	for c := range out {
		packed := make([]float64, l.PerCt*l.Width)
		for b := 0; b < l.PerCt; b++ {
			r := c*l.PerCt + b
			if r >= l.Rows {
				break
			}
			for j := 0; j < l.Cols; j++ {
				packed[b*l.Width+j] = w.At(r, j)
			}
		}

		pt := hefloat.NewPlaintext(cs.Params, ct.Level())
		if err := cs.Encoder.Encode(packed, pt); err != nil {
			return nil, fmt.Errorf("LinearHE: encode chunk %d: %w", c, err)
		}
		acc, err := cs.Evaluator.MulNew(ct, pt)
		if err != nil {
			return nil, fmt.Errorf("LinearHE: multiply chunk %d: %w", c, err)
		}
		if err := cs.Evaluator.Rescale(acc, acc); err != nil {
			return nil, fmt.Errorf("LinearHE: rescale chunk %d: %w", c, err)
		}
		for k := 1; k < l.Width; k *= 2 {
			rot, err := cs.Evaluator.RotateNew(acc, k)
			if err != nil {
				return nil, fmt.Errorf("LinearHE: rotate chunk %d by %d: %w", c, k, err)
			}
			if err := cs.Evaluator.Add(acc, rot, acc); err != nil {
				return nil, fmt.Errorf("LinearHE: add chunk %d: %w", c, err)
			}
		}
		out[c] = acc
	}
	return out, nil
}

// DecryptLinear reads one value per row back out of the chunks produced
// by LinearHE.
func (cs *CryptoSystem) DecryptLinear(cts []*rlwe.Ciphertext, l Layout) ([]float64, error) {
	if len(cts) != l.Chunks() {
		return nil, fmt.Errorf("decrypting %d chunks, layout has %d", len(cts), l.Chunks())
	}
	out := make([]float64, l.Rows)
	values := make([]complex128, cs.Slots())
	for c, ct := range cts {
		if err := cs.Encoder.Decode(cs.Decryptor.DecryptNew(ct), values); err != nil {
			return nil, fmt.Errorf("decoding chunk %d: %w", c, err)
		}
		for b := 0; b < l.PerCt; b++ {
			r := c*l.PerCt + b
			if r >= l.Rows {
				break
			}
			out[r] = real(values[b*l.Width])
		}
	}
	return out, nil
}
