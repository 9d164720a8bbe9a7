package he

import (
	"fmt"

	"mlpnet/mlp"
)

// EncryptedQuery answers net.Query(input) with the first transition
// evaluated on ciphertexts. The remaining transitions run in plaintext
// from the decrypted first hidden layer.
func EncryptedQuery(net *mlp.Network, cs *CryptoSystem, input []float64) ([]float64, error) {
	topology := net.Topology()
	if len(input) != topology.Inputs() {
		return nil, fmt.Errorf("encrypted query: %d values for %d inputs: %w", len(input), topology.Inputs(), mlp.ErrShapeMismatch)
	}

	w := net.Weights()[0]
	rows, cols := w.Dims()
	l, err := NewLayout(rows, cols, cs.Slots())
	if err != nil {
		return nil, fmt.Errorf("encrypted query: %w", err)
	}

	ct, err := cs.EncryptInput(input, l)
	if err != nil {
		return nil, fmt.Errorf("encrypted query: %w", err)
	}
	cts, err := cs.LinearHE(w, ct, l)
	if err != nil {
		return nil, fmt.Errorf("encrypted query: %w", err)
	}
	hidden, err := cs.DecryptLinear(cts, l)
	if err != nil {
		return nil, fmt.Errorf("encrypted query: %w", err)
	}

	act := net.Activator()
	for i, v := range hidden {
		hidden[i] = act.Activate(v)
	}
	return net.QueryFrom(1, hidden)
}
