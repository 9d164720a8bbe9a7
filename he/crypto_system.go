// Package he evaluates the first transition of an mlp.Network under CKKS
// encryption. The client encrypts its input, the weights stay in plaintext
// on the evaluating side, and only the decrypted pre-activation of the first
// hidden layer is ever seen in the clear.
package he

import (
	"errors"
	"fmt"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
	"github.com/tuneinsight/lattigo/v5/he/hefloat"
)

// DefaultLogN gives 4096 slots.
const DefaultLogN = 13

var ErrTooWide = errors.New("layer does not fit in one ciphertext")

type CryptoSystem struct {
	Params    hefloat.Parameters
	Encoder   *hefloat.Encoder
	Encryptor *rlwe.Encryptor
	Decryptor *rlwe.Decryptor
	Evaluator *hefloat.Evaluator
}

// NewCryptoSystem generates a fresh key pair with one multiplicative level
// and Galois keys for every power-of-two rotation up to the slot count.
func NewCryptoSystem(logN int) (*CryptoSystem, error) {
	params, err := hefloat.NewParametersFromLiteral(
		hefloat.ParametersLiteral{
			LogN:            logN,
			LogQ:            []int{55, 40},
			LogP:            []int{45},
			LogDefaultScale: 40,
		})
	if err != nil {
		return nil, fmt.Errorf("CKKS parameters: %w", err)
	}

	kgen := hefloat.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPairNew()
	rlk := kgen.GenRelinearizationKeyNew(sk)

	var galEls []uint64
	for k := 1; k < params.MaxSlots(); k *= 2 {
		galEls = append(galEls, params.GaloisElement(k))
	}
	evk := rlwe.NewMemEvaluationKeySet(rlk, kgen.GenGaloisKeysNew(galEls, sk)...)

	return &CryptoSystem{
		Params:    params,
		Encoder:   hefloat.NewEncoder(params),
		Encryptor: hefloat.NewEncryptor(params, pk),
		Decryptor: hefloat.NewDecryptor(params, sk),
		Evaluator: hefloat.NewEvaluator(params, evk),
	}, nil
}

// Slots is the number of values packed into one ciphertext.
func (cs *CryptoSystem) Slots() int {
	return cs.Params.MaxSlots()
}
