package mlp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Sample is one labelled example.
type Sample struct {
	Inputs  []float64
	Targets []float64
}

type EpochResult struct {
	Trained int
	Skipped int
	// Errors holds one entry per skipped sample, in order.
	Errors []error
}

// TrainEpoch calls Train once per sample. Malformed samples are skipped
// and reported rather than aborting the epoch.
func (net *Network) TrainEpoch(samples []Sample) EpochResult {
	var res EpochResult
	for i, s := range samples {
		if err := net.Train(s.Inputs, s.Targets); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("sample %d: %w", i, err))
			continue
		}
		res.Trained++
	}
	return res
}

// Predict returns the index of the strongest output node.
func (net *Network) Predict(input []float64) (int, error) {
	out, err := net.Query(input)
	if err != nil {
		return 0, err
	}
	return floats.MaxIdx(out), nil
}

// SquaredError returns Σ(expected - Query(input))².
func (net *Network) SquaredError(input, expected []float64) (float64, error) {
	if err := net.checkLayer(len(net.topology)-1, expected); err != nil {
		return 0, fmt.Errorf("squared error: expected: %w", err)
	}
	out, err := net.Query(input)
	if err != nil {
		return 0, err
	}
	d := floats.Distance(expected, out, 2)
	return d * d, nil
}

// Evaluate returns the percentage of samples whose prediction matches the
// argmax of their targets. Malformed samples are excluded from the total.
func (net *Network) Evaluate(samples []Sample) (accuracy float64, skipped int) {
	var correct, total int
	for _, s := range samples {
		if len(s.Targets) != net.topology.Outputs() {
			skipped++
			continue
		}
		got, err := net.Predict(s.Inputs)
		if err != nil {
			skipped++
			continue
		}
		total++
		if got == floats.MaxIdx(s.Targets) {
			correct++
		}
	}
	if total == 0 {
		return 0, skipped
	}
	return 100 * float64(correct) / float64(total), skipped
}

// OneHot returns a target vector of length classes holding 0.99 at label
// and 0.01 elsewhere, keeping targets inside the sigmoid's open range.
func OneHot(label, classes int) ([]float64, error) {
	if label < 0 || label >= classes {
		return nil, fmt.Errorf("label %d outside [0, %d)", label, classes)
	}
	t := make([]float64, classes)
	for i := range t {
		t[i] = 0.01
	}
	t[label] = 0.99
	return t, nil
}

// Normalize maps raw values in [0, max] onto [0.01, 1.0].
func Normalize(raw []float64, max float64) []float64 {
	out := make([]float64, len(raw))
	for i, x := range raw {
		out[i] = x/max*0.99 + 0.01
	}
	return out
}
