// mlp-train: trains a network on synthetic prototype data and reports
// per-epoch loss and accuracy.
//
// Usage:
//
//	mlp-train --arch="64 32 10" --epochs=10 --lr=0.3 --init=normal
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"mlpnet/he"
	"mlpnet/mlp"
	"mlpnet/utils"
)

var (
	arch         = flag.String("arch", "64 32 10", "Nodes per layer, input first")
	epochs       = flag.Int("epochs", 5, "Number of training epochs")
	learningRate = flag.Float64("lr", 0.3, "Learning rate")
	initKind     = flag.String("init", "normal", "Weight initializer: normal, uniform")
	samples      = flag.Int("samples", 500, "Number of synthetic samples")
	seed         = flag.Uint64("seed", 42, "Random seed")
	verbose      = flag.Bool("verbose", true, "Verbose output")
	encrypted    = flag.Bool("encrypted", false, "Also evaluate the test split with encrypted queries")
	logN         = flag.Int("logN", he.DefaultLogN, "Ring dimension log2 for encrypted queries")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	architecture, err := utils.ParseArchitecture(*arch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid architecture: %v\n", err)
		os.Exit(1)
	}
	config := utils.Config{
		Architecture: architecture,
		LearningRate: *learningRate,
		Init:         *initKind,
		Epochs:       *epochs,
		Samples:      *samples,
		Seed:         *seed,
	}
	if err := utils.ValidateConfig(&config); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration:\n")
	fmt.Printf("  Architecture:  %v\n", config.Architecture)
	fmt.Printf("  Epochs:        %d\n", config.Epochs)
	fmt.Printf("  Learning Rate: %.4f\n", config.LearningRate)
	fmt.Printf("  Initializer:   %s\n", config.Init)
	fmt.Printf("  Samples:       %d\n", config.Samples)
	fmt.Printf("  Encrypted:     %v\n", *encrypted)
	fmt.Println()

	stats := &utils.TimingStats{}
	totalStart := time.Now()

	var net *mlp.Network
	utils.Time(&stats.ModelInitTime, func() {
		var nc mlp.Config
		if nc, err = config.NetworkConfig(); err == nil {
			net, err = mlp.NewNetwork(nc)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Building network: %v\n", err)
		os.Exit(1)
	}

	data := generateData(config, rand.New(rand.NewSource(config.Seed+1)))
	split := len(data) * 4 / 5
	train, test := data[:split], data[split:]
	utils.Logf("Generated %d training and %d test samples", len(train), len(test))

	for epoch := 1; epoch <= config.Epochs; epoch++ {
		epochStart := time.Now()
		var res mlp.EpochResult
		utils.Time(&stats.TrainTime, func() { res = net.TrainEpoch(train) })
		stats.TrainSteps += res.Trained
		for _, err := range res.Errors {
			fmt.Fprintf(os.Stderr, "Skipped: %v\n", err)
		}

		var loss []float64
		var accuracy float64
		utils.Time(&stats.QueryTime, func() {
			for _, s := range test {
				if l, err := net.SquaredError(s.Inputs, s.Targets); err == nil {
					loss = append(loss, l)
				}
			}
			accuracy, _ = net.Evaluate(test)
		})
		stats.Queries += 2 * len(test)

		utils.Logf("Epoch %d/%d | Loss: %.6f | Accuracy: %.2f%% | Time: %.2fs",
			epoch, config.Epochs, stat.Mean(loss, nil), accuracy, time.Since(epochStart).Seconds())
	}

	if *encrypted {
		if err := evaluateEncrypted(net, test, stats); err != nil {
			fmt.Fprintf(os.Stderr, "Encrypted evaluation: %v\n", err)
			os.Exit(1)
		}
	}

	stats.TotalTime = time.Since(totalStart)
	fmt.Printf("\nTraining complete! Total time: %.2fs\n", stats.TotalTime.Seconds())
	utils.PrintTimingStats(stats)
}

// generateData draws one prototype per class in raw [0, 255] units and
// scatters samples around it, normalized into [0.01, 1.0].
func generateData(config utils.Config, rng *rand.Rand) []mlp.Sample {
	inputs := config.Architecture[0]
	classes := config.Architecture[len(config.Architecture)-1]

	prototypes := make([][]float64, classes)
	for c := range prototypes {
		prototypes[c] = make([]float64, inputs)
		for j := range prototypes[c] {
			prototypes[c][j] = rng.Float64() * 255
		}
	}

	data := make([]mlp.Sample, config.Samples)
	raw := make([]float64, inputs)
	for i := range data {
		label := rng.Intn(classes)
		for j := range raw {
			raw[j] = math.Max(0, math.Min(255, prototypes[label][j]+rng.NormFloat64()*40))
		}
		targets, _ := mlp.OneHot(label, classes)
		data[i] = mlp.Sample{Inputs: mlp.Normalize(raw, 255), Targets: targets}
	}
	return data
}

func evaluateEncrypted(net *mlp.Network, test []mlp.Sample, stats *utils.TimingStats) error {
	var cs *he.CryptoSystem
	var err error
	utils.Logf("Initializing HE context...")
	utils.Time(&stats.HEInitTime, func() { cs, err = he.NewCryptoSystem(*logN) })
	if err != nil {
		return err
	}

	var correct, maxDiff float64
	for i, s := range test {
		var out []float64
		utils.Time(&stats.EncryptedQueryTime, func() { out, err = he.EncryptedQuery(net, cs, s.Inputs) })
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		stats.EncryptedQueries++

		plain, qerr := net.Query(s.Inputs)
		if qerr != nil {
			return fmt.Errorf("sample %d: %w", i, qerr)
		}
		best := 0
		for j := range out {
			maxDiff = math.Max(maxDiff, math.Abs(out[j]-plain[j]))
			if out[j] > out[best] {
				best = j
			}
		}
		if s.Targets[best] > 0.5 {
			correct++
		}
	}
	utils.Logf("Encrypted accuracy: %.2f%% | max deviation from plaintext: %.2e",
		100*correct/float64(len(test)), maxDiff)
	return nil
}
