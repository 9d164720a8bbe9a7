// mlp-server: serves a freshly initialized network over HTTP.
//
// Usage:
//
//	mlp-server --port=8080 --arch="784 100 10" --lr=0.3
package main

import (
	"flag"
	"fmt"
	"os"

	"mlpnet/mlp"
	"mlpnet/server"
	"mlpnet/utils"
)

var (
	port         = flag.String("port", "8080", "Listen port")
	arch         = flag.String("arch", "784 100 10", "Nodes per layer, input first")
	learningRate = flag.Float64("lr", 0.3, "Learning rate")
	initKind     = flag.String("init", "normal", "Weight initializer: normal, uniform")
	seed         = flag.Uint64("seed", 42, "Random seed")
	verbose      = flag.Bool("verbose", true, "Verbose output")
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
		Epochs:       1,
		Seed:         *seed,
	}
	if err := utils.ValidateConfig(&config); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	nc, err := config.NetworkConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	net, err := mlp.NewNetwork(nc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Building network: %v\n", err)
		os.Exit(1)
	}

	s := server.New(net)
	if err := s.Run(":" + *port); err != nil {
		fmt.Fprintf(os.Stderr, "Server stopped: %v\n", err)
		os.Exit(1)
	}
}
