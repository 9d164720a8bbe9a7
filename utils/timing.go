package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics and progress are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where timing statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// Logf writes a formatted progress line to Output when Verbose is set.
func Logf(format string, args ...any) {
	if !Verbose {
		return
	}
	fmt.Fprintf(Output, format+"\n", args...)
}

// TimingStats holds timing information for different operations
type TimingStats struct {
	TotalTime          time.Duration
	ModelInitTime      time.Duration
	TrainTime          time.Duration
	QueryTime          time.Duration
	HEInitTime         time.Duration
	EncryptedQueryTime time.Duration
	TrainSteps         int
	Queries            int
	EncryptedQueries   int
}

// Time runs fn and adds its duration to *d.
func Time(d *time.Duration, fn func()) {
	start := time.Now()
	fn()
	*d += time.Since(start)
}

func percent(part, total time.Duration) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func average(total time.Duration, n int) time.Duration {
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}

// PrintTimingStats prints detailed timing statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total time: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "Train steps: %d\n", stats.TrainSteps)
	fmt.Fprintf(Output, "Queries: %d (encrypted: %d)\n", stats.Queries, stats.EncryptedQueries)
	fmt.Fprintln(Output, "\nBreakdown by operation:")
	fmt.Fprintf(Output, "  Model initialization: %v (%.1f%%)\n", stats.ModelInitTime, percent(stats.ModelInitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Training: %v (%.1f%%)\n", stats.TrainTime, percent(stats.TrainTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Queries: %v (%.1f%%)\n", stats.QueryTime, percent(stats.QueryTime, stats.TotalTime))
	fmt.Fprintf(Output, "  HE initialization: %v (%.1f%%)\n", stats.HEInitTime, percent(stats.HEInitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Encrypted queries: %v (%.1f%%)\n", stats.EncryptedQueryTime, percent(stats.EncryptedQueryTime, stats.TotalTime))
	fmt.Fprintln(Output, "\nPerformance metrics:")
	fmt.Fprintf(Output, "  Average train step: %v\n", average(stats.TrainTime, stats.TrainSteps))
	fmt.Fprintf(Output, "  Average query: %v\n", average(stats.QueryTime, stats.Queries))
	fmt.Fprintf(Output, "  Average encrypted query: %v\n", average(stats.EncryptedQueryTime, stats.EncryptedQueries))
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
