// Package benchmark provides the microbenchmark helper behind
// Logger.Measure. It times a block over a number of iterations and reports
// the mean duration and the relative standard deviation. Pure computation;
// rendering and dispatch stay with the caller.
package benchmark

import (
	"math"
	"time"
)

// Run executes block iterations times and returns the mean duration per
// iteration and the relative standard deviation in percent
// (stddev / mean * 100). Zero or negative iterations, or a nil block,
// yield (0, 0).
func Run(iterations int, block func()) (avg time.Duration, rsd float64) {
	if iterations <= 0 || block == nil {
		return 0, 0
	}

	samples := make([]time.Duration, iterations)
	for i := range samples {
		start := time.Now()
		block()
		samples[i] = time.Since(start)
	}

	var total time.Duration
	for _, s := range samples {
		total += s
	}
	mean := float64(total) / float64(iterations)

	var sq float64
	for _, s := range samples {
		d := float64(s) - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(iterations))

	if mean > 0 {
		rsd = std / mean * 100
	}
	return time.Duration(mean), rsd
}
