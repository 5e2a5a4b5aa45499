package math

import (
	"math"
)

// SteepeningFactor is the slope constant of the steepened sigmoid, matched to
// the classic NEAT implementation so that a weight of 1.0 on a single active
// input drives the output close to saturation.
const SteepeningFactor = 4.924273

// Activate computes the network's single fixed node activation function: a
// steepened sigmoid squashing (-Inf, +Inf) to (0, 1). Every NNode in a
// decoded network uses this function - there is no per-node activation
// choice.
func Activate(input float64) float64 {
	return 1.0 / (1.0 + math.Exp(-SteepeningFactor*input))
}
