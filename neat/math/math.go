// Package math defines standard mathematical primitives used by the NEAT algorithm as well as utility functions
package math

import (
	"math/rand"
)

// SingleRouletteThrow Performs a single thrown onto a roulette wheel where the wheel's space is unevenly divided.
// The probability that a segment will be selected is given by that segment's value in the probabilities array.
// Returns segment index or -1 if something goes awfully wrong. Draws from rng exclusively - the caller's
// driver-owned generator - so that no sampling site ever touches package-level math/rand state.
func SingleRouletteThrow(rng *rand.Rand, probabilities []float64) int {
	total := 0.0

	// collect all probabilities
	for _, v := range probabilities {
		total += v
	}

	// throw the ball and collect result
	throwValue := rng.Float64() * total

	accumulator := 0.0
	for i, v := range probabilities {
		accumulator += v
		if throwValue <= accumulator {
			return i
		}
	}
	return -1
}
