package agent

import (
	"math"

	"ismcts/searcher"

	"golang.org/x/exp/rand"
)

// adjustTemperature sharpens the visit policy by 1/temperature and returns the
// probabilities in result order.
func adjustTemperature[A comparable, P comparable](result searcher.Result[A, P], temperature float64) []float64 {
	policy := result.Policy()
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(result.Stats))
	for i, s := range result.Stats {
		prob := math.Pow(policy[s.Action], exponent)
		sum += prob
		adjusted[i] = prob
	}
	if sum == 0 {
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample[A comparable, P comparable](result searcher.Result[A, P], temperature float64, rng *rand.Rand) A {
	probs := adjustTemperature(result, temperature)
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return result.Stats[i].Action
		}
	}
	return result.Stats[len(result.Stats)-1].Action // Fallback in case of rounding errors
}
