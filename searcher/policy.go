package searcher

import "math"

// DefaultExploration is the UCB1 exploration constant C.
const DefaultExploration = math.Sqrt2

type ucb struct {
	c    float64
	logN float64
}

// newUCB prepares the exploration term for a parent seen N times. N is the parent's
// visit count, or the action's availability count in information set search.
func newUCB(c float64, N float64) ucb {
	if N <= 0 {
		panic("N must be positive")
	}
	return ucb{c: c, logN: math.Log(N)}
}

// evaluate returns mean + C*sqrt(ln(N)/n). Unvisited children come first.
func (u ucb) evaluate(reward float64, n float64) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	return reward/n + u.c*math.Sqrt(u.logN/n)
}
