package experiments

import (
	"slices"

	"ismcts/experiments/metrics"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the rewards an agent collected over all of its games.
type Summary struct {
	Agent      int
	Games      int
	Wins       int
	MeanReward float64
	StdDev     float64
}

// Summarize returns one summary per agent, ordered by agent ID.
func Summarize(records []metrics.GameRecord) []Summary {
	rewards := map[int][]float64{}
	wins := map[int]int{}
	for _, r := range records {
		rewards[r.Agent1] = append(rewards[r.Agent1], r.Reward1)
		rewards[r.Agent2] = append(rewards[r.Agent2], r.Reward2)
		switch {
		case r.Reward1 > r.Reward2:
			wins[r.Agent1]++
		case r.Reward2 > r.Reward1:
			wins[r.Agent2]++
		}
	}

	summaries := make([]Summary, 0, len(rewards))
	for id, rs := range rewards {
		s := Summary{Agent: id, Games: len(rs), Wins: wins[id]}
		if len(rs) > 1 {
			s.MeanReward, s.StdDev = stat.MeanStdDev(rs, nil)
		} else {
			s.MeanReward = stat.Mean(rs, nil)
		}
		summaries = append(summaries, s)
	}
	slices.SortFunc(summaries, func(a, b Summary) int { return a.Agent - b.Agent })
	return summaries
}
