package stats

import (
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/hoop-analytics/internal/domain/game"
)

// periodTally accumulates regulation quarter points for one side of a set of games.
// A quarter's denominator is the number of games that reported that quarter.
type periodTally struct {
	sums   [game.RegulationQuarters]int
	counts [game.RegulationQuarters]int
}

func (t *periodTally) add(number, points int) {
	idx := number - 1
	t.sums[idx] += points
	t.counts[idx]++
}

func (t *periodTally) rounded() [game.RegulationQuarters]decimal.Decimal {
	var out [game.RegulationQuarters]decimal.Decimal
	for i := range out {
		out[i] = mean(t.sums[i], t.counts[i])
	}
	return out
}

func (t *periodTally) quarters() map[Period]float64 {
	rounded := t.rounded()
	out := make(map[Period]float64, len(quarterPeriods))
	for i, p := range quarterPeriods {
		out[p] = toFloat(rounded[i])
	}
	return out
}

// halves adds the rounded quarter averages. A half is 0 unless both of its
// quarters had at least one contributing game.
func (t *periodTally) halves() map[Period]float64 {
	rounded := t.rounded()
	out := map[Period]float64{H1: 0, H2: 0}
	if t.counts[0] > 0 && t.counts[1] > 0 {
		out[H1] = toFloat(rounded[0].Add(rounded[1]))
	}
	if t.counts[2] > 0 && t.counts[3] > 0 {
		out[H2] = toFloat(rounded[2].Add(rounded[3]))
	}
	return out
}

// regulation yields the regulation quarters of a game, at most one per number.
func regulation(quarters []game.Quarter) []game.Quarter {
	seen := [game.RegulationQuarters]bool{}
	out := make([]game.Quarter, 0, game.RegulationQuarters)
	for _, q := range quarters {
		if !q.IsRegulation() || seen[q.Number-1] {
			continue
		}
		seen[q.Number-1] = true
		out = append(out, q)
	}
	return out
}
