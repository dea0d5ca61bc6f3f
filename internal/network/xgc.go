package network

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/model"
)

// XGCOptions controls which possessions contribute xG.
type XGCOptions struct {
	// GoalsOnly restricts attribution to possessions ending in a goal.
	// By default every possession containing a shot contributes.
	GoalsOnly bool
}

type possessionKey struct {
	matchID    string
	possession int
}

// PassXGC attributes the xG of each shot possession to the passes in it.
//
// For a possession with total xg X and N events carrying a pass recipient,
// a (passer, recipient) pair with n such events receives X*n/N. Possessions
// with N == 0 contribute nothing. Contributions are summed across
// possessions and returned sorted by passer, then recipient.
func PassXGC(evs []model.Event, opts XGCOptions) []model.DirectedXGC {
	shotPossessions := make(map[possessionKey]struct{})
	for _, e := range evs {
		if e.Type != events.TypeShot {
			continue
		}
		if opts.GoalsOnly && e.Outcome != events.OutcomeGoal {
			continue
		}
		shotPossessions[possessionKey{e.MatchID, e.Possession}] = struct{}{}
	}

	type possessionAccum struct {
		xgs    []float64
		passes map[directedKey]int
		total  int
	}
	byPossession := make(map[possessionKey]*possessionAccum, len(shotPossessions))
	var order []possessionKey
	for _, e := range evs {
		k := possessionKey{e.MatchID, e.Possession}
		if _, ok := shotPossessions[k]; !ok {
			continue
		}
		pa := byPossession[k]
		if pa == nil {
			pa = &possessionAccum{passes: make(map[directedKey]int)}
			byPossession[k] = pa
			order = append(order, k)
		}
		pa.xgs = append(pa.xgs, e.XG)
		if e.Player != "" && e.Recipient != "" {
			pa.passes[directedKey{e.Player, e.Recipient}]++
			pa.total++
		}
	}

	sums := make(map[directedKey]float64)
	for _, k := range order {
		pa := byPossession[k]
		if pa.total == 0 {
			continue
		}
		share := floats.Sum(pa.xgs) / float64(pa.total)
		for dk, n := range pa.passes {
			sums[dk] += share * float64(n)
		}
	}

	out := make([]model.DirectedXGC, 0, len(sums))
	for dk, v := range sums {
		out = append(out, model.DirectedXGC{Passer: dk.from, Recipient: dk.to, XGC: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Passer != out[j].Passer {
			return out[i].Passer < out[j].Passer
		}
		return out[i].Recipient < out[j].Recipient
	})
	return out
}

// PairXGC sums the directed xG contributions of every lineup pair in both
// directions. Pairs with no contribution are included with zero.
func PairXGC(evs []model.Event, lineup model.Lineup, opts XGCOptions) []model.PairXGC {
	directed := make(map[directedKey]float64)
	for _, d := range PassXGC(evs, opts) {
		directed[directedKey{d.Passer, d.Recipient}] = d.XGC
	}

	combs := Combinations(lineup)
	out := make([]model.PairXGC, len(combs))
	for i, c := range combs {
		out[i] = model.PairXGC{
			Pair: c,
			XGC:  directed[directedKey{c.Player1, c.Player2}] + directed[directedKey{c.Player2, c.Player1}],
		}
	}
	return out
}
