// Package network builds pass networks: per-pair completed pass counts,
// xG contribution of passes in shot possessions, and average player
// locations from touch events.
package network

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/frasere/matchreport/internal/colorscale"
	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/model"
)

// Combinations returns every unordered pair of unique lineup players, in
// lineup order: (p[i], p[j]) for all i < j.
func Combinations(lineup model.Lineup) []model.Pair {
	players := lineup.Players()
	var out []model.Pair
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			out = append(out, model.Pair{Player1: players[i], Player2: players[j]})
		}
	}
	return out
}

type directedKey struct{ from, to string }

// points collects pitch locations for averaging.
type points struct{ xs, ys []float64 }

func (p *points) add(pt model.Point) {
	p.xs = append(p.xs, pt.X)
	p.ys = append(p.ys, pt.Y)
}

// mean reports false when no location was added.
func (p *points) mean() (model.Point, bool) {
	if p == nil || len(p.xs) == 0 {
		return model.Point{}, false
	}
	return model.Point{X: stat.Mean(p.xs, nil), Y: stat.Mean(p.ys, nil)}, true
}

// AverageLocations returns the mean touch location of every player with at
// least one located touch event, together with the touch count and the xG
// summed over all of the player's events. Touches without a location count
// towards TouchCount but not the mean. XGColor is taken from cm normalised
// over the min/max player xG. Results are sorted by player name.
func AverageLocations(evs []model.Event, touches events.TouchSet, cm *colorscale.Colormap) []model.PlayerLocation {
	type accum struct {
		locs    points
		touches int
	}
	acc := make(map[string]*accum)
	xg := make(map[string][]float64)
	for _, e := range evs {
		if e.Player == "" {
			continue
		}
		xg[e.Player] = append(xg[e.Player], e.XG)
		if !touches.IsTouch(e) {
			continue
		}
		a := acc[e.Player]
		if a == nil {
			a = &accum{}
			acc[e.Player] = a
		}
		a.touches++
		if e.HasLocation {
			a.locs.add(e.Location)
		}
	}

	out := make([]model.PlayerLocation, 0, len(acc))
	for player, a := range acc {
		loc, ok := a.locs.mean()
		if !ok {
			continue
		}
		out = append(out, model.PlayerLocation{
			Player:     player,
			Location:   loc,
			TouchCount: a.touches,
			XG:         floats.Sum(xg[player]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Player < out[j].Player })

	if cm != nil {
		vals := make([]float64, len(out))
		for i := range out {
			vals[i] = out[i].XG
		}
		lo, hi := colorscale.MinMax(vals)
		for i, c := range colorscale.Linear(vals, cm, lo, hi) {
			out[i].XGColor = c
		}
	}
	return out
}

// PassCounts returns, for every lineup pair, the number of passes from
// Player1 to Player2 plus those from Player2 to Player1. Pairs with no
// passes are included with a zero count.
func PassCounts(passes []model.Event, lineup model.Lineup) []model.PairCount {
	directed := make(map[directedKey]int)
	for _, p := range passes {
		if p.Player == "" || p.Recipient == "" {
			continue
		}
		directed[directedKey{p.Player, p.Recipient}]++
	}

	combs := Combinations(lineup)
	out := make([]model.PairCount, len(combs))
	for i, c := range combs {
		out[i] = model.PairCount{
			Pair:  c,
			Count: directed[directedKey{c.Player1, c.Player2}] + directed[directedKey{c.Player2, c.Player1}],
		}
	}
	return out
}
