package network

import (
	"fmt"
	"sort"

	"github.com/frasere/matchreport/internal/colorscale"
	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/model"
)

// Input is everything Build needs for one team.
type Input struct {
	Team   string
	Period int // informational; Events should already be filtered

	// Events are the team's cleaned events.
	Events []model.Event
	// Passes are the completed passes to count. Nil means
	// events.CompletedPasses(Events).
	Passes []model.Event
	Lineup model.Lineup

	Touches events.TouchSet
	XGC     XGCOptions
}

// Build assembles the pass network for in.
//
// Pairs with at least one completed pass or a positive xG contribution are
// kept, missing values being zero. Pairs where either player has no touch
// location are dropped. Edge colours come from cm normalised over the
// min/max edge xGC. Edges follow lineup pair order.
func Build(in Input, cm *colorscale.Colormap) (model.Network, error) {
	if cm == nil {
		return model.Network{}, fmt.Errorf("build network: nil colormap")
	}
	if len(in.Lineup.Players()) < 2 {
		return model.Network{}, fmt.Errorf("build network: lineup for %q has fewer than two players", in.Team)
	}
	touches := in.Touches
	if touches == nil {
		touches = events.NewTouchSet(nil)
	}
	passes := in.Passes
	if passes == nil {
		passes = events.CompletedPasses(in.Events)
	}

	counts := PassCounts(passes, in.Lineup)
	xgcs := PairXGC(in.Events, in.Lineup, in.XGC)
	nodes := AverageLocations(in.Events, touches, cm)

	locs := make(map[string]model.Point, len(nodes))
	for _, n := range nodes {
		locs[n.Player] = n.Location
	}

	// counts and xgcs are both indexed by Combinations(in.Lineup).
	var edges []model.NetworkEdge
	for i, c := range counts {
		x := xgcs[i].XGC
		if c.Count <= 0 && x <= 0 {
			continue
		}
		l1, ok1 := locs[c.Player1]
		l2, ok2 := locs[c.Player2]
		if !ok1 || !ok2 {
			continue
		}
		edges = append(edges, model.NetworkEdge{
			Pair:      c.Pair,
			PassCount: c.Count,
			XGC:       x,
			Loc1:      l1,
			Loc2:      l2,
		})
	}

	vals := make([]float64, len(edges))
	for i := range edges {
		vals[i] = edges[i].XGC
	}
	lo, hi := colorscale.MinMax(vals)
	for i, col := range colorscale.Linear(vals, cm, lo, hi) {
		edges[i].XGCColor = col
	}

	return model.Network{
		Team:   in.Team,
		Period: in.Period,
		Nodes:  nodes,
		Edges:  edges,
	}, nil
}

// Directed returns the directed pass network of the lineup players: for
// each passer, the completed passes to each recipient with the passer's
// average completed-pass location as start, the recipient's as end, and the
// passer's average touch location. Passers follow lineup order, recipients
// are sorted by name.
func Directed(evs []model.Event, lineup model.Lineup, touches events.TouchSet) []model.DirectedLink {
	if touches == nil {
		touches = events.NewTouchSet(nil)
	}
	players := lineup.Players()
	inLineup := make(map[string]struct{}, len(players))
	for _, p := range players {
		inLineup[p] = struct{}{}
	}

	passStart := make(map[string]*points)
	counts := make(map[string]map[string]int)
	for _, e := range events.CompletedPasses(evs) {
		if _, ok := inLineup[e.Player]; !ok {
			continue
		}
		if e.HasLocation {
			m := passStart[e.Player]
			if m == nil {
				m = &points{}
				passStart[e.Player] = m
			}
			m.add(e.Location)
		}
		if e.Recipient == "" {
			continue
		}
		if counts[e.Player] == nil {
			counts[e.Player] = make(map[string]int)
		}
		counts[e.Player][e.Recipient]++
	}

	touchLocs := make(map[string]model.Point)
	for _, n := range AverageLocations(evs, touches, nil) {
		touchLocs[n.Player] = n.Location
	}

	var out []model.DirectedLink
	for _, passer := range players {
		recips := counts[passer]
		names := make([]string, 0, len(recips))
		for r := range recips {
			names = append(names, r)
		}
		sort.Strings(names)
		for _, r := range names {
			link := model.DirectedLink{
				Passer:    passer,
				Recipient: r,
				Passes:    recips[r],
			}
			link.StartAvg, link.HasStart = passStart[passer].mean()
			link.EndAvg, link.HasEnd = passStart[r].mean()
			if t, ok := touchLocs[passer]; ok {
				link.TouchAvg = t
				link.HasTouchAvg = true
			}
			out = append(out, link)
		}
	}
	return out
}
