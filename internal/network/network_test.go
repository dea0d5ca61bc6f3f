package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frasere/matchreport/internal/colorscale"
	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/model"
)

const team = "Wycombe Wanderers"

func lineupOf(players ...string) model.Lineup {
	var l model.Lineup
	for _, p := range players {
		l = append(l, model.LineupEntry{Team: team, Player: p})
	}
	return l
}

func pass(poss int, from, to string, x, y float64) model.Event {
	return model.Event{
		Team: team, Possession: poss, Type: events.TypePass,
		Player: from, Recipient: to,
		Location: model.Point{X: x, Y: y}, HasLocation: true,
	}
}

func shot(poss int, player string, xg float64, outcome string) model.Event {
	return model.Event{
		Team: team, Possession: poss, Type: events.TypeShot,
		Player: player, XG: xg, Outcome: outcome,
		Location: model.Point{X: 110, Y: 40}, HasLocation: true,
	}
}

func receipt(poss int, player string, x, y float64) model.Event {
	return model.Event{
		Team: team, Possession: poss, Type: "Ball Receipt*", Player: player,
		Location: model.Point{X: x, Y: y}, HasLocation: true,
	}
}

// matchEvents builds three possessions:
//
//	1: A→B, B→C, C shoots (xg 0.3, saved)
//	2: B→A, A→B, A→B, B scores (xg 0.6)
//	3: A→C, C→D, D receives; no shot
func matchEvents() []model.Event {
	return []model.Event{
		pass(1, "A", "B", 30, 40),
		pass(1, "B", "C", 50, 30),
		shot(1, "C", 0.3, "Saved"),

		pass(2, "B", "A", 40, 20),
		pass(2, "A", "B", 60, 40),
		pass(2, "A", "B", 70, 40),
		shot(2, "B", 0.6, events.OutcomeGoal),

		pass(3, "A", "C", 20, 60),
		pass(3, "C", "D", 40, 60),
		receipt(3, "D", 60, 70),
	}
}

func mustCmap(t *testing.T) *colorscale.Colormap {
	t.Helper()
	cm, err := colorscale.Lookup("viridis")
	require.NoError(t, err)
	return cm
}

func TestCombinations(t *testing.T) {
	l := lineupOf("A", "B", "C", "A", "D")
	got := Combinations(l)
	want := []model.Pair{
		{Player1: "A", Player2: "B"}, {Player1: "A", Player2: "C"}, {Player1: "A", Player2: "D"},
		{Player1: "B", Player2: "C"}, {Player1: "B", Player2: "D"},
		{Player1: "C", Player2: "D"},
	}
	assert.Equal(t, want, got)

	assert.Empty(t, Combinations(lineupOf("A")))
	assert.Len(t, Combinations(lineupOf("1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11")), 55)
}

func TestPassCounts_Symmetric(t *testing.T) {
	passes := events.CompletedPasses(matchEvents())
	counts := PassCounts(passes, lineupOf("A", "B", "C", "D"))
	require.Len(t, counts, 6)

	byPair := make(map[model.Pair]int)
	for _, c := range counts {
		byPair[c.Pair] = c.Count
	}
	assert.Equal(t, 4, byPair[model.Pair{Player1: "A", Player2: "B"}])
	assert.Equal(t, 1, byPair[model.Pair{Player1: "A", Player2: "C"}])
	assert.Equal(t, 0, byPair[model.Pair{Player1: "A", Player2: "D"}])
	assert.Equal(t, 1, byPair[model.Pair{Player1: "B", Player2: "C"}])
	assert.Equal(t, 1, byPair[model.Pair{Player1: "C", Player2: "D"}])

	// Reversing the lineup reverses pair order but not counts.
	rev := PassCounts(passes, lineupOf("D", "C", "B", "A"))
	for _, c := range rev {
		assert.Equal(t, byPair[model.Pair{Player1: c.Player2, Player2: c.Player1}], c.Count, "%v", c.Pair)
	}
}

func TestPassXGC_ProportionalWithinPossession(t *testing.T) {
	got := PassXGC(matchEvents(), XGCOptions{})
	require.Len(t, got, 3)

	// Sorted by passer then recipient.
	assert.Equal(t, "A", got[0].Passer)
	assert.Equal(t, "B", got[0].Recipient)
	assert.InDelta(t, 0.15+0.4, got[0].XGC, 1e-9)
	assert.Equal(t, "B", got[1].Passer)
	assert.Equal(t, "A", got[1].Recipient)
	assert.InDelta(t, 0.2, got[1].XGC, 1e-9)
	assert.Equal(t, "C", got[2].Recipient)
	assert.InDelta(t, 0.15, got[2].XGC, 1e-9)

	var total float64
	for _, d := range got {
		total += d.XGC
	}
	assert.InDelta(t, 0.9, total, 1e-9, "attributed xG must equal shot possession xG")
}

func TestPassXGC_GoalsOnly(t *testing.T) {
	got := PassXGC(matchEvents(), XGCOptions{GoalsOnly: true})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.4, got[0].XGC, 1e-9)
	assert.InDelta(t, 0.2, got[1].XGC, 1e-9)
}

func TestPassXGC_PossessionWithoutPasses(t *testing.T) {
	evs := []model.Event{shot(7, "A", 0.5, "Off T")}
	assert.Empty(t, PassXGC(evs, XGCOptions{}))
}

func TestPassXGC_IncompletePassesShareXG(t *testing.T) {
	incomplete := pass(1, "A", "B", 30, 40)
	incomplete.Outcome = events.OutcomeIncomplete
	evs := []model.Event{
		incomplete,
		pass(1, "A", "C", 30, 40),
		shot(1, "C", 0.4, "Saved"),
	}
	got := PassXGC(evs, XGCOptions{})
	require.Len(t, got, 2)
	assert.InDelta(t, 0.2, got[0].XGC, 1e-9)
	assert.InDelta(t, 0.2, got[1].XGC, 1e-9)
}

func TestPairXGC(t *testing.T) {
	got := PairXGC(matchEvents(), lineupOf("A", "B", "C", "D"), XGCOptions{})
	require.Len(t, got, 6)
	assert.InDelta(t, 0.75, got[0].XGC, 1e-9) // A-B
	assert.Zero(t, got[1].XGC)                // A-C
	assert.InDelta(t, 0.15, got[3].XGC, 1e-9) // B-C
}

func TestAverageLocations(t *testing.T) {
	evs := append(matchEvents(), model.Event{
		Team: team, Type: events.TypePressure, Player: "A",
		Location: model.Point{X: 100, Y: 0}, HasLocation: true,
	})
	locs := AverageLocations(evs, events.NewTouchSet(nil), mustCmap(t))
	require.Len(t, locs, 4)

	a := locs[0]
	assert.Equal(t, "A", a.Player)
	// Pressure is not a touch.
	assert.Equal(t, 4, a.TouchCount)
	assert.InDelta(t, (60+70+20+30)/4.0, a.Location.X, 1e-9)

	b := locs[1]
	assert.InDelta(t, 0.6, b.XG, 1e-9)
	assert.Equal(t, "#fde725", colorscale.Hex(b.XGColor))
	assert.Equal(t, "#440154", colorscale.Hex(a.XGColor))
}

func TestBuild(t *testing.T) {
	net, err := Build(Input{
		Team:   team,
		Events: matchEvents(),
		Lineup: lineupOf("A", "B", "C", "D", "E"),
	}, mustCmap(t))
	require.NoError(t, err)

	require.Len(t, net.Edges, 4)
	ab, ac, bc, cd := net.Edges[0], net.Edges[1], net.Edges[2], net.Edges[3]

	assert.Equal(t, model.Pair{Player1: "A", Player2: "B"}, ab.Pair)
	assert.Equal(t, 4, ab.PassCount)
	assert.InDelta(t, 0.75, ab.XGC, 1e-9)
	assert.Equal(t, "#fde725", colorscale.Hex(ab.XGCColor))

	assert.Equal(t, model.Pair{Player1: "A", Player2: "C"}, ac.Pair)
	assert.Zero(t, ac.XGC)
	assert.Equal(t, "#440154", colorscale.Hex(ac.XGCColor))

	assert.Equal(t, model.Pair{Player1: "B", Player2: "C"}, bc.Pair)
	assert.Equal(t, model.Pair{Player1: "C", Player2: "D"}, cd.Pair)
	assert.InDelta(t, 60, cd.Loc2.X, 1e-9)

	for _, e := range net.Edges {
		assert.NotEqual(t, "E", e.Player2, "E never played")
	}
}

func TestBuild_DropsPairsWithoutLocation(t *testing.T) {
	evs := []model.Event{
		pass(1, "A", "B", 30, 40),
		// B never touches the ball with a location.
	}
	net, err := Build(Input{Team: team, Events: evs, Lineup: lineupOf("A", "B")}, mustCmap(t))
	require.NoError(t, err)
	assert.Empty(t, net.Edges)
	assert.Len(t, net.Nodes, 1)
}

func TestBuild_EqualXGCMapsToBottomColour(t *testing.T) {
	net, err := Build(Input{
		Team:   team,
		Events: []model.Event{pass(1, "A", "B", 30, 40), pass(1, "B", "A", 50, 40)},
		Lineup: lineupOf("A", "B"),
	}, mustCmap(t))
	require.NoError(t, err)
	require.Len(t, net.Edges, 1)
	assert.Equal(t, "#440154", colorscale.Hex(net.Edges[0].XGCColor))
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(Input{Team: team, Lineup: lineupOf("A")}, mustCmap(t))
	assert.Error(t, err)

	_, err = Build(Input{Team: team, Lineup: lineupOf("A", "B")}, nil)
	assert.Error(t, err)
}

func TestDirected(t *testing.T) {
	links := Directed(matchEvents(), lineupOf("A", "B", "C", "D"), nil)
	require.Len(t, links, 5)

	// A's recipients sorted: B, C.
	assert.Equal(t, "A", links[0].Passer)
	assert.Equal(t, "B", links[0].Recipient)
	assert.Equal(t, 3, links[0].Passes)
	assert.InDelta(t, (30+60+70+20)/4.0, links[0].StartAvg.X, 1e-9)
	assert.True(t, links[0].HasEnd)
	assert.InDelta(t, (50+40)/2.0, links[0].EndAvg.X, 1e-9)

	// C→D: D made no completed pass.
	last := links[len(links)-1]
	assert.Equal(t, "C", last.Passer)
	assert.Equal(t, "D", last.Recipient)
	assert.False(t, last.HasEnd)
	assert.True(t, last.HasTouchAvg)
}

func TestPassXGC_PossessionsKeyedByMatch(t *testing.T) {
	// Both matches use possession 1; only match 100 has a shot in it.
	withMatch := func(e model.Event, id string) model.Event {
		e.MatchID = id
		return e
	}
	evs := []model.Event{
		withMatch(pass(1, "A", "B", 30, 40), "100"),
		withMatch(shot(1, "B", 0.4, "Saved"), "100"),
		withMatch(pass(1, "C", "D", 50, 40), "200"),
		withMatch(pass(1, "D", "C", 60, 40), "200"),
	}
	got := PassXGC(evs, XGCOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Passer)
	assert.Equal(t, "B", got[0].Recipient)
	assert.InDelta(t, 0.4, got[0].XGC, 1e-9)
}

func TestAverageLocations_TouchWithoutLocation(t *testing.T) {
	evs := []model.Event{
		pass(1, "A", "B", 30, 40),
		{Team: team, Possession: 1, Type: events.TypeClearance, Player: "A"},
	}
	locs := AverageLocations(evs, events.NewTouchSet(nil), nil)
	require.Len(t, locs, 1)
	assert.Equal(t, 2, locs[0].TouchCount)
	assert.Equal(t, model.Point{X: 30, Y: 40}, locs[0].Location)
}

func TestDirected_PassWithoutLocation(t *testing.T) {
	unlocated := pass(1, "A", "B", 0, 0)
	unlocated.HasLocation = false
	evs := []model.Event{
		pass(1, "A", "B", 30, 40),
		unlocated,
		receipt(1, "B", 50, 40),
	}
	links := Directed(evs, lineupOf("A", "B"), nil)
	require.Len(t, links, 1)
	assert.Equal(t, 2, links[0].Passes)
	assert.True(t, links[0].HasStart)
	assert.Equal(t, model.Point{X: 30, Y: 40}, links[0].StartAvg)
	assert.False(t, links[0].HasEnd)

	// No located pass at all leaves the start unset.
	links = Directed([]model.Event{unlocated}, lineupOf("A", "B"), nil)
	require.Len(t, links, 1)
	assert.Equal(t, 1, links[0].Passes)
	assert.False(t, links[0].HasStart)
}
