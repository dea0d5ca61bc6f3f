// Package kpi computes per-position player KPIs and whole-match team KPIs
// from cleaned match events.
package kpi

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/model"
)

// Group is a set of pitch positions reported together.
type Group string

const (
	Forwards    Group = "forwards"
	WingBacks   Group = "wingbacks"
	Midfield    Group = "midfield"
	CentreBacks Group = "centrebacks"
)

var groupPositions = map[Group][]string{
	Forwards: {
		"Center Forward", "Left Center Forward", "Right Center Forward",
		"Secondary Striker", "Left Wing", "Right Wing",
	},
	WingBacks: {
		"Left Wing Back", "Right Wing Back", "Left Back", "Right Back",
	},
	Midfield: {
		"Center Midfield", "Left Center Midfield", "Right Center Midfield",
		"Center Defensive Midfield", "Left Defensive Midfield", "Right Defensive Midfield",
		"Center Attacking Midfield", "Left Attacking Midfield", "Right Attacking Midfield",
		"Left Midfield", "Right Midfield",
	},
	CentreBacks: {
		"Center Back", "Left Center Back", "Right Center Back",
	},
}

// ParseGroup resolves a group name, case-insensitively.
func ParseGroup(s string) (Group, error) {
	g := Group(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := groupPositions[g]; !ok {
		return "", fmt.Errorf("unknown position group %q (want forwards, wingbacks, midfield or centrebacks)", s)
	}
	return g, nil
}

// Positions returns the position names belonging to g.
func (g Group) Positions() []string { return groupPositions[g] }

// Box bounds in StatsBomb coordinates.
const (
	boxMinX     = 99.6
	boxMinY     = 17.67
	boxMaxY     = 65.75
	finalThirdX = 80.0
)

// IsBoxTouch reports whether e happened inside the opposition box. Pressures
// do not count.
func IsBoxTouch(e model.Event) bool {
	return e.HasLocation &&
		e.Location.X >= boxMinX &&
		e.Location.Y >= boxMinY && e.Location.Y <= boxMaxY &&
		e.Type != events.TypePressure
}

// IsDeepProgression reports whether e is a pass, dribble or carry starting
// in the final third.
func IsDeepProgression(e model.Event) bool {
	switch e.Type {
	case events.TypePass, events.TypeDribble, events.TypeCarry, events.TypeCarries:
		return e.HasLocation && e.Location.X >= finalThirdX
	}
	return false
}

// counts accumulates the raw tallies every KPI table draws on.
type counts struct {
	xgs                          []float64
	goals, shots, boxTouches     int
	pressures, dribbles, aerials int
	tackles, interceptions       int
	crosses, deepProg            int
	passComplete, passIncomplete int
	foulsWon, clearances         int
}

func (c *counts) add(e model.Event) {
	c.xgs = append(c.xgs, e.XG)
	switch e.Type {
	case events.TypeShot:
		c.shots++
		if e.Outcome == events.OutcomeGoal {
			c.goals++
		}
	case events.TypePressure:
		c.pressures++
	case events.TypeDribble:
		if e.Outcome == events.OutcomeComplete {
			c.dribbles++
		}
	case events.TypeInterception:
		c.interceptions++
	case events.TypeFoulWon:
		c.foulsWon++
	case events.TypeClearance:
		c.clearances++
	case events.TypePass:
		switch e.Outcome {
		case "":
			c.passComplete++
		case events.OutcomeIncomplete:
			c.passIncomplete++
		}
		if e.PassCross {
			c.crosses++
		}
	}
	if e.SubType == "Tackle" {
		c.tackles++
	}
	if e.AerialWon {
		c.aerials++
	}
	if IsBoxTouch(e) {
		c.boxTouches++
	}
	if IsDeepProgression(e) {
		c.deepProg++
	}
}

func (c *counts) xg() float64 { return floats.Sum(c.xgs) }

func (c *counts) passPct() float64 {
	return pct(c.passComplete, c.passComplete+c.passIncomplete)
}

func (c *counts) shotTouchPct() float64 {
	return pct(c.shots, c.boxTouches)
}

func (c *counts) xgPerShot() float64 {
	if c.shots == 0 {
		return 0
	}
	return round2(c.xg() / float64(c.shots))
}

func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return round2(100 * float64(num) / float64(den))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// tally groups events by key, returning keys in sorted order.
func tally(evs []model.Event, key func(model.Event) string) ([]string, map[string]*counts) {
	m := make(map[string]*counts)
	for _, e := range evs {
		k := key(e)
		if k == "" {
			continue
		}
		c := m[k]
		if c == nil {
			c = &counts{}
			m[k] = c
		}
		c.add(e)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, m
}

func byPlayer(e model.Event) string { return e.Player }

// ForwardTable computes forward KPIs for every player in evs.
func ForwardTable(evs []model.Event) []model.ForwardKPIs {
	keys, m := tally(evs, byPlayer)
	out := make([]model.ForwardKPIs, 0, len(keys))
	for _, p := range keys {
		c := m[p]
		out = append(out, model.ForwardKPIs{
			Player:       p,
			Goals:        c.goals,
			XG:           round2(c.xg()),
			Shots:        c.shots,
			XGPerShot:    c.xgPerShot(),
			ShotTouchPct: c.shotTouchPct(),
			BoxTouches:   c.boxTouches,
			Pressures:    c.pressures,
			Dribbles:     c.dribbles,
			AerialsWon:   c.aerials,
		})
	}
	return out
}

// WingBackTable computes wing-back KPIs for every player in evs.
func WingBackTable(evs []model.Event) []model.WingBackKPIs {
	keys, m := tally(evs, byPlayer)
	out := make([]model.WingBackKPIs, 0, len(keys))
	for _, p := range keys {
		c := m[p]
		out = append(out, model.WingBackKPIs{
			Player:     p,
			Tackles:    c.tackles,
			Pressures:  c.pressures,
			Crosses:    c.crosses,
			DeepProg:   c.deepProg,
			PassPct:    c.passPct(),
			Dribbles:   c.dribbles,
			AerialsWon: c.aerials,
			FoulsWon:   c.foulsWon,
		})
	}
	return out
}

// MidfieldTable computes central midfield KPIs for every player in evs.
func MidfieldTable(evs []model.Event) []model.MidfieldKPIs {
	keys, m := tally(evs, byPlayer)
	out := make([]model.MidfieldKPIs, 0, len(keys))
	for _, p := range keys {
		c := m[p]
		out = append(out, model.MidfieldKPIs{
			Player:    p,
			PassPct:   c.passPct(),
			DeepProg:  c.deepProg,
			Dribbles:  c.dribbles,
			FoulsWon:  c.foulsWon,
			Pressures: c.pressures,
			Tackles:   c.tackles,
		})
	}
	return out
}

// CentreBackTable computes centre-back KPIs for every player in evs.
func CentreBackTable(evs []model.Event) []model.CentreBackKPIs {
	keys, m := tally(evs, byPlayer)
	out := make([]model.CentreBackKPIs, 0, len(keys))
	for _, p := range keys {
		c := m[p]
		out = append(out, model.CentreBackKPIs{
			Player:        p,
			PassPct:       c.passPct(),
			Pressures:     c.pressures,
			FoulsWon:      c.foulsWon,
			Tackles:       c.tackles,
			Interceptions: c.interceptions,
			AerialsWon:    c.aerials,
			Clearances:    c.clearances,
		})
	}
	return out
}

// TeamTable computes whole-match KPIs for every team in evs, sorted by team name.
func TeamTable(evs []model.Event) []model.TeamKPIs {
	keys, m := tally(evs, func(e model.Event) string { return e.Team })
	out := make([]model.TeamKPIs, 0, len(keys))
	for _, team := range keys {
		c := m[team]
		out = append(out, model.TeamKPIs{
			Team:         team,
			XG:           round2(c.xg()),
			Shots:        c.shots,
			XGPerShot:    c.xgPerShot(),
			BoxTouches:   c.boxTouches,
			ShotTouchPct: c.shotTouchPct(),
			DeepProg:     c.deepProg,
			Crosses:      c.crosses,
			Pressures:    c.pressures,
			PassPct:      c.passPct(),
		})
	}
	return out
}

// PlayerLine computes the headline numbers of player over evs. It reports
// false when the player has no events. Team and Position are taken from the
// player's first event.
func PlayerLine(evs []model.Event, player string) (model.PlayerMatchLine, bool) {
	line := model.PlayerMatchLine{Player: player}
	var c counts
	for _, e := range events.ByPlayers(evs, []string{player}) {
		if line.Events == 0 {
			line.Team, line.Position = e.Team, e.Position
		}
		line.Events++
		c.add(e)
	}
	if line.Events == 0 {
		return line, false
	}
	line.Goals = c.goals
	line.XG = round2(c.xg())
	line.Shots = c.shots
	line.BoxTouches = c.boxTouches
	line.PassPct = c.passPct()
	line.DeepProg = c.deepProg
	line.Pressures = c.pressures
	line.Tackles = c.tackles
	return line, true
}
