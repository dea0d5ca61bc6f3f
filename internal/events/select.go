package events

import "github.com/frasere/matchreport/internal/model"

// Event type names used across the package.
const (
	TypePass         = "Pass"
	TypeShot         = "Shot"
	TypePressure     = "Pressure"
	TypeDribble      = "Dribble"
	TypeCarry        = "Carry"
	TypeCarries      = "Carries"
	TypeInterception = "Interception"
	TypeClearance    = "Clearance"
	TypeFoulWon      = "Foul Won"

	OutcomeIncomplete = "Incomplete"
	OutcomeComplete   = "Complete"
	OutcomeGoal       = "Goal"
)

// DefaultTouchTypes are the event types that count as a touch of the ball
// when locating players.
var DefaultTouchTypes = []string{
	"Pass", "Ball Receipt*", "Carry", "Carries", "Shot", "Ball Recovery",
	"Clearance", "Block", "Goal Keeper", "Miscontrol", "Dribble", "Interception",
}

// TouchSet is a set of event type names.
type TouchSet map[string]struct{}

// NewTouchSet builds a TouchSet; an empty list yields DefaultTouchTypes.
func NewTouchSet(types []string) TouchSet {
	if len(types) == 0 {
		types = DefaultTouchTypes
	}
	s := make(TouchSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// IsTouch reports whether e is a touch event.
func (s TouchSet) IsTouch(e model.Event) bool {
	_, ok := s[e.Type]
	return ok
}

type dedupKey struct {
	timestamp, player, eventType string
	x, y                         float64
	hasLoc                       bool
}

// Select returns the events of eventType (all events when eventType is
// empty) with duplicates dropped. Two events are duplicates when they share
// timestamp, player, type and location; the first occurrence is kept.
func Select(evs []model.Event, eventType string) (out []model.Event, dropped int) {
	seen := make(map[dedupKey]struct{}, len(evs))
	for _, e := range evs {
		if eventType != "" && e.Type != eventType {
			continue
		}
		k := dedupKey{e.Timestamp, e.Player, e.Type, e.Location.X, e.Location.Y, e.HasLocation}
		if _, ok := seen[k]; ok {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out, dropped
}

// Filter returns the events for which keep returns true.
func Filter(evs []model.Event, keep func(model.Event) bool) []model.Event {
	var out []model.Event
	for _, e := range evs {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// ByTeam keeps events of team.
func ByTeam(evs []model.Event, team string) []model.Event {
	return Filter(evs, func(e model.Event) bool { return e.Team == team })
}

// ByPeriod keeps events of period; 0 keeps everything.
func ByPeriod(evs []model.Event, period int) []model.Event {
	if period == 0 {
		return evs
	}
	return Filter(evs, func(e model.Event) bool { return e.Period == period })
}

// ByPlayers keeps events whose player is in players.
func ByPlayers(evs []model.Event, players []string) []model.Event {
	set := make(map[string]struct{}, len(players))
	for _, p := range players {
		set[p] = struct{}{}
	}
	return Filter(evs, func(e model.Event) bool {
		_, ok := set[e.Player]
		return ok
	})
}

// ByPositions keeps events whose player position is in positions.
func ByPositions(evs []model.Event, positions []string) []model.Event {
	set := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		set[p] = struct{}{}
	}
	return Filter(evs, func(e model.Event) bool {
		_, ok := set[e.Position]
		return ok
	})
}

// IsCompletedPass reports whether e is a pass with no outcome recorded.
func IsCompletedPass(e model.Event) bool {
	return e.Type == TypePass && e.Outcome == ""
}

// CompletedPasses keeps completed passes.
func CompletedPasses(evs []model.Event) []model.Event {
	return Filter(evs, IsCompletedPass)
}

// Teams returns the team names in order of first appearance.
func Teams(evs []model.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range evs {
		if e.Team == "" {
			continue
		}
		if _, ok := seen[e.Team]; !ok {
			seen[e.Team] = struct{}{}
			out = append(out, e.Team)
		}
	}
	return out
}
