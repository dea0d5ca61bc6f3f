package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/model"
)

func ev(team, player, typ string, x, y float64) model.Event {
	return model.Event{
		Team: team, Player: player, Type: typ,
		Location: model.Point{X: x, Y: y}, HasLocation: true,
	}
}

func withOutcome(e model.Event, outcome string) model.Event {
	e.Outcome = outcome
	return e
}

func TestIsBoxTouch(t *testing.T) {
	assert.True(t, IsBoxTouch(ev("T", "A", events.TypePass, 99.6, 17.67)))
	assert.True(t, IsBoxTouch(ev("T", "A", events.TypeShot, 110, 65.75)))
	assert.False(t, IsBoxTouch(ev("T", "A", events.TypePass, 99.5, 40)))
	assert.False(t, IsBoxTouch(ev("T", "A", events.TypePass, 105, 66)))
	assert.False(t, IsBoxTouch(ev("T", "A", events.TypePressure, 105, 40)))
	assert.False(t, IsBoxTouch(model.Event{Type: events.TypePass}))
}

func TestIsDeepProgression(t *testing.T) {
	assert.True(t, IsDeepProgression(ev("T", "A", events.TypePass, 80, 10)))
	assert.True(t, IsDeepProgression(ev("T", "A", events.TypeCarry, 90, 10)))
	assert.True(t, IsDeepProgression(ev("T", "A", events.TypeDribble, 85, 10)))
	assert.False(t, IsDeepProgression(ev("T", "A", events.TypePass, 79.9, 10)))
	assert.False(t, IsDeepProgression(ev("T", "A", events.TypeShot, 100, 40)))
}

func TestForwardTable(t *testing.T) {
	goal := withOutcome(ev("T", "Striker", events.TypeShot, 110, 40), events.OutcomeGoal)
	goal.XG = 0.5
	miss := withOutcome(ev("T", "Striker", events.TypeShot, 112, 38), "Off T")
	miss.XG = 0.1
	evs := []model.Event{
		goal, miss,
		ev("T", "Striker", "Ball Receipt*", 105, 30),
		ev("T", "Striker", events.TypePressure, 105, 30),
		withOutcome(ev("T", "Striker", events.TypeDribble, 90, 30), events.OutcomeComplete),
		withOutcome(ev("T", "Striker", events.TypeDribble, 90, 30), events.OutcomeIncomplete),
		ev("T", "Winger", events.TypePass, 60, 10),
	}
	rows := ForwardTable(evs)
	require.Len(t, rows, 2)

	s := rows[0]
	assert.Equal(t, "Striker", s.Player)
	assert.Equal(t, 1, s.Goals)
	assert.Equal(t, 2, s.Shots)
	assert.Equal(t, 0.6, s.XG)
	assert.Equal(t, 0.3, s.XGPerShot)
	assert.Equal(t, 3, s.BoxTouches)
	assert.Equal(t, 66.67, s.ShotTouchPct)
	assert.Equal(t, 1, s.Pressures)
	assert.Equal(t, 1, s.Dribbles)

	w := rows[1]
	assert.Equal(t, "Winger", w.Player)
	assert.Zero(t, w.XGPerShot)
	assert.Zero(t, w.ShotTouchPct)
}

func TestWingBackAndMidfieldPassPct(t *testing.T) {
	cross := ev("T", "Jacobson", events.TypePass, 100, 5)
	cross.PassCross = true
	tackle := ev("T", "Jacobson", "Duel", 30, 5)
	tackle.SubType = "Tackle"
	aerial := ev("T", "Jacobson", "Duel", 30, 5)
	aerial.AerialWon = true
	evs := []model.Event{
		cross,
		ev("T", "Jacobson", events.TypePass, 40, 5),
		withOutcome(ev("T", "Jacobson", events.TypePass, 40, 5), events.OutcomeIncomplete),
		withOutcome(ev("T", "Jacobson", events.TypePass, 40, 5), "Out"),
		tackle, aerial,
		ev("T", "Jacobson", events.TypeFoulWon, 50, 5),
	}

	wb := WingBackTable(evs)
	require.Len(t, wb, 1)
	assert.Equal(t, 1, wb[0].Crosses)
	assert.Equal(t, 1, wb[0].DeepProg)
	assert.Equal(t, 1, wb[0].Tackles)
	assert.Equal(t, 1, wb[0].AerialsWon)
	assert.Equal(t, 1, wb[0].FoulsWon)
	// "Out" counts neither as complete nor incomplete.
	assert.Equal(t, 66.67, wb[0].PassPct)

	mid := MidfieldTable(evs)
	require.Len(t, mid, 1)
	assert.Equal(t, 66.67, mid[0].PassPct)
	assert.Equal(t, 1, mid[0].Tackles)
}

func TestCentreBackTable(t *testing.T) {
	evs := []model.Event{
		ev("T", "CB", events.TypeClearance, 10, 40),
		ev("T", "CB", events.TypeClearance, 12, 40),
		ev("T", "CB", events.TypeInterception, 20, 40),
	}
	rows := CentreBackTable(evs)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Clearances)
	assert.Equal(t, 1, rows[0].Interceptions)
	assert.Zero(t, rows[0].PassPct)
}

func TestTeamTable(t *testing.T) {
	shot := ev("Wycombe", "A", events.TypeShot, 110, 40)
	shot.XG = 0.25
	evs := []model.Event{
		shot,
		ev("Wycombe", "B", events.TypePass, 85, 40),
		ev("Fleetwood", "C", events.TypePressure, 30, 40),
		withOutcome(ev("Fleetwood", "C", events.TypePass, 30, 40), events.OutcomeIncomplete),
	}
	rows := TeamTable(evs)
	require.Len(t, rows, 2)

	assert.Equal(t, "Fleetwood", rows[0].Team)
	assert.Equal(t, 1, rows[0].Pressures)
	assert.Zero(t, rows[0].PassPct)

	w := rows[1]
	assert.Equal(t, "Wycombe", w.Team)
	assert.Equal(t, 0.25, w.XG)
	assert.Equal(t, 1, w.Shots)
	assert.Equal(t, 0.25, w.XGPerShot)
	assert.Equal(t, 1, w.BoxTouches)
	assert.Equal(t, 100.0, w.ShotTouchPct)
	assert.Equal(t, 1, w.DeepProg)
	assert.Equal(t, 100.0, w.PassPct)
}

func TestParseGroup(t *testing.T) {
	g, err := ParseGroup(" Forwards ")
	require.NoError(t, err)
	assert.Equal(t, Forwards, g)
	assert.Contains(t, g.Positions(), "Center Forward")

	_, err = ParseGroup("goalkeepers")
	assert.Error(t, err)
}

func TestPlayerLine(t *testing.T) {
	shot := withOutcome(ev("Wycombe", "Kashket", events.TypeShot, 105, 40), events.OutcomeGoal)
	shot.XG = 0.333
	shot.Position = "Center Forward"
	evs := []model.Event{
		ev("Fleetwood", "Madden", events.TypePass, 50, 40),
		shot,
		ev("Wycombe", "Kashket", events.TypePass, 85, 30),
		withOutcome(ev("Wycombe", "Kashket", events.TypePass, 60, 30), events.OutcomeIncomplete),
		ev("Wycombe", "Kashket", events.TypePressure, 100, 30),
	}

	line, ok := PlayerLine(evs, "Kashket")
	require.True(t, ok)
	assert.Equal(t, "Wycombe", line.Team)
	assert.Equal(t, "Center Forward", line.Position)
	assert.Equal(t, 4, line.Events)
	assert.Equal(t, 1, line.Goals)
	assert.Equal(t, 0.33, line.XG)
	assert.Equal(t, 1, line.BoxTouches)
	assert.Equal(t, 50.0, line.PassPct)
	assert.Equal(t, 1, line.DeepProg)
	assert.Equal(t, 1, line.Pressures)

	_, ok = PlayerLine(evs, "Nobody")
	assert.False(t, ok)
}
