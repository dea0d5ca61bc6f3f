package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frasere/matchreport/internal/model"
)

func TestPrintMatchSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintMatchSummary(&buf, model.MatchSummary{
		Hash:       "0123456789abcdef",
		Name:       "Fleetwood v Wycombe",
		Teams:      []string{"Fleetwood Town", "Wycombe Wanderers"},
		EventCount: 3412,
		Duplicates: 2,
	})
	out := buf.String()
	assert.Contains(t, out, "Fleetwood Town v Wycombe Wanderers")
	assert.Contains(t, out, "0123456789ab")
	assert.NotContains(t, out, "0123456789abc")
	assert.Contains(t, out, "3412")
}

func TestPrintNetworkEdges(t *testing.T) {
	var buf bytes.Buffer
	PrintNetworkEdges(&buf, model.Network{
		Team: "Wycombe Wanderers",
		Edges: []model.NetworkEdge{{
			Pair:      model.Pair{Player1: "Joe Jacobson", Player2: "Fred Onyedinma"},
			PassCount: 7,
			XGC:       0.125,
			Loc1:      model.Point{X: 40, Y: 70},
			Loc2:      model.Point{X: 80.3, Y: 60},
			XGCColor:  model.RGBA{R: 1, A: 1},
		}},
	})
	out := buf.String()
	assert.Contains(t, out, "Joe Jacobson")
	assert.Contains(t, out, "Fred Onyedinma")
	assert.Contains(t, out, "0.125")
	assert.Contains(t, out, "(80.3, 60.0)")
	assert.Contains(t, out, "#ff0000")
}

func TestFocusMarker(t *testing.T) {
	var buf bytes.Buffer
	PrintForwardTable(&buf, []model.ForwardKPIs{
		{Player: "Akinfenwa", Goals: 1, Shots: 3, ShotTouchPct: 12.5},
		{Player: "Kashket"},
	}, "Akinfenwa")
	out := buf.String()
	assert.Contains(t, out, ">")
	assert.Contains(t, out, "12.50%")
	assert.Contains(t, out, "Kashket")
}

func TestPrintDirectedLinksMinPasses(t *testing.T) {
	var buf bytes.Buffer
	PrintDirectedLinks(&buf, []model.DirectedLink{
		{Passer: "Allsop", Recipient: "Stewart", Passes: 5, StartAvg: model.Point{X: 40, Y: 20}, HasStart: true, HasEnd: true},
		{Passer: "Stewart", Recipient: "Mehmeti", Passes: 1},
	}, 2)
	out := buf.String()
	assert.Contains(t, out, "Allsop")
	assert.Contains(t, out, "(40.0, 20.0)")
	assert.NotContains(t, out, "Mehmeti")
}

func TestPrintQueryResult(t *testing.T) {
	var buf bytes.Buffer
	PrintQueryResult(&buf, []string{"player", "n"}, [][]string{{"Jacobson", "4"}, {"Kashket", "2"}})
	out := buf.String()
	assert.Contains(t, out, "Jacobson")
	assert.Contains(t, out, "(2 rows)")
}
