package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/frasere/matchreport/internal/colorscale"
	"github.com/frasere/matchreport/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func marker(player, focus string) string {
	if focus != "" && player == focus {
		return ">"
	}
	return " "
}

func pct(v float64) string { return fmt.Sprintf("%.2f%%", v) }

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	fmt.Fprintf(w, "\nMatch: %s  |  Teams: %s  |  Events: %d  |  Dropped duplicates: %d  |  Hash: %s\n\n",
		s.Name, strings.Join(s.Teams, " v "), s.EventCount, s.Duplicates, shortHash(s.Hash))
}

// PrintMatchList prints the stored matches, one row each.
func PrintMatchList(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("HASH", "NAME", "MATCH_ID", "TEAMS", "EVENTS", "DUPES", "INGESTED")
	for _, m := range matches {
		table.Append(
			shortHash(m.Hash),
			m.Name,
			m.MatchID,
			strings.Join(m.Teams, " v "),
			strconv.Itoa(m.EventCount),
			strconv.Itoa(m.Duplicates),
			m.IngestedAt,
		)
	}
	table.Render()
}

// PrintNetworkEdges prints the pair-level pass network.
// Columns: PLAYER_1 | PLAYER_2 | PASSES | XGC | LOC_1 | LOC_2 | COLOUR
func PrintNetworkEdges(w io.Writer, net model.Network) {
	table := newTable(w)
	table.Header("PLAYER_1", "PLAYER_2", "PASSES", "XGC", "LOC_1", "LOC_2", "COLOUR")
	for _, e := range net.Edges {
		table.Append(
			e.Player1,
			e.Player2,
			strconv.Itoa(e.PassCount),
			fmt.Sprintf("%.3f", e.XGC),
			fmtPoint(e.Loc1),
			fmtPoint(e.Loc2),
			colorscale.Hex(e.XGCColor),
		)
	}
	table.Render()
}

// PrintNetworkNodes prints each player's average touch location.
func PrintNetworkNodes(w io.Writer, nodes []model.PlayerLocation, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "X", "Y", "TOUCHES", "XG", "COLOUR")
	for _, n := range nodes {
		table.Append(
			marker(n.Player, focus),
			n.Player,
			fmt.Sprintf("%.1f", n.Location.X),
			fmt.Sprintf("%.1f", n.Location.Y),
			strconv.Itoa(n.TouchCount),
			fmt.Sprintf("%.2f", n.XG),
			colorscale.Hex(n.XGColor),
		)
	}
	table.Render()
}

// PrintDirectedLinks prints passer to recipient links with their average
// start and end locations. Links below minPasses are skipped.
func PrintDirectedLinks(w io.Writer, links []model.DirectedLink, minPasses int) {
	table := newTable(w)
	table.Header("PASSER", "RECIPIENT", "PASSES", "START", "END", "TOUCH_AVG")
	for _, l := range links {
		if l.Passes < minPasses {
			continue
		}
		start, end, touch := "—", "—", "—"
		if l.HasStart {
			start = fmtPoint(l.StartAvg)
		}
		if l.HasEnd {
			end = fmtPoint(l.EndAvg)
		}
		if l.HasTouchAvg {
			touch = fmtPoint(l.TouchAvg)
		}
		table.Append(l.Passer, l.Recipient, strconv.Itoa(l.Passes), start, end, touch)
	}
	table.Render()
}

func fmtPoint(p model.Point) string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// PrintForwardTable prints forward KPIs. The focus player's row is marked with ">".
func PrintForwardTable(w io.Writer, rows []model.ForwardKPIs, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "GOALS", "XG", "SHOTS", "XG/SHOT", "SHOT/TOUCH%", "BOX_TOUCHES", "PRESSURES", "DRIBBLES", "AERIALS")
	for _, r := range rows {
		table.Append(
			marker(r.Player, focus),
			r.Player,
			strconv.Itoa(r.Goals),
			fmt.Sprintf("%.2f", r.XG),
			strconv.Itoa(r.Shots),
			fmt.Sprintf("%.2f", r.XGPerShot),
			pct(r.ShotTouchPct),
			strconv.Itoa(r.BoxTouches),
			strconv.Itoa(r.Pressures),
			strconv.Itoa(r.Dribbles),
			strconv.Itoa(r.AerialsWon),
		)
	}
	table.Render()
}

// PrintWingBackTable prints wing-back KPIs.
func PrintWingBackTable(w io.Writer, rows []model.WingBackKPIs, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "TACKLES", "PRESSURES", "CROSSES", "DEEP_PROG", "PASS%", "DRIBBLES", "AERIALS", "FOULS_WON")
	for _, r := range rows {
		table.Append(
			marker(r.Player, focus),
			r.Player,
			strconv.Itoa(r.Tackles),
			strconv.Itoa(r.Pressures),
			strconv.Itoa(r.Crosses),
			strconv.Itoa(r.DeepProg),
			pct(r.PassPct),
			strconv.Itoa(r.Dribbles),
			strconv.Itoa(r.AerialsWon),
			strconv.Itoa(r.FoulsWon),
		)
	}
	table.Render()
}

// PrintMidfieldTable prints central midfield KPIs.
func PrintMidfieldTable(w io.Writer, rows []model.MidfieldKPIs, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "PASS%", "DEEP_PROG", "DRIBBLES", "FOULS_WON", "PRESSURES", "TACKLES")
	for _, r := range rows {
		table.Append(
			marker(r.Player, focus),
			r.Player,
			pct(r.PassPct),
			strconv.Itoa(r.DeepProg),
			strconv.Itoa(r.Dribbles),
			strconv.Itoa(r.FoulsWon),
			strconv.Itoa(r.Pressures),
			strconv.Itoa(r.Tackles),
		)
	}
	table.Render()
}

// PrintCentreBackTable prints centre-back KPIs.
func PrintCentreBackTable(w io.Writer, rows []model.CentreBackKPIs, focus string) {
	table := newTable(w)
	table.Header(" ", "PLAYER", "PASS%", "PRESSURES", "FOULS_WON", "TACKLES", "INTERCEPTIONS", "AERIALS", "CLEARANCES")
	for _, r := range rows {
		table.Append(
			marker(r.Player, focus),
			r.Player,
			pct(r.PassPct),
			strconv.Itoa(r.Pressures),
			strconv.Itoa(r.FoulsWon),
			strconv.Itoa(r.Tackles),
			strconv.Itoa(r.Interceptions),
			strconv.Itoa(r.AerialsWon),
			strconv.Itoa(r.Clearances),
		)
	}
	table.Render()
}

// PrintTeamTable prints whole-match team KPIs, one row per team.
func PrintTeamTable(w io.Writer, rows []model.TeamKPIs) {
	table := newTable(w)
	table.Header("TEAM", "XG", "SHOTS", "XG/SHOT", "BOX_TOUCHES", "SHOT/TOUCH%", "DEEP_PROG", "CROSSES", "PRESSURES", "PASS%")
	for _, r := range rows {
		table.Append(
			r.Team,
			fmt.Sprintf("%.2f", r.XG),
			strconv.Itoa(r.Shots),
			fmt.Sprintf("%.2f", r.XGPerShot),
			strconv.Itoa(r.BoxTouches),
			pct(r.ShotTouchPct),
			strconv.Itoa(r.DeepProg),
			strconv.Itoa(r.Crosses),
			strconv.Itoa(r.Pressures),
			pct(r.PassPct),
		)
	}
	table.Render()
}

// PrintQueryResult prints the rows of a raw SQL query.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

// PrintTrendTable prints one row per match for a player, in the order given.
func PrintTrendTable(w io.Writer, lines []model.PlayerMatchLine) {
	table := newTable(w)
	table.Header("MATCH", "NAME", "INGESTED", "TEAM", "POSITION", "EVENTS", "GOALS", "XG", "SHOTS", "BOX", "PASS%", "DEEP_PROG", "PRESSURES", "TACKLES")
	for _, l := range lines {
		table.Append(
			shortHash(l.MatchHash),
			l.MatchName,
			l.IngestedAt,
			l.Team,
			l.Position,
			strconv.Itoa(l.Events),
			strconv.Itoa(l.Goals),
			fmt.Sprintf("%.2f", l.XG),
			strconv.Itoa(l.Shots),
			strconv.Itoa(l.BoxTouches),
			pct(l.PassPct),
			strconv.Itoa(l.DeepProg),
			strconv.Itoa(l.Pressures),
			strconv.Itoa(l.Tackles),
		)
	}
	table.Render()
}

// PrintLineup prints the stored lineup in formation order.
func PrintLineup(w io.Writer, lineup model.Lineup) {
	table := newTable(w)
	table.Header("TEAM", "#", "PLAYER", "POSITION")
	for _, l := range lineup {
		jersey := "—"
		if l.Jersey > 0 {
			jersey = strconv.Itoa(l.Jersey)
		}
		table.Append(l.Team, jersey, l.Player, l.Position)
	}
	table.Render()
}
