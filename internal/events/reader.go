// Package events loads the flat match event table and provides the
// selection and filtering helpers used by the network and KPI code.
package events

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/frasere/matchreport/internal/model"
)

// ErrMissingColumn is returned when a required CSV column is absent.
var ErrMissingColumn = errors.New("missing required column")

// header maps lower-cased column names to their index.
type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, c := range cols {
		name := strings.ToLower(strings.TrimSpace(c))
		if _, ok := h[name]; !ok {
			h[name] = i
		}
	}
	return h
}

// idx returns the index of the first column present among names, or -1.
func (h header) idx(names ...string) int {
	for _, n := range names {
		if i, ok := h[n]; ok {
			return i
		}
	}
	return -1
}

type row []string

func (r row) str(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func (r row) asFloat(i int) (float64, error) {
	s := r.str(i)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (r row) asInt(i int) (int, error) {
	s := r.str(i)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, nil
	}
	// Exported frames often carry integer columns as floats ("3.0").
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		return int(f), err
	}
	return strconv.Atoi(s)
}

// asBool accepts true/false, 1/0 and the float forms pandas writes; anything
// else (including empty) is false.
func (r row) asBool(i int) bool {
	switch strings.ToLower(r.str(i)) {
	case "true", "1", "1.0", "t", "yes":
		return true
	}
	return false
}

// text treats pandas' NaN placeholders as empty.
func (r row) text(i int) string {
	s := r.str(i)
	if strings.EqualFold(s, "nan") || s == "None" {
		return ""
	}
	return s
}

// ReadEvents parses a flat event CSV with a header row. Columns are matched
// by name, case-insensitively; player_name and event_type_name are required.
func ReadEvents(r io.Reader) ([]model.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := newHeader(cols)

	var (
		iPlayer    = h.idx("player_name", "player")
		iType      = h.idx("event_type_name", "type")
		iIndex     = h.idx("index")
		iMatch     = h.idx("match_id")
		iPeriod    = h.idx("period")
		iTimestamp = h.idx("timestamp")
		iMinute    = h.idx("minute")
		iSecond    = h.idx("second")
		iPoss      = h.idx("possession")
		iPossTeam  = h.idx("possession_team_name", "possession_team")
		iTeam      = h.idx("team_name", "team")
		iPosition  = h.idx("player_position_name", "position")
		iSubType   = h.idx("type_name", "duel_type_name")
		iPattern   = h.idx("play_pattern_name", "play_pattern")
		iX         = h.idx("location_x")
		iY         = h.idx("location_y")
		iEndX      = h.idx("end_location_x", "pass_end_location_x")
		iEndY      = h.idx("end_location_y", "pass_end_location_y")
		iRecipient = h.idx("pass_recipient_name", "pass_recipient")
		iOutcome   = h.idx("outcome_name", "outcome")
		iXG        = h.idx("xg", "shot_statsbomb_xg")
		iPressure  = h.idx("under_pressure")
		iCounter   = h.idx("counterpress")
		iAerial    = h.idx("aerial_won")
		iCross     = h.idx("pass_cross")
		iHeight    = h.idx("pass_height_name", "pass_height")
	)
	if iPlayer < 0 {
		return nil, fmt.Errorf("%w: player_name", ErrMissingColumn)
	}
	if iType < 0 {
		return nil, fmt.Errorf("%w: event_type_name", ErrMissingColumn)
	}

	var out []model.Event
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		r := row(rec)

		ev := model.Event{
			MatchID:        r.text(iMatch),
			Timestamp:      r.text(iTimestamp),
			PossessionTeam: r.text(iPossTeam),
			Team:           r.text(iTeam),
			Player:         r.text(iPlayer),
			Position:       r.text(iPosition),
			Type:           r.text(iType),
			SubType:        r.text(iSubType),
			PlayPattern:    r.text(iPattern),
			Recipient:      r.text(iRecipient),
			Outcome:        r.text(iOutcome),
			UnderPressure:  r.asBool(iPressure),
			Counterpress:   r.asBool(iCounter),
			AerialWon:      r.asBool(iAerial),
			PassCross:      r.asBool(iCross),
			PassHeight:     r.text(iHeight),
			HasLocation:    r.text(iX) != "" && r.text(iY) != "",
		}

		ints := []struct {
			dst *int
			i   int
			col string
		}{
			{&ev.Index, iIndex, "index"},
			{&ev.Period, iPeriod, "period"},
			{&ev.Minute, iMinute, "minute"},
			{&ev.Second, iSecond, "second"},
			{&ev.Possession, iPoss, "possession"},
		}
		for _, f := range ints {
			v, err := r.asInt(f.i)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse %s: %w", line, f.col, err)
			}
			*f.dst = v
		}
		if iIndex < 0 {
			ev.Index = len(out) + 1
		}

		floats := []struct {
			dst *float64
			i   int
			col string
		}{
			{&ev.Location.X, iX, "location_x"},
			{&ev.Location.Y, iY, "location_y"},
			{&ev.EndLocation.X, iEndX, "end_location_x"},
			{&ev.EndLocation.Y, iEndY, "end_location_y"},
			{&ev.XG, iXG, "xg"},
		}
		for _, f := range floats {
			v, err := r.asFloat(f.i)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse %s: %w", line, f.col, err)
			}
			*f.dst = v
		}

		out = append(out, ev)
	}
	return out, nil
}

// ReadLineup parses a lineup CSV. formation_player_name is required.
func ReadLineup(r io.Reader) (model.Lineup, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := newHeader(cols)
	iPlayer := h.idx("formation_player_name", "player_name")
	if iPlayer < 0 {
		return nil, fmt.Errorf("%w: formation_player_name", ErrMissingColumn)
	}
	iTeam := h.idx("team_name", "team")
	iPos := h.idx("formation_position_name", "position_name")
	iJersey := h.idx("formation_jersey_number", "jersey_number")

	var out model.Lineup
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		r := row(rec)
		jersey, err := r.asInt(iJersey)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse jersey: %w", line, err)
		}
		out = append(out, model.LineupEntry{
			Team:     r.text(iTeam),
			Player:   r.text(iPlayer),
			Position: r.text(iPos),
			Jersey:   jersey,
		})
	}
	return out, nil
}

// LineupFromEvents builds a lineup from the players of team in order of
// first appearance. Used when no lineup file is available.
func LineupFromEvents(evs []model.Event, team string) model.Lineup {
	seen := make(map[string]struct{})
	var out model.Lineup
	for _, e := range evs {
		if e.Player == "" || (team != "" && e.Team != team) {
			continue
		}
		if _, ok := seen[e.Player]; ok {
			continue
		}
		seen[e.Player] = struct{}{}
		out = append(out, model.LineupEntry{Team: e.Team, Player: e.Player, Position: e.Position})
	}
	return out
}
