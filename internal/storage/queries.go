package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/frasere/matchreport/internal/colorscale"
	"github.com/frasere/matchreport/internal/model"
)

const teamSep = "|"

// MatchExists returns true if a match with the given hash is already stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch stores a match with its events and lineup in one transaction.
// Re-inserting the same hash replaces the previous rows.
func (db *DB) InsertMatch(summary model.MatchSummary, evs []model.Event, lineup model.Lineup) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"events", "lineups", "network_edges", "network_nodes"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_hash = ?", summary.Hash); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(hash, name, match_id, teams, event_count, duplicates, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.Hash, summary.Name, summary.MatchID, strings.Join(summary.Teams, teamSep),
		summary.EventCount, summary.Duplicates, summary.IngestedAt,
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO events(
			match_hash, idx, src_index, match_id, period, timestamp, minute, second,
			possession, possession_team, team, player, position,
			event_type, sub_type, play_pattern,
			location_x, location_y, end_location_x, end_location_y, has_location,
			recipient, outcome, xg,
			under_pressure, counterpress, aerial_won, pass_cross, pass_height
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range evs {
		_, err = stmt.Exec(
			summary.Hash, i, e.Index, e.MatchID, e.Period, e.Timestamp, e.Minute, e.Second,
			e.Possession, e.PossessionTeam, e.Team, e.Player, e.Position,
			e.Type, e.SubType, e.PlayPattern,
			e.Location.X, e.Location.Y, e.EndLocation.X, e.EndLocation.Y, boolInt(e.HasLocation),
			e.Recipient, e.Outcome, e.XG,
			boolInt(e.UnderPressure), boolInt(e.Counterpress), boolInt(e.AerialWon), boolInt(e.PassCross), e.PassHeight,
		)
		if err != nil {
			return fmt.Errorf("insert event %d: %w", e.Index, err)
		}
	}

	lstmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO lineups(match_hash, ord, team, player, position, jersey)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer lstmt.Close()

	for i, l := range lineup {
		if _, err := lstmt.Exec(summary.Hash, i, l.Team, l.Player, l.Position, l.Jersey); err != nil {
			return fmt.Errorf("insert lineup %s: %w", l.Player, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	db.log.Debug("stored match",
		zap.String("hash", summary.Hash),
		zap.Int("events", len(evs)),
		zap.Int("lineup", len(lineup)))
	return nil
}

// ListMatches returns all stored matches, most recently ingested first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, name, match_id, teams, event_count, duplicates, ingested_at
		FROM matches ORDER BY ingested_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		s, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose hash starts with the given prefix.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	row := db.conn.QueryRow(`
		SELECT hash, name, match_id, teams, event_count, duplicates, ingested_at
		FROM matches WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%")
	s, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(r scanner) (model.MatchSummary, error) {
	var s model.MatchSummary
	var teams string
	if err := r.Scan(&s.Hash, &s.Name, &s.MatchID, &teams, &s.EventCount, &s.Duplicates, &s.IngestedAt); err != nil {
		return s, err
	}
	if teams != "" {
		s.Teams = strings.Split(teams, teamSep)
	}
	return s, nil
}

// GetEvents returns the stored events of a match in ingest order.
func (db *DB) GetEvents(hash string) ([]model.Event, error) {
	rows, err := db.conn.Query(`
		SELECT src_index, match_id, period, timestamp, minute, second,
		       possession, possession_team, team, player, position,
		       event_type, sub_type, play_pattern,
		       location_x, location_y, end_location_x, end_location_y, has_location,
		       recipient, outcome, xg,
		       under_pressure, counterpress, aerial_won, pass_cross, pass_height
		FROM events WHERE match_hash = ? ORDER BY idx`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		var hasLoc, pressure, counter, aerial, cross int
		if err := rows.Scan(
			&e.Index, &e.MatchID, &e.Period, &e.Timestamp, &e.Minute, &e.Second,
			&e.Possession, &e.PossessionTeam, &e.Team, &e.Player, &e.Position,
			&e.Type, &e.SubType, &e.PlayPattern,
			&e.Location.X, &e.Location.Y, &e.EndLocation.X, &e.EndLocation.Y, &hasLoc,
			&e.Recipient, &e.Outcome, &e.XG,
			&pressure, &counter, &aerial, &cross, &e.PassHeight,
		); err != nil {
			return nil, err
		}
		e.HasLocation = hasLoc != 0
		e.UnderPressure = pressure != 0
		e.Counterpress = counter != 0
		e.AerialWon = aerial != 0
		e.PassCross = cross != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetLineup returns the stored lineup of a match in ingest order.
func (db *DB) GetLineup(hash string) (model.Lineup, error) {
	rows, err := db.conn.Query(`
		SELECT team, player, position, jersey
		FROM lineups WHERE match_hash = ? ORDER BY ord`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out model.Lineup
	for rows.Next() {
		var l model.LineupEntry
		if err := rows.Scan(&l.Team, &l.Player, &l.Position, &l.Jersey); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SaveNetwork replaces the stored network of (hash, team, period).
func (db *DB) SaveNetwork(hash string, net model.Network) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"network_edges", "network_nodes"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_hash = ? AND team = ? AND period = ?",
			hash, net.Team, net.Period); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	estmt, err := tx.Prepare(`
		INSERT INTO network_edges(
			match_hash, team, period, ord, player1, player2, pass_count, xgc,
			loc_x1, loc_y1, loc_x2, loc_y2, xgc_color
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer estmt.Close()
	for i, e := range net.Edges {
		_, err := estmt.Exec(hash, net.Team, net.Period, i, e.Player1, e.Player2, e.PassCount, e.XGC,
			e.Loc1.X, e.Loc1.Y, e.Loc2.X, e.Loc2.Y, colorscale.Hex(e.XGCColor))
		if err != nil {
			return fmt.Errorf("insert edge %s-%s: %w", e.Player1, e.Player2, err)
		}
	}

	nstmt, err := tx.Prepare(`
		INSERT INTO network_nodes(
			match_hash, team, period, player, location_x, location_y, touch_count, xg, xg_color
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer nstmt.Close()
	for _, n := range net.Nodes {
		_, err := nstmt.Exec(hash, net.Team, net.Period, n.Player, n.Location.X, n.Location.Y,
			n.TouchCount, n.XG, colorscale.Hex(n.XGColor))
		if err != nil {
			return fmt.Errorf("insert node %s: %w", n.Player, err)
		}
	}
	return tx.Commit()
}

// GetNetwork returns the stored network of (hash, team, period), or nil if
// none was saved.
func (db *DB) GetNetwork(hash, team string, period int) (*model.Network, error) {
	net := &model.Network{Team: team, Period: period}

	rows, err := db.conn.Query(`
		SELECT player1, player2, pass_count, xgc, loc_x1, loc_y1, loc_x2, loc_y2, xgc_color
		FROM network_edges WHERE match_hash = ? AND team = ? AND period = ?
		ORDER BY ord`, hash, team, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e model.NetworkEdge
		var hex string
		if err := rows.Scan(&e.Player1, &e.Player2, &e.PassCount, &e.XGC,
			&e.Loc1.X, &e.Loc1.Y, &e.Loc2.X, &e.Loc2.Y, &hex); err != nil {
			return nil, err
		}
		if e.XGCColor, err = colorscale.ParseHex(hex); err != nil {
			return nil, err
		}
		net.Edges = append(net.Edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	nrows, err := db.conn.Query(`
		SELECT player, location_x, location_y, touch_count, xg, xg_color
		FROM network_nodes WHERE match_hash = ? AND team = ? AND period = ?
		ORDER BY player`, hash, team, period)
	if err != nil {
		return nil, err
	}
	defer nrows.Close()
	for nrows.Next() {
		var n model.PlayerLocation
		var hex string
		if err := nrows.Scan(&n.Player, &n.Location.X, &n.Location.Y, &n.TouchCount, &n.XG, &hex); err != nil {
			return nil, err
		}
		if n.XGColor, err = colorscale.ParseHex(hex); err != nil {
			return nil, err
		}
		net.Nodes = append(net.Nodes, n)
	}
	if err := nrows.Err(); err != nil {
		return nil, err
	}

	if len(net.Edges) == 0 && len(net.Nodes) == 0 {
		return nil, nil
	}
	return net, nil
}

// DeleteMatch removes a match and everything stored for it.
func (db *DB) DeleteMatch(hash string) (bool, error) {
	res, err := db.conn.Exec("DELETE FROM matches WHERE hash = ?", hash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// QueryRaw runs an arbitrary query and returns column names and rows
// rendered as strings. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				rec[i] = "NULL"
			case []byte:
				rec[i] = string(x)
			default:
				rec[i] = fmt.Sprint(x)
			}
		}
		out = append(out, rec)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
