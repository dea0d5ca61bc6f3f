package storage

// Overview is a whole-database summary.
type Overview struct {
	TotalMatches   int
	TotalEvents    int
	UniquePlayers  int
	SavedNetworks  int
	EarliestIngest string
	LatestIngest   string
}

// PlayerActivity is one player's event volume across all stored matches.
type PlayerActivity struct {
	Player  string
	Team    string
	Matches int
	Events  int
	Passes  int
	Shots   int
	XG      float64
}

// GetDBOverview returns aggregate counts across all stored matches.
func (db *DB) GetDBOverview() (Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(1), COALESCE(MIN(ingested_at), ''), COALESCE(MAX(ingested_at), '')
		FROM matches`).Scan(&ov.TotalMatches, &ov.EarliestIngest, &ov.LatestIngest)
	if err != nil {
		return ov, err
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(1), COUNT(DISTINCT NULLIF(player, ''))
		FROM events`).Scan(&ov.TotalEvents, &ov.UniquePlayers)
	if err != nil {
		return ov, err
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(1) FROM (
			SELECT DISTINCT match_hash, team, period FROM network_nodes
			UNION
			SELECT DISTINCT match_hash, team, period FROM network_edges
		)`).Scan(&ov.SavedNetworks)
	return ov, err
}

// GetTopPlayersByEvents returns the players with the most events, most active first.
func (db *DB) GetTopPlayersByEvents(limit int) ([]PlayerActivity, error) {
	rows, err := db.conn.Query(`
		SELECT player,
		       MAX(team),
		       COUNT(DISTINCT match_hash),
		       COUNT(1),
		       SUM(CASE WHEN event_type = 'Pass' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN event_type = 'Shot' THEN 1 ELSE 0 END),
		       COALESCE(SUM(xg), 0)
		FROM events
		WHERE player != ''
		GROUP BY player
		ORDER BY COUNT(1) DESC, player
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlayerActivity
	for rows.Next() {
		var p PlayerActivity
		if err := rows.Scan(&p.Player, &p.Team, &p.Matches, &p.Events, &p.Passes, &p.Shots, &p.XG); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
