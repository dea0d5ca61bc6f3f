package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frasere/matchreport/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match database",
	Long: `Run an arbitrary SQL query against the match database and print results as a table.

Schema overview:
  matches(hash, name, match_id, teams, event_count, duplicates, ingested_at)
  events(match_hash, idx, src_index, match_id, period, timestamp, minute, second,
    possession, possession_team, team, player, position, event_type, sub_type,
    play_pattern, location_x, location_y, end_location_x, end_location_y,
    has_location, recipient, outcome, xg, under_pressure, counterpress,
    aerial_won, pass_cross, pass_height)
  lineups(match_hash, ord, team, player, position, jersey)
  network_edges(match_hash, team, period, ord, player1, player2, pass_count, xgc,
    loc_x1, loc_y1, loc_x2, loc_y2, xgc_color)
  network_nodes(match_hash, team, period, player, location_x, location_y,
    touch_count, xg, xg_color)

Note: teams is a '|'-separated list. Completed passes have event_type = 'Pass' and outcome = ''.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "(no rows)")
		return nil
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}
