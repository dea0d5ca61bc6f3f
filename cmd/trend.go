package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frasere/matchreport/internal/kpi"
	"github.com/frasere/matchreport/internal/model"
	"github.com/frasere/matchreport/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <player name>",
	Short: "Chronological per-match performance trend for a player",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	player := strings.Join(args, " ")

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	// ListMatches is newest first.
	slices.Reverse(matches)

	var lines []model.PlayerMatchLine
	for _, m := range matches {
		evs, err := db.GetEvents(m.Hash)
		if err != nil {
			return fmt.Errorf("get events for %s: %w", m.Hash[:12], err)
		}
		line, ok := kpi.PlayerLine(evs, player)
		if !ok {
			continue
		}
		line.MatchHash, line.MatchName, line.IngestedAt = m.Hash, m.Name, m.IngestedAt
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		fmt.Printf("no matches found for %q\n", player)
		return nil
	}

	cHeader.Fprintf(os.Stdout, "--- Trend: %s ---\n", player)
	report.PrintTrendTable(os.Stdout, lines)
	return nil
}
