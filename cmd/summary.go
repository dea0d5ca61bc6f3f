package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var summaryTop int

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all matches stored in the database:
match and event counts, ingest date range, saved networks and the most
active players.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 10, "number of players to list")
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetDBOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalMatches == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'matchreport ingest <events.csv>' to add one.")
		return nil
	}

	cHeader.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Matches stored : %d\n", ov.TotalMatches)
	fmt.Fprintf(os.Stdout, "  Ingested       : %s → %s\n", ov.EarliestIngest, ov.LatestIngest)
	fmt.Fprintf(os.Stdout, "  Events         : %d\n", ov.TotalEvents)
	fmt.Fprintf(os.Stdout, "  Players seen   : %d\n", ov.UniquePlayers)
	fmt.Fprintf(os.Stdout, "  Saved networks : %d\n", ov.SavedNetworks)

	players, err := db.GetTopPlayersByEvents(summaryTop)
	if err != nil {
		return fmt.Errorf("get top players: %w", err)
	}
	cHeader.Fprintf(os.Stdout, "\n--- Most Active Players ---\n\n")
	pt := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	pt.Header("PLAYER", "TEAM", "MATCHES", "EVENTS", "PASSES", "SHOTS", "XG")
	for _, p := range players {
		pt.Append(
			p.Player,
			p.Team,
			strconv.Itoa(p.Matches),
			strconv.Itoa(p.Events),
			strconv.Itoa(p.Passes),
			strconv.Itoa(p.Shots),
			fmt.Sprintf("%.2f", p.XG),
		)
	}
	pt.Render()
	return nil
}
