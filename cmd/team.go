package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/kpi"
	"github.com/frasere/matchreport/internal/report"
)

var teamPeriod int

var teamCmd = &cobra.Command{
	Use:   "team <hash-prefix>",
	Short: "Show whole-match team KPIs",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeam,
}

func init() {
	teamCmd.Flags().IntVar(&teamPeriod, "period", 0, "period to include (0 = whole match)")
}

func runTeam(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := findMatch(db, args[0])
	if err != nil {
		return err
	}
	evs, err := db.GetEvents(s.Hash)
	if err != nil {
		return fmt.Errorf("get events: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, *s)
	cHeader.Fprintf(os.Stdout, "--- Team KPIs (%s) ---\n", periodLabel(teamPeriod))
	report.PrintTeamTable(os.Stdout, kpi.TeamTable(events.ByPeriod(evs, teamPeriod)))
	return nil
}
