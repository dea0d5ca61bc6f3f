package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/kpi"
	"github.com/frasere/matchreport/internal/report"
)

var (
	kpiGroup  string
	kpiTeam   string
	kpiPeriod int
	kpiFocus  string
)

var kpisCmd = &cobra.Command{
	Use:   "kpis <hash-prefix>",
	Short: "Show per-player KPIs for a position group",
	Long: `Show per-player KPIs for one position group of a stored match.

Groups:
  forwards     goals, xG, shots, xG/shot, shot/touch%, box touches, pressures, dribbles, aerials
  wingbacks    tackles, pressures, crosses, deep progressions, pass%, dribbles, aerials, fouls won
  midfield     pass%, deep progressions, dribbles, fouls won, pressures, tackles
  centrebacks  pass%, pressures, fouls won, tackles, interceptions, aerials, clearances`,
	Args: cobra.ExactArgs(1),
	RunE: runKPIs,
}

func init() {
	kpisCmd.Flags().StringVar(&kpiGroup, "group", string(kpi.Forwards), "forwards, wingbacks, midfield or centrebacks")
	kpisCmd.Flags().StringVar(&kpiTeam, "team", "", "restrict to one team")
	kpisCmd.Flags().IntVar(&kpiPeriod, "period", 0, "period to include (0 = whole match)")
	kpisCmd.Flags().StringVar(&kpiFocus, "player", "", "highlight player")
}

func runKPIs(cmd *cobra.Command, args []string) error {
	group, err := kpi.ParseGroup(kpiGroup)
	if err != nil {
		return err
	}

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
	if kpiTeam != "" {
		evs = events.ByTeam(evs, kpiTeam)
	}
	evs = events.ByPositions(events.ByPeriod(evs, kpiPeriod), group.Positions())
	if len(evs) == 0 {
		cWarn.Fprintf(os.Stderr, "No %s events in this match.\n", group)
		return nil
	}

	report.PrintMatchSummary(os.Stdout, *s)
	cHeader.Fprintf(os.Stdout, "--- %s KPIs (%s) ---\n", group, periodLabel(kpiPeriod))
	switch group {
	case kpi.Forwards:
		report.PrintForwardTable(os.Stdout, kpi.ForwardTable(evs), kpiFocus)
	case kpi.WingBacks:
		report.PrintWingBackTable(os.Stdout, kpi.WingBackTable(evs), kpiFocus)
	case kpi.Midfield:
		report.PrintMidfieldTable(os.Stdout, kpi.MidfieldTable(evs), kpiFocus)
	case kpi.CentreBacks:
		report.PrintCentreBackTable(os.Stdout, kpi.CentreBackTable(evs), kpiFocus)
	}
	return nil
}
