package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/kpi"
	"github.com/frasere/matchreport/internal/model"
	"github.com/frasere/matchreport/internal/report"
)

var showPlayer string

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored match: summary, team KPIs and lineup",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPlayer, "player", "", "add a per-period breakdown for this player")
}

func runShow(cmd *cobra.Command, args []string) error {
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
	lineup, err := db.GetLineup(s.Hash)
	if err != nil {
		return fmt.Errorf("get lineup: %w", err)
	}

	printOverview(*s, evs)
	fmt.Fprintln(os.Stdout)
	cHeader.Fprintln(os.Stdout, "--- Lineup ---")
	report.PrintLineup(os.Stdout, lineup)

	if showPlayer == "" {
		return nil
	}
	var lines []model.PlayerMatchLine
	for _, period := range periods(evs) {
		line, ok := kpi.PlayerLine(events.ByPeriod(evs, period), showPlayer)
		if !ok {
			continue
		}
		line.MatchHash, line.MatchName = s.Hash, periodLabel(period)
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		cWarn.Fprintf(os.Stderr, "No events for %q in this match.\n", showPlayer)
		return nil
	}
	fmt.Fprintln(os.Stdout)
	cHeader.Fprintf(os.Stdout, "--- %s by period ---\n", showPlayer)
	report.PrintTrendTable(os.Stdout, lines)
	return nil
}

// periods returns the distinct non-zero periods of evs in ascending order.
func periods(evs []model.Event) []int {
	seen := make(map[int]bool)
	var out []int
	for _, e := range evs {
		if e.Period > 0 && !seen[e.Period] {
			seen[e.Period] = true
			out = append(out, e.Period)
		}
	}
	slices.Sort(out)
	return out
}
