package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frasere/matchreport/internal/kpi"
	"github.com/frasere/matchreport/internal/model"
	"github.com/frasere/matchreport/internal/parser"
	"github.com/frasere/matchreport/internal/report"
	"github.com/frasere/matchreport/internal/storage"
)

var (
	ingestLineup string
	ingestName   string
	ingestJobs   int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <events.csv> [<events.csv>...]",
	Short: "Load match events CSVs and store them",
	Long: `Load flat match events CSVs, drop duplicate events and store each match.
A match is keyed by the sha256 of its file; ingesting the same file twice
shows the stored results instead. Several files are read concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestLineup, "lineup", "", "lineup CSV (default: players in order of appearance)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "match label (default: \"Home v Away\")")
	ingestCmd.Flags().IntVar(&ingestJobs, "jobs", 4, "files to read concurrently")
}

func runIngest(cmd *cobra.Command, args []string) error {
	if len(args) > 1 && (ingestLineup != "" || ingestName != "") {
		return fmt.Errorf("--lineup and --name apply to a single events file")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, path := range args {
		fmt.Fprintf(os.Stdout, "Loading %s...\n", path)
	}
	parsed, err := parser.ParseMatches(args, ingestLineup, ingestName, ingestJobs)
	if err != nil {
		return err
	}

	for i, m := range parsed {
		if err := storeMatch(db, args[i], m); err != nil {
			return err
		}
	}
	return nil
}

func storeMatch(db *storage.DB, path string, m *parser.Match) error {
	exists, err := db.MatchExists(m.Summary.Hash)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		cWarn.Fprintf(os.Stdout, "Match %s already stored, showing cached results.\n", m.Summary.Hash[:12])
		return showByHash(db, m.Summary.Hash)
	}

	if m.Summary.Duplicates > 0 {
		logger.Info("dropped duplicate events",
			zap.String("file", path),
			zap.Int("dropped", m.Summary.Duplicates))
	}
	if err := db.InsertMatch(m.Summary, m.Events, m.Lineup); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	printOverview(m.Summary, m.Events)
	return nil
}

// showByHash prints the overview of a stored match.
func showByHash(db *storage.DB, hash string) error {
	s, err := db.GetMatchByPrefix(hash)
	if err != nil || s == nil {
		return fmt.Errorf("match not found: %s", hash)
	}
	evs, err := db.GetEvents(s.Hash)
	if err != nil {
		return err
	}
	printOverview(*s, evs)
	return nil
}

func printOverview(s model.MatchSummary, evs []model.Event) {
	report.PrintMatchSummary(os.Stdout, s)
	report.PrintTeamTable(os.Stdout, kpi.TeamTable(evs))
}

// findMatch resolves a hash prefix to a stored match.
func findMatch(db *storage.DB, prefix string) (*model.MatchSummary, error) {
	s, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("query match: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("no match found with hash prefix %q", prefix)
	}
	return s, nil
}
