package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frasere/matchreport/internal/colorscale"
	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/model"
	"github.com/frasere/matchreport/internal/network"
	"github.com/frasere/matchreport/internal/render"
	"github.com/frasere/matchreport/internal/report"
	"github.com/frasere/matchreport/internal/storage"
)

var (
	netTeam      string
	netPeriod    int
	netGoalsOnly bool
	netColormap  string
	netSVG       string
	netJSON      string
	netSave      bool
	netCached    bool
	netDirected  bool
	netMinPasses int
	netFocus     string
)

var networkCmd = &cobra.Command{
	Use:   "network <hash-prefix>",
	Short: "Compute a team's pass network with xG contribution",
	Long: `Compute the pass network of one team: completed-pass counts between every
pair of lineup players, each pair's expected-goals contribution (xGC) from
shot-ending possessions, and every player's average touch location.`,
	Args: cobra.ExactArgs(1),
	RunE: runNetwork,
}

func init() {
	f := networkCmd.Flags()
	f.StringVar(&netTeam, "team", "", "team name (required)")
	f.IntVar(&netPeriod, "period", 0, "period to include (0 = whole match)")
	f.BoolVar(&netGoalsOnly, "goals-only", false, "credit xG only from possessions ending in a goal")
	f.StringVar(&netColormap, "cmap", "", "colour map for xG/xGC, one of "+strings.Join(colorscale.Names(), ", ")+" (\"_r\" reverses; default from config)")
	f.StringVar(&netSVG, "svg", "", "write the network as SVG to this file")
	f.StringVar(&netJSON, "json", "", "write the network as JSON to this file")
	f.BoolVar(&netSave, "save", false, "store the computed network")
	f.BoolVar(&netCached, "cached", false, "show the stored network instead of recomputing")
	f.BoolVar(&netDirected, "directed", false, "also print passer to recipient links")
	f.IntVar(&netMinPasses, "min-passes", 1, "hide links and SVG edges with fewer passes")
	f.StringVar(&netFocus, "player", "", "highlight player")
	networkCmd.MarkFlagRequired("team")
}

func runNetwork(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := findMatch(db, args[0])
	if err != nil {
		return err
	}
	if !slices.Contains(s.Teams, netTeam) {
		return fmt.Errorf("team %q not in match (teams: %s)", netTeam, strings.Join(s.Teams, ", "))
	}

	var net model.Network
	var teamEvents []model.Event
	if netCached {
		stored, err := db.GetNetwork(s.Hash, netTeam, netPeriod)
		if err != nil {
			return fmt.Errorf("get network: %w", err)
		}
		if stored == nil {
			return fmt.Errorf("no stored network for %s period %d; run with --save first", netTeam, netPeriod)
		}
		net = *stored
	} else {
		net, teamEvents, err = computeNetwork(db, s)
		if err != nil {
			return err
		}
	}

	report.PrintMatchSummary(os.Stdout, *s)
	cHeader.Fprintf(os.Stdout, "--- Pass network: %s (%s) ---\n", net.Team, periodLabel(net.Period))
	report.PrintNetworkEdges(os.Stdout, net)
	fmt.Fprintln(os.Stdout)
	cHeader.Fprintln(os.Stdout, "--- Average touch locations ---")
	report.PrintNetworkNodes(os.Stdout, net.Nodes, netFocus)

	if netDirected {
		links, err := directedLinks(db, s.Hash, teamEvents)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
		cHeader.Fprintln(os.Stdout, "--- Directed links ---")
		report.PrintDirectedLinks(os.Stdout, links, netMinPasses)
	}

	if netSave && !netCached {
		if err := db.SaveNetwork(s.Hash, net); err != nil {
			return fmt.Errorf("save network: %w", err)
		}
		cMuted.Fprintf(os.Stdout, "Saved network for %s.\n", net.Team)
	}
	if netSVG != "" {
		if err := writeSVG(netSVG, s, net); err != nil {
			return err
		}
		cMuted.Fprintf(os.Stdout, "Wrote %s\n", netSVG)
	}
	if netJSON != "" {
		data, err := json.MarshalIndent(net, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal network: %w", err)
		}
		if err := os.WriteFile(netJSON, data, 0644); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		cMuted.Fprintf(os.Stdout, "Wrote %s\n", netJSON)
	}
	return nil
}

func computeNetwork(db *storage.DB, s *model.MatchSummary) (model.Network, []model.Event, error) {
	teamEvents, err := loadTeamEvents(db, s.Hash)
	if err != nil {
		return model.Network{}, nil, err
	}

	lineup, err := teamLineup(db, s.Hash, teamEvents)
	if err != nil {
		return model.Network{}, nil, err
	}

	name := netColormap
	if name == "" {
		name = cfg.Colormap
	}
	cm, err := colorscale.Lookup(name)
	if err != nil {
		return model.Network{}, nil, err
	}

	net, err := network.Build(network.Input{
		Team:    netTeam,
		Period:  netPeriod,
		Events:  teamEvents,
		Lineup:  lineup,
		Touches: events.NewTouchSet(cfg.TouchTypes),
		XGC:     network.XGCOptions{GoalsOnly: netGoalsOnly},
	}, cm)
	if err != nil {
		return model.Network{}, nil, err
	}
	logger.Debug("built pass network",
		zap.String("team", netTeam),
		zap.Int("period", netPeriod),
		zap.Int("events", len(teamEvents)),
		zap.Int("edges", len(net.Edges)),
		zap.Int("nodes", len(net.Nodes)))
	return net, teamEvents, nil
}

// loadTeamEvents returns the stored events of netTeam in netPeriod.
func loadTeamEvents(db *storage.DB, hash string) ([]model.Event, error) {
	all, err := db.GetEvents(hash)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	teamEvents := events.ByPeriod(events.ByTeam(all, netTeam), netPeriod)
	if len(teamEvents) == 0 {
		return nil, fmt.Errorf("no events for %s in %s", netTeam, periodLabel(netPeriod))
	}
	return teamEvents, nil
}

// directedLinks builds the passer to recipient links of netTeam. Events are
// loaded from the store when teamEvents is nil, as for a cached network.
func directedLinks(db *storage.DB, hash string, teamEvents []model.Event) ([]model.DirectedLink, error) {
	if teamEvents == nil {
		var err error
		if teamEvents, err = loadTeamEvents(db, hash); err != nil {
			return nil, err
		}
	}
	lineup, err := teamLineup(db, hash, teamEvents)
	if err != nil {
		return nil, err
	}
	return network.Directed(teamEvents, lineup, events.NewTouchSet(cfg.TouchTypes)), nil
}

// teamLineup returns the stored lineup of netTeam, falling back to the
// players seen in teamEvents.
func teamLineup(db *storage.DB, hash string, teamEvents []model.Event) (model.Lineup, error) {
	stored, err := db.GetLineup(hash)
	if err != nil {
		return nil, fmt.Errorf("get lineup: %w", err)
	}
	lineup := stored.ForTeam(netTeam)
	if len(lineup.Players()) < 2 {
		logger.Debug("lineup incomplete, using players from events", zap.String("team", netTeam))
		lineup = events.LineupFromEvents(teamEvents, netTeam)
	}
	return lineup, nil
}

func writeSVG(path string, s *model.MatchSummary, net model.Network) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	defer f.Close()

	opts := render.DefaultOptions()
	opts.MinPasses = netMinPasses
	opts.Title = fmt.Sprintf("%s: %s pass network (%s)", s.Name, net.Team, periodLabel(net.Period))
	if err := render.Network(f, net, opts); err != nil {
		return err
	}
	return f.Close()
}

func periodLabel(p int) string {
	if p == 0 {
		return "full match"
	}
	return fmt.Sprintf("period %d", p)
}
