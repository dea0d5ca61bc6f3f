package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/frasere/matchreport/internal/colorscale"
	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/kpi"
	"github.com/frasere/matchreport/internal/network"
	"github.com/frasere/matchreport/internal/report"
	"github.com/frasere/matchreport/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("matchreport shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("matchreport")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show", "team":
			if len(args) == 0 {
				cError.Fprintf(os.Stderr, "usage: %s <hash-prefix>\n", cmd)
				continue
			}
			if err := showByHash(db, args[0]); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "kpis":
			if len(args) < 2 {
				cError.Fprintln(os.Stderr, "usage: kpis <hash-prefix> <group>")
				continue
			}
			shellKPIs(db, args[0], args[1])
		case "network":
			if len(args) < 2 {
				cError.Fprintln(os.Stderr, "usage: network <hash-prefix> <team name>")
				continue
			}
			shellNetwork(db, args[0], strings.Join(args[1:], " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"show <hash-prefix>", "match summary and team KPIs"},
		{"kpis <hash-prefix> <group>", "per-player KPIs (forwards, wingbacks, midfield, centrebacks)"},
		{"network <hash-prefix> <team name>", "full-match pass network for a team"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	matches, err := db.ListMatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	report.PrintMatchList(os.Stdout, matches)
}

func shellKPIs(db *storage.DB, prefix, groupName string) {
	group, err := kpi.ParseGroup(groupName)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	s, err := findMatch(db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	evs, err := db.GetEvents(s.Hash)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	evs = events.ByPositions(evs, group.Positions())
	switch group {
	case kpi.Forwards:
		report.PrintForwardTable(os.Stdout, kpi.ForwardTable(evs), "")
	case kpi.WingBacks:
		report.PrintWingBackTable(os.Stdout, kpi.WingBackTable(evs), "")
	case kpi.Midfield:
		report.PrintMidfieldTable(os.Stdout, kpi.MidfieldTable(evs), "")
	case kpi.CentreBacks:
		report.PrintCentreBackTable(os.Stdout, kpi.CentreBackTable(evs), "")
	}
}

func shellNetwork(db *storage.DB, prefix, team string) {
	s, err := findMatch(db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	all, err := db.GetEvents(s.Hash)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	teamEvents := events.ByTeam(all, team)
	if len(teamEvents) == 0 {
		cWarn.Fprintf(os.Stderr, "no events for team %q (teams: %s)\n", team, strings.Join(s.Teams, ", "))
		return
	}
	stored, err := db.GetLineup(s.Hash)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	lineup := stored.ForTeam(team)
	if len(lineup.Players()) < 2 {
		lineup = events.LineupFromEvents(teamEvents, team)
	}
	cm, err := colorscale.Lookup(cfg.Colormap)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	net, err := network.Build(network.Input{
		Team:    team,
		Events:  teamEvents,
		Lineup:  lineup,
		Touches: events.NewTouchSet(cfg.TouchTypes),
	}, cm)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	cHeader.Fprintf(os.Stdout, "--- Pass network: %s ---\n", team)
	report.PrintNetworkEdges(os.Stdout, net)
	report.PrintNetworkNodes(os.Stdout, net.Nodes, "")
}
