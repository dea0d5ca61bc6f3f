// Package parser loads a match events file, and optionally a lineup file,
// into deduplicated events, a lineup and a summary ready for storage.
package parser

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frasere/matchreport/internal/events"
	"github.com/frasere/matchreport/internal/model"
)

// Match is a parsed events file.
type Match struct {
	Summary model.MatchSummary
	Events  []model.Event
	Lineup  model.Lineup
}

// ParseMatch reads the events CSV at eventsPath. The sha256 of the file is
// the match key. When lineupPath is empty the lineup of every team is taken
// from the events in order of first appearance. An empty name defaults to
// "Home v Away".
func ParseMatch(eventsPath, lineupPath, name string) (*Match, error) {
	f, err := os.Open(eventsPath)
	if err != nil {
		return nil, fmt.Errorf("open events: %w", err)
	}
	defer f.Close()

	// Hash file for idempotency key.
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hash events: %w", err)
	}
	hash := fmt.Sprintf("%x", h.Sum(nil))

	// Seek back to start for the reader.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek events: %w", err)
	}

	raw, err := events.ReadEvents(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(eventsPath), err)
	}
	evs, dropped := events.Select(raw, "")
	teams := events.Teams(evs)

	var lineup model.Lineup
	if lineupPath != "" {
		lineup, err = readLineup(lineupPath)
		if err != nil {
			return nil, err
		}
	} else {
		for _, team := range teams {
			lineup = append(lineup, events.LineupFromEvents(evs, team)...)
		}
	}

	if name == "" {
		name = strings.Join(teams, " v ")
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(eventsPath), filepath.Ext(eventsPath))
	}

	return &Match{
		Summary: model.MatchSummary{
			Hash:       hash,
			Name:       name,
			MatchID:    matchID(evs),
			Teams:      teams,
			EventCount: len(evs),
			Duplicates: dropped,
			IngestedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Events: evs,
		Lineup: lineup,
	}, nil
}

// ParseMatches parses several events files with at most jobs files open at
// once. Results are in the order of paths. The first failure is returned and
// no matches are.
func ParseMatches(paths []string, lineupPath, name string, jobs int) ([]*Match, error) {
	out := make([]*Match, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			m, err := ParseMatch(path, lineupPath, name)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readLineup(path string) (model.Lineup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lineup: %w", err)
	}
	defer f.Close()
	lineup, err := events.ReadLineup(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return lineup, nil
}

func matchID(evs []model.Event) string {
	for _, e := range evs {
		if e.MatchID != "" {
			return e.MatchID
		}
	}
	return ""
}
