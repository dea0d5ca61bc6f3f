package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frasere/matchreport/internal/config"
	"github.com/frasere/matchreport/internal/model"
	"github.com/frasere/matchreport/internal/storage"
)

const testTeam = "Wycombe Wanderers"

// setGlobals installs the state PersistentPreRunE would set up and restores
// the previous values when the test ends.
func setGlobals(t *testing.T) {
	t.Helper()
	prevCfg, prevLogger, prevTeam, prevPeriod := cfg, logger, netTeam, netPeriod
	prevDB, prevConfig, prevWrite := dbPath, configPath, configWrite
	t.Cleanup(func() {
		cfg, logger, netTeam, netPeriod = prevCfg, prevLogger, prevTeam, prevPeriod
		dbPath, configPath, configWrite = prevDB, prevConfig, prevWrite
	})
	cfg = config.Default()
	logger = zap.NewNop()
}

func storedMatch(t *testing.T) (*storage.DB, string) {
	t.Helper()
	db, err := storage.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pass := func(i int, from, to string, x float64) model.Event {
		return model.Event{
			Index: i, MatchID: "1", Period: 1, Possession: 1,
			Team: testTeam, Player: from, Recipient: to, Type: "Pass",
			Location: model.Point{X: x, Y: 40}, HasLocation: true,
		}
	}
	evs := []model.Event{
		pass(1, "Jacobson", "Onyedinma", 30),
		pass(2, "Onyedinma", "Jacobson", 50),
		pass(3, "Jacobson", "Onyedinma", 70),
	}
	hash := "abc123def4567890"
	s := model.MatchSummary{Hash: hash, Name: "test", Teams: []string{testTeam}, EventCount: len(evs)}
	require.NoError(t, db.InsertMatch(s, evs, nil))
	return db, hash
}

func TestDirectedLinksLoadsStoredEvents(t *testing.T) {
	setGlobals(t)
	netTeam, netPeriod = testTeam, 0
	db, hash := storedMatch(t)

	// A cached network has no events in hand.
	links, err := directedLinks(db, hash, nil)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "Jacobson", links[0].Passer)
	assert.Equal(t, "Onyedinma", links[0].Recipient)
	assert.Equal(t, 2, links[0].Passes)
	assert.InDelta(t, 50, links[0].StartAvg.X, 1e-9)
}

func TestDirectedLinksUnknownPeriod(t *testing.T) {
	setGlobals(t)
	netTeam, netPeriod = testTeam, 2
	db, hash := storedMatch(t)

	_, err := directedLinks(db, hash, nil)
	assert.ErrorContains(t, err, "period 2")
}

func TestNetworkCmapHelpListsColormaps(t *testing.T) {
	usage := networkCmd.Flags().Lookup("cmap").Usage
	assert.Contains(t, usage, "viridis")
	assert.Contains(t, usage, "coolwarm")
}

func TestRunConfigWrite(t *testing.T) {
	setGlobals(t)
	dir := t.TempDir()
	configPath = filepath.Join(dir, "sub", "config.yaml")
	dbPath = filepath.Join(dir, "matches.db")
	cfg.Colormap = "Blues"
	configWrite = true

	require.NoError(t, runConfig(configCmd, nil))

	got, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, dbPath, got.DatabasePath)
	assert.Equal(t, "Blues", got.Colormap)
}

func TestRunConfigRejectsUnknownColormap(t *testing.T) {
	setGlobals(t)
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	cfg.Colormap = "rainbow"
	configWrite = true

	assert.Error(t, runConfig(configCmd, nil))
	_, err := config.Load(configPath)
	require.NoError(t, err) // missing file still loads defaults
}
