package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/ioconfig"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesNamedFieldsOnly(t *testing.T) {
	path := writeScenario(t, `
situation:
  numberofagents: 25
unit:
  flockingtype: 3
`)

	params, err := ioconfig.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, params.Situation.NumberOfAgents)
	assert.Equal(t, 3, params.Unit.FlockingType)

	// Everything else should still be the compiled-in defaults.
	defaults := config.DefaultParams()
	assert.Equal(t, defaults.Flocking.VFlock, params.Flocking.VFlock)
	assert.Equal(t, defaults.Situation.DeltaT, params.Situation.DeltaT)
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	path := writeScenario(t, `
situation:
  numberofagents: 0
`)

	_, err := ioconfig.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := ioconfig.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
