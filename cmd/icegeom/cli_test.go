package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/icegeom/config"
	"github.com/katalvlaran/icegeom/geometry"
	"github.com/katalvlaran/icegeom/render"
	"github.com/katalvlaran/icegeom/scenario"
)

// setup resets the globals the root command normally fills in.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	t.Cleanup(func() {
		scenarioPath, builtinName = "", ""
		runRanks, runFormat = 0, string(render.FormatText)
		verifyRanks = []int{1, 2, 3, 4}
	})

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestRunCmd(t *testing.T) {
	cmd, out := setup(t)
	builtinName = "trench"
	runRanks = 2

	require.NoError(t, runScenario(cmd, nil))
	text := out.String()
	for name := range render.Legends {
		assert.Contains(t, text, "# "+name)
	}
	assert.Contains(t, text, "# shelves")
}

func TestRunCmd_YAML(t *testing.T) {
	cmd, out := setup(t)
	ws := t.TempDir()
	scenarioPath = filepath.Join(ws, "strip.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte("cells:\n  - GGG\n  - FFF\n  - FFF\n  - OOO\n"), 0644))
	runFormat = "yaml"

	require.NoError(t, runScenario(cmd, nil))

	var snap geometry.Snapshot
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, 3, snap.Mx)
	assert.Equal(t, [][]int{{-1, -1, -1}, {1, 1, 1}, {2, 2, 2}, {-1, -1, -1}}, snap.DistanceGL)
	require.Len(t, snap.Shelves, 1)
}

func TestRunCmd_Errors(t *testing.T) {
	cmd, _ := setup(t)

	err := runScenario(cmd, nil)
	require.Error(t, err, "no scenario selected")

	builtinName = "bay"
	runFormat = "html"
	require.ErrorIs(t, runScenario(cmd, nil), render.ErrUnknownFormat)

	builtinName = "nowhere"
	runFormat = "text"
	require.ErrorIs(t, runScenario(cmd, nil), scenario.ErrUnknownScenario)
}

func TestVerifyCmd(t *testing.T) {
	cmd, out := setup(t)
	verifyRanks = []int{1, 2, 3}

	require.NoError(t, verifyScenarios(cmd, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(scenario.Names()))
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "ok"), line)
	}
}

func TestVerifyCmd_NoFittingRanks(t *testing.T) {
	cmd, _ := setup(t)
	builtinName = "trench"
	verifyRanks = []int{50}

	err := verifyScenarios(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rank count fits")
}

func TestScenariosCmd(t *testing.T) {
	_, _ = setup(t)
	configPath = filepath.Join(t.TempDir(), "absent.yaml")
	defer func() { configPath = "icegeom.yaml" }()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"scenarios", "--config", configPath})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	for _, name := range scenario.Names() {
		assert.Contains(t, out.String(), name)
	}
	assert.NotEmpty(t, runID)
}
