package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Pico.ExcludeIceRises)
	assert.Equal(t, -800.0, cfg.Pico.ContinentalShelfDepth)
	assert.Equal(t, 5, cfg.Pico.NumberOfBoxes)
	assert.Equal(t, 1, cfg.Run.Ranks)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icegeom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pico:
  exclude_ice_rises: false
  number_of_boxes: 3
run:
  ranks: 4
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Pico.ExcludeIceRises)
	assert.Equal(t, 3, cfg.Pico.NumberOfBoxes)
	assert.Equal(t, -800.0, cfg.Pico.ContinentalShelfDepth, "unset keys keep defaults")
	assert.Equal(t, 4, cfg.Run.Ranks)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pico:\n  number_of_boxes: 0\n"), 0644))
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("pico: [unclosed"), 0644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pico.ContinentalShelfDepth = -650
	cfg.Pico.MaxDistanceRounds = 100
	cfg.Logging.Format = "json"

	path := filepath.Join(t.TempDir(), "nested", "icegeom.yaml")
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ICEGEOM_RANKS", "3")
	t.Setenv("ICEGEOM_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Run.Ranks)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"boxes":  func(c *Config) { c.Pico.NumberOfBoxes = 0 },
		"rounds": func(c *Config) { c.Pico.MaxDistanceRounds = -1 },
		"ranks":  func(c *Config) { c.Run.Ranks = 0 },
		"format": func(c *Config) { c.Logging.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
