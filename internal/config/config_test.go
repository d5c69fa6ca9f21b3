package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadFile(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	require.NoError(t, config.Validate())
}

func TestLoadFile_EmptyPath(t *testing.T) {
	config, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoadFile_PartialBlocks(t *testing.T) {
	path := writeFile(t, "gamecenter.hcl", `
logging {
  level = "debug"
}

display {
  show_opponent_cards = true
}

simulate {
  games   = 50
  workers = 2
}
`)

	config, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "gamecenter.log", config.Logging.File, "unset fields keep defaults")
	assert.True(t, config.Display.ShowOpponentCards)
	assert.False(t, config.Display.NoColor)
	assert.Equal(t, 50, config.Simulate.Games)
	assert.Equal(t, 2, config.Simulate.Workers)
	assert.Equal(t, 5, config.Simulate.Timeout)
	assert.Equal(t, 17, config.Simulate.StandOn)
	assert.Equal(t, log.DebugLevel, config.LogLevel())
	assert.Equal(t, 5*time.Second, config.SimulateTimeout())
}

func TestLoadFile_InvalidHCL(t *testing.T) {
	path := writeFile(t, "bad.hcl", `logging { level = `)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_UnknownAttribute(t *testing.T) {
	path := writeFile(t, "bad.hcl", `game { colour = "red" }`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "gamecenter.hcl", `game { seed = 7 }`)
	t.Setenv("GAMECENTER_GAME_SEED", "99")
	t.Setenv("GAMECENTER_LOG_LEVEL", "warn")
	t.Setenv("GAMECENTER_DISPLAY_NO_COLOR", "true")

	config, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, int64(99), config.Game.Seed)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.True(t, config.Display.NoColor)
}

func TestLoad_DotEnvFile(t *testing.T) {
	envFile := writeFile(t, "test.env", "GAMECENTER_SIMULATE_GAMES=12\n")
	t.Cleanup(func() { os.Unsetenv("GAMECENTER_SIMULATE_GAMES") })

	config, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, 12, config.Simulate.Games)
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("GAMECENTER_SIMULATE_WORKERS", "lots")

	_, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"negative rounds", func(c *Config) { c.Game.BlackjackRounds = -1 }},
		{"zero games", func(c *Config) { c.Simulate.Games = 0 }},
		{"negative workers", func(c *Config) { c.Simulate.Workers = -2 }},
		{"zero timeout", func(c *Config) { c.Simulate.Timeout = 0 }},
		{"stand on too high", func(c *Config) { c.Simulate.StandOn = 22 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modify(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestLogLevelFallback(t *testing.T) {
	config := Default()
	config.Logging.Level = "nonsense"
	assert.Equal(t, log.InfoLevel, config.LogLevel())
}
