package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	want := Default()
	assert.Equal(t, want.Seed, cfg.Seed)
	assert.Equal(t, want.Voyage, cfg.Voyage)
	assert.Equal(t, want.Sea, cfg.Sea)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plunder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 7
log_level: debug
names: [Jaya, Zou]
plan:
  crew: 30
voyage:
  pirates: 2
  crew_schedule: [4, 8]
  interval: 250ms
sea:
  radius: 9
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"Jaya", "Zou"}, cfg.Names)
	assert.Equal(t, 30, cfg.Plan.Crew)
	assert.Equal(t, Default().Plan.Crews, cfg.Plan.Crews)
	assert.Equal(t, 2, cfg.Voyage.Pirates)
	assert.Equal(t, []int{4, 8}, cfg.Voyage.CrewSchedule)
	assert.Equal(t, 250*time.Millisecond, cfg.Voyage.Interval)
	assert.Equal(t, Default().Voyage.Days, cfg.Voyage.Days)
	assert.Equal(t, 9, cfg.Sea.Radius)
	assert.Equal(t, Default().Sea.SeaLevel, cfg.Sea.SeaLevel)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(EnvDB, "/tmp/other.db")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvRandomOrg, "secret")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "secret", cfg.RandomOrgKey)

	t.Setenv(EnvSeed, "not-a-number")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plan: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative crew", func(c *Config) { c.Plan.Crew = -1 }},
		{"negative crews entry", func(c *Config) { c.Plan.Crews = []int{5, -5} }},
		{"negative pirates", func(c *Config) { c.Voyage.Pirates = -3 }},
		{"negative days", func(c *Config) { c.Voyage.Days = -1 }},
		{"empty schedule", func(c *Config) { c.Voyage.CrewSchedule = nil }},
		{"negative schedule entry", func(c *Config) { c.Voyage.CrewSchedule = []int{1, -1} }},
		{"sea level one", func(c *Config) { c.Sea.SeaLevel = 1 }},
		{"negative money", func(c *Config) { c.Sea.MaxMoney = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Voyage.Interval = time.Second
	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Voyage, loaded.Voyage)
	assert.Equal(t, cfg.Plan, loaded.Plan)
	assert.Equal(t, cfg.Sea, loaded.Sea)
}

func TestSlogLevel_Unknown(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "chatty"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
