package config

import (
	"os"
	"path/filepath"
	"testing"

	"gacha-helper/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withWorkDir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadYAMLMissingFileKeepsDefaults(t *testing.T) {
	withWorkDir(t, t.TempDir())

	cfg := &model.Config{}
	require.NoError(t, loadYAML(cfg))

	assert.Empty(t, cfg.Scrapers)
	assert.Equal(t, 20, cfg.Reminder.BatchSize)
	assert.Equal(t, 1500, cfg.Reminder.DrainDelayMs)
	assert.Equal(t, 5000, cfg.Reminder.RetryDelayMs)
	assert.Equal(t, 60, cfg.Reminder.DefaultDelaySec)
	assert.Equal(t, 2, cfg.Reminder.MinDelaySec)
	assert.Equal(t, 300, cfg.Reminder.MaxDelaySec)
}

func TestLoadYAMLParsesScrapersAndOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	raw := `scrapers:
  dank:
    name: dank
    bot_id: "270904126974590976"
    enabled: true
  karuta:
    name: karuta
    bot_id: "646937666251915264"
    enabled: false
reminder:
  batch_size: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "config.yaml"), []byte(raw), 0o644))
	withWorkDir(t, dir)

	cfg := &model.Config{}
	require.NoError(t, loadYAML(cfg))

	sc, ok := cfg.ScraperByBotID("270904126974590976")
	require.True(t, ok)
	assert.Equal(t, "dank", sc.Name)

	// Disabled entries are parsed but never matched.
	_, ok = cfg.ScraperByBotID("646937666251915264")
	assert.False(t, ok)

	assert.Equal(t, 5, cfg.Reminder.BatchSize)
	assert.Equal(t, 1500, cfg.Reminder.DrainDelayMs)
}
