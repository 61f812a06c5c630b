package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "SPY", cfg.Scan.Benchmark)
	assert.Equal(t, "v4", cfg.Scan.Strategy)
	assert.Equal(t, 10, cfg.Scan.Concurrency)
	assert.Equal(t, "data/trade_ledger.json", cfg.Scan.LedgerPath)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
scan:
  strategy: v2
  concurrency: 3
  benchmark: QQQ
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "v2", cfg.Scan.Strategy)
	assert.Equal(t, 3, cfg.Scan.Concurrency)
	assert.Equal(t, "QQQ", cfg.Scan.Benchmark)
	assert.Equal(t, "0 21 * * 1-5", cfg.Scan.Cron, "untouched keys keep defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRADING_EMAIL", "alerts@example.com")
	t.Setenv("TRADING_PASSWORD", "app-password")
	t.Setenv("SCAN_STRATEGY", "v1")
	t.Setenv("PORT", "3000")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "alerts@example.com", cfg.SMTP.Username)
	assert.Equal(t, "alerts@example.com", cfg.SMTP.To, "recipient defaults to sender")
	assert.Equal(t, "app-password", cfg.SMTP.Password)
	assert.Equal(t, "v1", cfg.Scan.Strategy)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	t.Setenv("SCAN_STRATEGY", "v9")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = defaults()
	cfg.Scan.Concurrency = 0
	assert.Error(t, cfg.Validate())

	cfg = defaults()
	cfg.Scan.Benchmark = ""
	assert.Error(t, cfg.Validate())
}

func TestPresetsAreComplete(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 4)

	for name, strat := range presets {
		assert.Equal(t, name, strat.Name)
		assert.Greater(t, strat.BaseStrictness, 0, name)
		assert.Greater(t, strat.MinBars, 0, name)
		assert.Less(t, strat.LowWinRate, strat.HighWinRate, name)
		assert.GreaterOrEqual(t, len(strat.ContractionWindows), 2, name)

		switch strat.TargetMode {
		case TargetPercent:
			assert.Greater(t, strat.GoalPct, strat.StopPct, name)
		case TargetATR:
			assert.Greater(t, strat.GoalATRMult, strat.StopATRMult, name)
		default:
			t.Fatalf("preset %s has unknown target mode %q", name, strat.TargetMode)
		}
	}
}
