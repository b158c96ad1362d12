package config

import (
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

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "data/stocklist.db", cfg.Database.Path)
	assert.Equal(t, "备货单.xlsx", cfg.Report.InputFile)
	assert.Equal(t, "output", cfg.Report.OutputDir)
	assert.Equal(t, "简洁备货单", cfg.Report.OutputPrefix)
	assert.True(t, cfg.Report.UseTimestamp)
	assert.Equal(t, "configs/segment_rules.json", cfg.Segment.RulesPath)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
report:
  output_dir: exports
  use_timestamp: false
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "exports", cfg.Report.OutputDir)
	assert.False(t, cfg.Report.UseTimestamp)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// Untouched settings keep their defaults.
	assert.Equal(t, "简洁备货单", cfg.Report.OutputPrefix)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  output_dir: exports\n"), 0o644))

	t.Setenv("STOCKLIST_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("STOCKLIST_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reports", cfg.Report.OutputDir)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Path: "data/test.db"},
			Report: ReportConfig{
				OutputDir:    "output",
				OutputPrefix: "简洁备货单",
			},
			Segment: SegmentConfig{RulesPath: "rules.json"},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing output prefix", func(t *testing.T) {
		cfg := valid()
		cfg.Report.OutputPrefix = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing rules path", func(t *testing.T) {
		cfg := valid()
		cfg.Segment.RulesPath = ""
		assert.Error(t, cfg.Validate())
	})
}
