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

func TestLoadDefaults(t *testing.T) {
	c, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "tcp(127.0.0.1:9306)/", c.Searchd.DSN)
	assert.Equal(t, 4, c.Searchd.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, c.Searchd.ConnMaxLifetime)
	assert.False(t, c.Stats.Enabled)
	assert.Equal(t, 100*time.Millisecond, c.Stats.SlowThreshold)
	assert.Equal(t, "info", c.Log.Level)
	assert.False(t, c.Log.DebugSQL)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SPHINXCTL_SEARCHD_DSN", "tcp(10.0.0.1:9306)/")
	t.Setenv("SPHINXCTL_STATS_ENABLED", "true")
	t.Setenv("SPHINXCTL_LOG_LEVEL", "debug")

	c, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "tcp(10.0.0.1:9306)/", c.Searchd.DSN)
	assert.True(t, c.Stats.Enabled)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestReadFile(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "custom.yaml")
		data := `
searchd:
  dsn: tcp(searchd:9306)/
  max_open_conns: 16
stats:
  enabled: true
  slow_threshold: 250ms
log:
  level: warn
  debug_sql: true
`
		require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

		v := New()
		require.NoError(t, ReadFile(v, file))
		c, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "tcp(searchd:9306)/", c.Searchd.DSN)
		assert.Equal(t, 16, c.Searchd.MaxOpenConns)
		assert.Equal(t, 5*time.Minute, c.Searchd.ConnMaxLifetime)
		assert.True(t, c.Stats.Enabled)
		assert.Equal(t, 250*time.Millisecond, c.Stats.SlowThreshold)
		assert.Equal(t, "warn", c.Log.Level)
		assert.True(t, c.Log.DebugSQL)
	})

	t.Run("explicit_missing", func(t *testing.T) {
		err := ReadFile(New(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config: read")
	})

	t.Run("lookup", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "sphinxctl.yaml"), []byte("searchd:\n  max_open_conns: 2\n"), 0o600))
		t.Chdir(dir)

		v := New()
		require.NoError(t, ReadFile(v, ""))
		c, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Searchd.MaxOpenConns)
	})

	t.Run("lookup_missing", func(t *testing.T) {
		t.Chdir(t.TempDir())
		v := New()
		require.NoError(t, ReadFile(v, ""))
		_, err := Load(v)
		require.NoError(t, err)
	})
}

func TestValidate(t *testing.T) {
	c := Config{
		Searchd: Searchd{MaxOpenConns: -1},
		Stats:   Stats{SlowThreshold: -time.Second},
		Log:     Log{Level: "verbose"},
	}
	err := c.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"searchd.dsn is required",
		"searchd.max_open_conns must not be negative",
		"stats.slow_threshold must not be negative",
		"log.level",
	} {
		assert.Contains(t, err.Error(), want)
	}

	c = Config{Searchd: Searchd{DSN: "tcp(127.0.0.1:9306)/"}, Log: Log{Level: "info"}}
	assert.NoError(t, c.Validate())
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := Log{Level: in}.SlogLevel()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := Log{Level: "loud"}.SlogLevel()
	assert.Error(t, err)
}
