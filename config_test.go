package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		yaml := `
name: app
validate_actions: true
listener_policy: fail-fast
log_level: warn
`
		cfg, err := ParseConfig([]byte(yaml))
		require.NoError(t, err)

		assert.Equal(t, "app", cfg.Name)
		assert.True(t, cfg.ValidateActions)
		assert.Equal(t, "fail-fast", cfg.ListenerPolicy)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name string
			yaml string
		}{
			{"unknown policy", "listener_policy: retry"},
			{"unknown level", "log_level: loud"},
			{"unknown key", "workers: 4"},
			{"malformed", "name: [app"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseConfig([]byte(tt.yaml))
				assert.Error(t, err)
			})
		}
	})

	t.Run("options build a store", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("name: app\nvalidate_actions: true\nlistener_policy: fail-fast\n"))
		require.NoError(t, err)

		opts, err := cfg.Options()
		require.NoError(t, err)

		s, err := New(0, counter, opts...)
		require.NoError(t, err)
		assert.Equal(t, "app", s.Name())
		assert.True(t, s.cfg.validate)
		assert.Equal(t, ListenerFailFast, s.cfg.policy)

		_, err = s.Dispatch(Plain{})
		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("log level installs a logger", func(t *testing.T) {
		cfg := &Config{LogLevel: "error"}

		opts, err := cfg.Options()
		require.NoError(t, err)

		s, err := New(0, counter, opts...)
		require.NoError(t, err)
		assert.True(t, s.cfg.logger.Core().Enabled(zapcore.ErrorLevel))
		assert.False(t, s.cfg.logger.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("load from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: disk\n"), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "disk", cfg.Name)

		_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestListenerPolicy(t *testing.T) {
	p, err := ParseListenerPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ListenerIsolate, p)

	p, err = ParseListenerPolicy("fail-fast")
	require.NoError(t, err)
	assert.Equal(t, ListenerFailFast, p)
	assert.Equal(t, "fail-fast", p.String())
	assert.Equal(t, "isolate", ListenerIsolate.String())

	_, err = ParseListenerPolicy("nope")
	assert.Error(t, err)
}
