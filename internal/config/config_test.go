// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/db47h/logicsim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_defaults(t *testing.T) {
	c, err := config.LoadFrom("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
	assert.True(t, c.IsDevelopment())
}

func TestLoad_file_and_env(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logicsim.yaml")
	writeFile(t, path, `
addr: ":9000"
environment: production
log_level: warn
max_nodes: 100
shutdown_timeout: 3s
cors_origins: ["https://a.example"]
`)
	c, err := config.LoadFrom(path, env(map[string]string{
		"LOGICSIM_LOG_LEVEL":        "debug",
		"LOGICSIM_MAX_TRUTH_INPUTS": "8",
		"LOGICSIM_CORS_ORIGINS":     "https://b.example, https://c.example",
		"LOGICSIM_OTLP_ENDPOINT":    "localhost:4317",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, config.Production, c.Environment)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 100, c.MaxNodes)
	assert.Equal(t, 8, c.MaxTruthInputs)
	assert.Equal(t, 3*time.Second, c.ShutdownTimeout)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, c.CORSOrigins)
	assert.Equal(t, "localhost:4317", c.OTLPEndpoint)
}

func TestLoad_errors(t *testing.T) {
	td := []struct {
		name string
		env  map[string]string
	}{
		{"bad level", map[string]string{"LOGICSIM_LOG_LEVEL": "verbose"}},
		{"bad env", map[string]string{"LOGICSIM_ENV": "staging"}},
		{"not a number", map[string]string{"LOGICSIM_MAX_NODES": "lots"}},
		{"zero nodes", map[string]string{"LOGICSIM_MAX_NODES": "0"}},
		{"huge truth table", map[string]string{"LOGICSIM_MAX_TRUTH_INPUTS": "32"}},
		{"no addr", map[string]string{"LOGICSIM_ADDR": ""}},
		{"bad endpoint", map[string]string{"LOGICSIM_OTLP_ENDPOINT": "no port"}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := config.LoadFrom("", env(d.env))
			assert.Error(t, err)
		})
	}

	_, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "addr: [")
	_, err = config.LoadFrom(path, env(nil))
	assert.Error(t, err)
}

func TestWatcher(t *testing.T) {
	config.DebounceDelay = 10 * time.Millisecond
	path := filepath.Join(t.TempDir(), "logicsim.yaml")
	writeFile(t, path, "log_level: info\n")
	initial, err := config.Load(path)
	require.NoError(t, err)

	w, err := config.NewWatcher(path, initial, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	changed := make(chan *config.Config, 4)
	w.OnChange(func(c *config.Config) { changed <- c })

	// invalid configurations are ignored
	writeFile(t, path, "log_level: loud\n")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "info", w.Current().LogLevel)

	writeFile(t, path, "log_level: debug\n")
	select {
	case c := <-changed:
		assert.Equal(t, "debug", c.LogLevel)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
	assert.Equal(t, "debug", w.Current().LogLevel)
}

func TestWatcher_callbacks(t *testing.T) {
	config.DebounceDelay = 10 * time.Millisecond
	path := filepath.Join(t.TempDir(), "logicsim.yaml")
	writeFile(t, path, "max_nodes: 10\n")
	initial, err := config.Load(path)
	require.NoError(t, err)

	w, err := config.NewWatcher(path, initial, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	first := make(chan int, 4)
	second := make(chan int, 4)
	w.OnChange(func(c *config.Config) {
		first <- c.MaxNodes
		// registering from a callback must not block the watcher
		w.OnChange(func(*config.Config) {})
	})
	w.OnChange(func(c *config.Config) { second <- c.MaxNodes })

	writeFile(t, path, "max_nodes: 20\n")
	for _, ch := range []chan int{first, second} {
		select {
		case n := <-ch:
			assert.Equal(t, 20, n)
		case <-time.After(5 * time.Second):
			t.Fatal("callback not called")
		}
	}
}
