package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/menuboard/menuboard/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv map[string]string

func (e testEnv) get(key string) string { return e[key] }

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	home := t.TempDir()
	return testEnv{
		"HOME":            home,
		"XDG_CONFIG_HOME": filepath.Join(home, "config"),
		"XDG_DATA_HOME":   filepath.Join(home, "data"),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	wd := t.TempDir()
	cfg, err := load(wd, false, env.get)
	require.NoError(t, err)

	assert.Equal(t, wd, cfg.WorkingDir())
	assert.Equal(t, 1, cfg.List.ItemHeight)
	assert.Equal(t, 3, cfg.List.Overscan)
	assert.True(t, cfg.ScrollbarEnabled())
	assert.False(t, cfg.Options.Debug)
	assert.Equal(t, filepath.Join(wd, ".menuboard"), cfg.DataDirectory())
	assert.Equal(t, filepath.Join(wd, ".menuboard", "logs", "menuboard.log"), cfg.LogFile())
	assert.Empty(t, cfg.Menu.Path)
}

func TestLoadMergesFiles(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	wd := t.TempDir()
	writeFile(t, globalConfig(env.get), `{"list": {"item_height": 2, "overscan": 5}, "menu": {"path": "global.yaml"}}`)
	writeFile(t, globalConfigData(env.get), `{"list": {"scrollbar": false}}`)
	writeFile(t, filepath.Join(wd, "menuboard.json"), `{"menu": {"path": "project.yaml", "watch": true}}`)
	writeFile(t, filepath.Join(wd, ".menuboard.json"), `{"list": {"overscan": 0}}`)

	cfg, err := load(wd, false, env.get)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.List.ItemHeight)
	assert.Equal(t, 0, cfg.List.Overscan, "an explicit zero is kept")
	assert.False(t, cfg.ScrollbarEnabled())
	assert.Equal(t, "project.yaml", cfg.Menu.Path)
	assert.True(t, cfg.Menu.Watch)

	v, ok := cfg.Field("list.item_height")
	require.True(t, ok)
	assert.Equal(t, "2", v)
	_, ok = cfg.Field("list.missing")
	assert.False(t, ok)
}

func TestLoadEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("overrides files", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		wd := t.TempDir()
		writeFile(t, filepath.Join(wd, "menuboard.json"), `{"list": {"item_height": 2}}`)
		env[envItemHeight] = "3"
		env[envOverscan] = "0"
		env[envDebug] = "true"
		env[envMenu] = "env.json"

		cfg, err := load(wd, false, env.get)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.List.ItemHeight)
		assert.Equal(t, 0, cfg.List.Overscan)
		assert.True(t, cfg.Options.Debug)
		assert.Equal(t, "env.json", cfg.Menu.Path)
	})

	t.Run("debug flag wins", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env[envDebug] = "false"
		cfg, err := load(t.TempDir(), true, env.get)
		require.NoError(t, err)
		assert.True(t, cfg.Options.Debug)
	})

	for _, key := range []string{envItemHeight, envOverscan, envDebug} {
		t.Run("malformed "+key, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			env[key] = "lots"
			_, err := load(t.TempDir(), false, env.get)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		content string
	}{
		{"negative item height", `{"list": {"item_height": -1}}`},
		{"negative overscan", `{"list": {"overscan": -2}}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			wd := t.TempDir()
			writeFile(t, filepath.Join(wd, "menuboard.json"), tc.content)
			_, err := load(wd, false, env.get)
			require.ErrorIs(t, err, window.ErrInvalidConfiguration)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		wd := t.TempDir()
		writeFile(t, filepath.Join(wd, "menuboard.json"), `{"list": `)
		_, err := load(wd, false, env.get)
		require.Error(t, err)
	})
}

func TestSetConfigField(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	wd := t.TempDir()
	cfg, err := load(wd, false, env.get)
	require.NoError(t, err)

	require.NoError(t, cfg.SetConfigField("list.item_height", 2))
	require.NoError(t, cfg.SetConfigField("menu.path", "dinner.yaml"))

	data, err := os.ReadFile(globalConfigData(env.get))
	require.NoError(t, err)
	assert.JSONEq(t, `{"list": {"item_height": 2}, "menu": {"path": "dinner.yaml"}}`, string(data))

	reloaded, err := load(wd, false, env.get)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.List.ItemHeight)
	assert.Equal(t, "dinner.yaml", reloaded.Menu.Path)
}

func TestGlobalPaths(t *testing.T) {
	t.Parallel()

	env := testEnv{"XDG_CONFIG_HOME": "/xdg/config", "XDG_DATA_HOME": "/xdg/data"}
	assert.Equal(t, filepath.Join("/xdg/config", "menuboard", "menuboard.json"), globalConfig(env.get))
	assert.Equal(t, filepath.Join("/xdg/data", "menuboard", "menuboard.json"), globalConfigData(env.get))
}
