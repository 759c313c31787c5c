// pkg/config/loader_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Temp dirs, environment
// PURPOSE: Test configuration layering, decoding and validation

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dtovl/pkg/config"
	"github.com/arthur-debert/dtovl/pkg/configfs"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/paths"
	"github.com/arthur-debert/dtovl/pkg/testutil"
	"github.com/arthur-debert/dtovl/pkg/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{SkipDefaultFiles: true})
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, configfs.DefaultMount, cfg.Mount)
	assert.Equal(t, []string{"/lib/firmware"}, cfg.SearchPath)
	assert.Equal(t, types.MethodBlob, cfg.Method)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.False(t, cfg.Log.File)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `
mount = "/tmp/overlays"
search_path = ["/boot/overlays", "/lib/firmware"]
method = "path"

[log]
file = true
`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `
mount: /tmp/overlays
search_path:
  - /boot/overlays
  - /lib/firmware
method: path
log:
  file: true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			cfg, err := config.Load(config.LoadOptions{ConfigFile: path})
			require.NoError(t, err)

			assert.Equal(t, "/tmp/overlays", cfg.Mount)
			assert.Equal(t, []string{"/boot/overlays", "/lib/firmware"}, cfg.SearchPath)
			assert.Equal(t, types.MethodPath, cfg.Method)
			assert.True(t, cfg.Log.File)
			// Untouched keys keep their defaults
			assert.Equal(t, config.FormatText, cfg.Format)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := config.Load(config.LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_BrokenConfigFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "mount = [unterminated")

	_, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	assert.Equal(t, path, errors.GetErrorDetails(err)["path"])
}

func TestLoad_UserConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv(paths.EnvConfigDir, "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	writeFile(t, configHome, "dtovl/config.toml", `format = "json"`)
	assert.Equal(t, filepath.Join(configHome, "dtovl", "config.toml"), paths.UserConfigFile())

	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, cfg.Format)

	cfg, err = config.Load(config.LoadOptions{SkipDefaultFiles: true})
	require.NoError(t, err)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DTOVL_SEARCH_PATH", "/a, /b,,")
	t.Setenv("DTOVL_METHOD", "path")
	t.Setenv("DTOVL_LOG__FILE", "true")

	cfg, err := config.Load(config.LoadOptions{SkipDefaultFiles: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, cfg.SearchPath)
	assert.Equal(t, types.MethodPath, cfg.Method)
	assert.True(t, cfg.Log.File)
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Setenv("DTOVL_MOUNT", "/from/env")
	path := writeFile(t, t.TempDir(), "config.toml", `mount = "/from/file"`)

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: path,
		Overrides: map[string]interface{}{
			"mount":       "/from/flag",
			"search_path": "/x,/y",
			"format":      "YAML",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.Mount)
	assert.Equal(t, []string{"/x", "/y"}, cfg.SearchPath)
	assert.Equal(t, config.FormatYAML, cfg.Format)
}

func TestValidate(t *testing.T) {
	const mount = "/sys/kernel/config/device-tree/overlays"
	fake := testutil.NewFakeConfigFS(t, mount)
	fake.AddBlob(t, "/tmp", "plain-file", []byte("x"))

	tests := []struct {
		name   string
		mutate func(*config.Config)
		key    string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "empty_mount", mutate: func(c *config.Config) { c.Mount = "" }, key: "mount"},
		{name: "missing_mount", mutate: func(c *config.Config) { c.Mount = "/nowhere" }, key: "mount"},
		{name: "mount_is_file", mutate: func(c *config.Config) { c.Mount = "/tmp/plain-file" }, key: "mount"},
		{name: "empty_search_path", mutate: func(c *config.Config) { c.SearchPath = nil }, key: "search_path"},
		{name: "bad_method", mutate: func(c *config.Config) { c.Method = "copy" }, key: "method"},
		{name: "bad_format", mutate: func(c *config.Config) { c.Format = "xml" }, key: "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := config.Validate(cfg, fake)
			if tt.key == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
			assert.Equal(t, tt.key, errors.GetErrorDetails(err)["key"])
		})
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := config.Load(config.LoadOptions{
		SkipDefaultFiles: true,
		Overrides:        map[string]interface{}{"search_path": "~/fw,/lib/firmware"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(home, "fw"), "/lib/firmware"}, cfg.SearchPath)
}

func TestLoad_LogsConfigFile(t *testing.T) {
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := writeFile(t, t.TempDir(), "config.toml", `method = "path"`)
	_, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Loaded config file")
	assert.Contains(t, buf.String(), path)
}
