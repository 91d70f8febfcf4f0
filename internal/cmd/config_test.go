package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/uniffi-bindgen-go/internal/configpaths"
)

func TestConfigInitFormats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		decode func(data []byte, out *map[string]any) error
	}{
		{name: "json", format: "json", decode: func(d []byte, out *map[string]any) error { return json.Unmarshal(d, out) }},
		{name: "yaml", format: "yaml", decode: func(d []byte, out *map[string]any) error { return yaml.Unmarshal(d, out) }},
		{name: "toml", format: "toml", decode: func(d []byte, out *map[string]any) error {
			tree, err := toml.LoadBytes(d)
			if err != nil {
				return err
			}
			*out = tree.ToMap()
			return nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "nested", "generate."+tt.format)
			c := &ConfigInit{Command: "generate", Format: tt.format, Output: dest}
			require.NoError(t, c.Run())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			var root map[string]any
			require.NoError(t, tt.decode(data, &root))

			assert.Equal(t, ".", root["out_dir"])
			assert.Equal(t, false, root["no_format"])
			assert.Contains(t, root, "crate_root")
			assert.Contains(t, root, "bindings_config")
			assert.NotContains(t, root, "sources")

			logCfg, ok := root["log"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "info", logCfg["level"])
			assert.Equal(t, "auto", logCfg["format"])
		})
	}
}

func TestConfigInitDefaultDestination(t *testing.T) {
	chdir(t, t.TempDir())

	c := &ConfigInit{Command: "generate", Format: "yml"}
	require.NoError(t, c.Run())
	_, err := os.Stat("generate.yaml")
	require.NoError(t, err)
}

func TestConfigInitUserDestination(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses XDG_CONFIG_HOME")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	c := &ConfigInit{Command: "generate", Format: "toml", User: true}
	require.NoError(t, c.Run())

	dest := filepath.Join(xdg, "uniffi-bindgen-go", "generate.toml")
	_, err := os.Stat(dest)
	require.NoError(t, err)

	_, _, tomlPaths := configpaths.ConfigCandidatePaths("")
	assert.Contains(t, tomlPaths, dest)
}

func TestConfigInitErrors(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "generate.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0o644))

	tests := []struct {
		name    string
		init    ConfigInit
		errText string
	}{
		{name: "bad format", init: ConfigInit{Command: "generate", Format: "ini"}, errText: "unsupported format"},
		{name: "unknown command", init: ConfigInit{Command: "serve", Format: "json"}, errText: "unknown command"},
		{name: "existing file", init: ConfigInit{Command: "generate", Format: "json", Output: existing}, errText: "--force"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.init.Run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}

	force := ConfigInit{Command: "generate", Format: "json", Output: existing, Force: true}
	require.NoError(t, force.Run())
}

// chdir is the Go 1.21 stand-in for testing.T.Chdir (added in Go 1.24):
// it changes the working directory and restores it when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
