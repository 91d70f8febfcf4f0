package configpaths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNamedConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	tests := []struct {
		format   string
		expected string
	}{
		{format: "json", expected: "/xdg/uniffi-bindgen-go/generate.json"},
		{format: "yml", expected: "/xdg/uniffi-bindgen-go/generate.yaml"},
		{format: "toml", expected: "/xdg/uniffi-bindgen-go/generate.toml"},
		{format: "other", expected: "/xdg/uniffi-bindgen-go/generate.json"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			p, err := DefaultNamedConfigPath("generate", tt.format)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.expected), p)
		})
	}
}

func TestConfigCandidatePathsPrioritizesUserPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		pickFn func(j, y, tm []string) []string
	}{
		{name: "json", path: "custom.json", pickFn: func(j, _, _ []string) []string { return j }},
		{name: "yaml", path: "custom.yml", pickFn: func(_, y, _ []string) []string { return y }},
		{name: "toml", path: "custom.toml", pickFn: func(_, _, tm []string) []string { return tm }},
		{name: "unknown extension", path: "custom.conf", pickFn: func(j, _, _ []string) []string { return j }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, y, tm := ConfigCandidatePaths(tt.path)
			paths := tt.pickFn(j, y, tm)
			require.NotEmpty(t, paths)
			assert.Equal(t, tt.path, paths[0])
		})
	}
}

func TestConfigCandidatePathsWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	jsonPaths, _, tomlPaths := ConfigCandidatePaths("")
	assert.Contains(t, jsonPaths, filepath.Join(dir, "uniffi-bindgen-go.json"))
	assert.Contains(t, tomlPaths, filepath.Join(dir, "generate.toml"))
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
