package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		crateRoot   string
		override    string
		cdylib      string
		fromCustom  string
		typeName    string
		expectError string
	}{
		{
			name:       "crate root only",
			crateRoot:  "testdata/crate",
			cdylib:     "geometry_ffi",
			fromCustom: "{}.String()",
			typeName:   "url.URL",
		},
		{
			name:       "override wins and tables merge",
			crateRoot:  "testdata/crate",
			override:   "testdata/override.toml",
			cdylib:     "geometry_override",
			fromCustom: "{}.Redacted()",
			typeName:   "url.URL",
		},
		{
			name:     "override only",
			override: "testdata/override.toml",
			cdylib:   "geometry_override",
		},
		{
			name:      "no files",
			crateRoot: "testdata",
			cdylib:    "uniffi",
		},
		{
			name:        "missing override",
			override:    "testdata/missing.toml",
			expectError: "testdata/missing.toml",
		},
		{
			name:        "malformed override",
			override:    "testdata/broken.toml",
			expectError: "testdata/broken.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.crateRoot, tt.override)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cdylib, cfg.CdylibName())

			ct, ok := cfg.CustomType("Url")
			if tt.typeName == "" && tt.fromCustom == "" {
				if ok {
					assert.Empty(t, ct.TypeName)
				}
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.typeName, ct.TypeName)
			assert.Equal(t, tt.fromCustom, ct.FromCustom)
		})
	}
}

func TestLoadKeepsOtherLanguagesOut(t *testing.T) {
	cfg, err := Load("testdata/crate", "")
	require.NoError(t, err)
	assert.Equal(t, "geometry", cfg.PackageName())
	assert.Equal(t, "github.com/example/bindings", cfg.GoMod)
	assert.Equal(t, []string{"net/url"}, cfg.CustomTypes["Url"].Imports)
}

func TestDerivedNames(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		pkg    string
		ffiPkg string
		header string
		cFile  string
		cdylib string
	}{
		{
			name:   "defaults",
			cfg:    Config{},
			pkg:    "uniffi",
			ffiPkg: "uniffiFFI",
			header: "uniffiFFI.h",
			cFile:  "uniffiFFI.c",
			cdylib: "uniffi",
		},
		{
			name:   "module name",
			cfg:    Config{ModuleName: "geometry"},
			pkg:    "geometry",
			ffiPkg: "geometryFFI",
			header: "geometryFFI.h",
			cFile:  "geometryFFI.c",
			cdylib: "uniffi",
		},
		{
			name:   "explicit ffi names",
			cfg:    Config{ModuleName: "geometry", FfiModuleName: "geoffi", FfiModuleFilename: "geo_bridge", CdylibNameOverride: "geo"},
			pkg:    "geometry",
			ffiPkg: "geoffi",
			header: "geo_bridge.h",
			cFile:  "geo_bridge.c",
			cdylib: "geo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pkg, tt.cfg.PackageName())
			assert.Equal(t, tt.ffiPkg, tt.cfg.FfiPackageName())
			assert.Equal(t, tt.header, tt.cfg.HeaderFilename())
			assert.Equal(t, tt.cFile, tt.cfg.CFilename())
			assert.Equal(t, tt.cdylib, tt.cfg.CdylibName())
		})
	}
}

func TestUpdateFromCI(t *testing.T) {
	cfg := &Config{}
	cfg.UpdateFromCI("geometry")
	assert.Equal(t, "geometry", cfg.PackageName())
	assert.Equal(t, "uniffi_geometry", cfg.CdylibName())

	cfg = &Config{ModuleName: "custom", CdylibNameOverride: "lib"}
	cfg.UpdateFromCI("geometry")
	assert.Equal(t, "custom", cfg.PackageName())
	assert.Equal(t, "lib", cfg.CdylibName())
}
