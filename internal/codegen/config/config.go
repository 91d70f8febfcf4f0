// Package config loads the `[bindings.go]` table of uniffi.toml files.
package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml"
)

// TOMLKey is the key under the `bindings` table holding the Go options.
const TOMLKey = "go"

// DefaultFilename is looked up in the crate root.
const DefaultFilename = "uniffi.toml"

// Config holds the generation options. It is not modified after Load except by
// UpdateFromCI.
type Config struct {
	CdylibNameOverride string                      `toml:"cdylib_name"`
	ModuleName         string                      `toml:"module_name"`
	FfiModuleName      string                      `toml:"ffi_module_name"`
	FfiModuleFilename  string                      `toml:"ffi_module_filename"`
	PackageNameValue   string                      `toml:"package_name"`
	GoMod              string                      `toml:"go_mod"`
	CustomTypes        map[string]CustomTypeConfig `toml:"custom_types"`
}

// CustomTypeConfig overrides how a custom type is represented in Go.
//
// IntoCustom and FromCustom are expressions where `{}` stands for the value being
// converted.
type CustomTypeConfig struct {
	Imports    []string `toml:"imports"`
	TypeName   string   `toml:"type_name"`
	IntoCustom string   `toml:"into_custom"`
	FromCustom string   `toml:"from_custom"`
}

// Load reads `<crateRoot>/uniffi.toml` and the optional override file. Tables are
// merged recursively and values from the override win. Missing default files are
// not an error; a missing override is.
func Load(crateRoot, override string) (*Config, error) {
	merged := map[string]any{}

	if crateRoot != "" {
		path := filepath.Join(crateRoot, DefaultFilename)
		if _, err := os.Stat(path); err == nil {
			tbl, err := loadBindingsTable(path)
			if err != nil {
				return nil, err
			}
			merge(merged, tbl)
		}
	}
	if override != "" {
		tbl, err := loadBindingsTable(override)
		if err != nil {
			return nil, err
		}
		merge(merged, tbl)
	}

	tree, err := toml.TreeFromMap(merged)
	if err != nil {
		return nil, errors.Wrap(err, "build merged config")
	}
	cfg := &Config{}
	if err := tree.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode bindings.go")
	}
	return cfg, nil
}

func loadBindingsTable(path string) (map[string]any, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	sub, ok := tree.Get("bindings." + TOMLKey).(*toml.Tree)
	if !ok {
		return map[string]any{}, nil
	}
	return sub.ToMap(), nil
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		if existing, ok := dst[k].(map[string]any); ok {
			if incoming, ok := v.(map[string]any); ok {
				merge(existing, incoming)
				continue
			}
		}
		dst[k] = v
	}
}

// UpdateFromCI fills unset names from the component namespace.
func (c *Config) UpdateFromCI(namespace string) {
	if c.ModuleName == "" {
		c.ModuleName = namespace
	}
	if c.CdylibNameOverride == "" {
		c.CdylibNameOverride = "uniffi_" + namespace
	}
}

// PackageName is the Go package of the generated bindings.
func (c *Config) PackageName() string {
	if c.ModuleName != "" {
		return c.ModuleName
	}
	if c.PackageNameValue != "" {
		return c.PackageNameValue
	}
	return "uniffi"
}

func (c *Config) FfiPackageName() string {
	if c.FfiModuleName != "" {
		return c.FfiModuleName
	}
	return c.PackageName() + "FFI"
}

func (c *Config) FfiPackageFilename() string {
	if c.FfiModuleFilename != "" {
		return c.FfiModuleFilename
	}
	return c.FfiPackageName()
}

func (c *Config) HeaderFilename() string { return c.FfiPackageFilename() + ".h" }

func (c *Config) CFilename() string { return c.FfiPackageFilename() + ".c" }

// CdylibName is the native library the bindings link against.
func (c *Config) CdylibName() string {
	if c.CdylibNameOverride != "" {
		return c.CdylibNameOverride
	}
	return "uniffi"
}

// CustomType returns the override for name, if any.
func (c *Config) CustomType(name string) (CustomTypeConfig, bool) {
	ct, ok := c.CustomTypes[name]
	return ct, ok
}
