package common

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Version is set via ldflags at build time:
// -ldflags "-X github.com/Alia5/uniffi-bindgen-go/internal/codegen/common.Version=x.y.z"
var Version = ""

const devVersion = "0.0.1-dev"

// GetVersion returns the generator version stamped into generated files.
// Returns "0.0.1-dev" if Version is empty (development builds only).
func GetVersion() (*semver.Version, error) {
	if Version == "" {
		return semver.MustParse(devVersion), nil
	}
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid version format: %s (expected x.y.z)", Version)
	}
	return v, nil
}

// GeneratedHeader is the first comment line of every generated file.
func GeneratedHeader() string {
	v, err := GetVersion()
	if err != nil {
		return "Code generated by uniffi-bindgen-go. DO NOT EDIT."
	}
	return fmt.Sprintf("Code generated by uniffi-bindgen-go %s. DO NOT EDIT.", v.String())
}
