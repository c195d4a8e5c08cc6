package libcnb

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/internal/style"
)

// PlatformFactory builds the platform value from the platform directory argument.
type PlatformFactory[P any] func(platformDir string) (P, error)

// GenericPlatform exposes the variables the platform provides in <platform>/env.
type GenericPlatform struct {
	Path string
	Env  map[string]string
}

// NewGenericPlatform reads every regular file in <platformDir>/env into Env, keyed by file name. A missing env
// directory yields an empty Env; a missing platformDir is an error.
func NewGenericPlatform(platformDir string) (GenericPlatform, error) {
	fi, err := os.Stat(platformDir)
	if err != nil {
		return GenericPlatform{}, errors.Wrapf(err, "reading platform directory %s", style.Symbol(platformDir))
	}
	if !fi.IsDir() {
		return GenericPlatform{}, errors.Errorf("platform path %s is not a directory", style.Symbol(platformDir))
	}

	platform := GenericPlatform{Path: platformDir, Env: map[string]string{}}

	envDir := filepath.Join(platformDir, "env")
	entries, err := os.ReadDir(envDir)
	if os.IsNotExist(err) {
		return platform, nil
	}
	if err != nil {
		return GenericPlatform{}, errors.Wrapf(err, "reading %s", style.Symbol(envDir))
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(envDir, entry.Name()))
		if err != nil {
			return GenericPlatform{}, errors.Wrapf(err, "reading platform variable %s", style.Symbol(entry.Name()))
		}
		platform.Env[entry.Name()] = string(contents)
	}

	return platform, nil
}

// Lookup returns the value of the platform variable name with trailing newlines removed.
func (p GenericPlatform) Lookup(name string) (string, bool) {
	value, ok := p.Env[name]
	return strings.TrimRight(value, "\r\n"), ok
}
