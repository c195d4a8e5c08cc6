package libcnb

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/internal/style"
	"github.com/buildpacks/libcnb/logging"
)

// EnvLifecycleMode holds the process wide lifecycle mode.
const EnvLifecycleMode = "CNB_LIFECYCLE_MODE"

type LifecycleMode string

const (
	LifecycleModeDev     LifecycleMode = "dev"
	LifecycleModeTest    LifecycleMode = "test"
	LifecycleModePackage LifecycleMode = "package"
	LifecycleModeCI      LifecycleMode = "ci"
)

var lifecycleModes = []LifecycleMode{LifecycleModeDev, LifecycleModeTest, LifecycleModePackage, LifecycleModeCI}

func (m LifecycleMode) String() string {
	return string(m)
}

// ParseLifecycleMode matches value against the known modes ignoring case.
func ParseLifecycleMode(value string) (LifecycleMode, error) {
	for _, mode := range lifecycleModes {
		if strings.EqualFold(value, string(mode)) {
			return mode, nil
		}
	}
	return "", errors.Errorf("invalid lifecycle mode %s", style.Symbol(value))
}

// CurrentLifecycleMode reads CNB_LIFECYCLE_MODE. Absent and invalid values mean ci; invalid values are logged.
func CurrentLifecycleMode(logger logging.Logger) LifecycleMode {
	return lifecycleModeFrom(os.LookupEnv, logger)
}

func lifecycleModeFrom(lookupEnv func(string) (string, bool), logger logging.Logger) LifecycleMode {
	value, ok := lookupEnv(EnvLifecycleMode)
	if !ok {
		return LifecycleModeCI
	}

	mode, err := ParseLifecycleMode(value)
	if err != nil {
		if logger != nil {
			logger.Warnf("Ignoring %s: %s", style.Symbol(EnvLifecycleMode), err)
		}
		return LifecycleModeCI
	}
	return mode
}

// SetLifecycleMode writes mode to CNB_LIFECYCLE_MODE for this process and its children.
func SetLifecycleMode(mode LifecycleMode) error {
	if _, err := ParseLifecycleMode(string(mode)); err != nil {
		return err
	}
	return os.Setenv(EnvLifecycleMode, string(mode))
}
