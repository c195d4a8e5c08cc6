package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/buildpacks/libcnb"
	"github.com/buildpacks/libcnb/internal/style"
	"github.com/buildpacks/libcnb/logging"
)

var defaultLinkPhases = []string{
	string(libcnb.PhaseDetect),
	string(libcnb.PhaseBuild),
	string(libcnb.PhaseTest),
	string(libcnb.PhasePublish),
}

// Link creates one symlink per phase in a buildpack's bin directory, all pointing at the same binary.
func Link(logger logging.Logger) *cobra.Command {
	var (
		phases []string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "link <binary> <bin-dir>",
		Args:  cobra.ExactArgs(2),
		Short: "Link a buildpack binary as the executable of each phase",
		Example: "cnbutil link ./bin/main ./bin\n" +
			"cnbutil link ./bin/main ./bin --phase detect,build",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			binary, binDir := args[0], args[1]

			for _, name := range phases {
				if _, ok := libcnb.PhaseFromExecutable(name); !ok || filepath.Base(name) != name {
					return errors.Errorf("unknown phase %s", style.Symbol(name))
				}
			}

			if _, err := os.Stat(binary); err != nil {
				return errors.Wrapf(err, "reading binary %s", style.Symbol(binary))
			}

			if err := os.MkdirAll(binDir, 0755); err != nil {
				return errors.Wrapf(err, "creating %s", style.Symbol(binDir))
			}

			target, err := linkTarget(binary, binDir)
			if err != nil {
				return err
			}

			for _, name := range phases {
				link := filepath.Join(binDir, name)
				if force {
					if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
						return errors.Wrapf(err, "removing %s", style.Symbol(link))
					}
				}

				if err := os.Symlink(target, link); err != nil {
					return errors.Wrapf(err, "linking %s", style.Symbol(link))
				}
				logger.Debugf("Linked %s to %s", style.Symbol(link), style.Symbol(target))
			}

			logger.Infof("Linked %s for %s", style.Symbol(binary), style.Symbol(strings.Join(phases, ", ")))
			return nil
		}),
	}

	cmd.Flags().StringSliceVarP(&phases, "phase", "p", defaultLinkPhases, "Phase to link"+multiValueHelp("phase"))
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace existing files in the bin directory")
	AddHelpFlag(cmd, "link")
	return cmd
}

// linkTarget returns binary relative to binDir, falling back to its absolute path.
func linkTarget(binary, binDir string) (string, error) {
	absBinary, err := filepath.Abs(binary)
	if err != nil {
		return "", err
	}
	absBinDir, err := filepath.Abs(binDir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absBinDir, absBinary)
	if err != nil {
		return absBinary, nil
	}
	return rel, nil
}
