package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildpacks/libcnb"
	"github.com/buildpacks/libcnb/logging"
)

func Mode(logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Args:  cobra.NoArgs,
		Short: "Show the lifecycle mode read from " + libcnb.EnvLifecycleMode,
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			logger.Info(libcnb.CurrentLifecycleMode(logger).String())
			return nil
		}),
	}

	AddHelpFlag(cmd, "mode")
	return cmd
}
