package cmd

import (
	"github.com/apex/log"
	"github.com/heroku/color"
	"github.com/spf13/cobra"

	"github.com/buildpacks/libcnb/internal/commands"
	"github.com/buildpacks/libcnb/logging"
	"github.com/buildpacks/libcnb/pkg/transfer"
)

// ConfigurableLogger defines behavior required by the cnbutil command
type ConfigurableLogger interface {
	logging.Logger
	WantTime(f bool)
	WantVerbose(f bool)
	WantColor(f bool)
}

// NewCnbutilCommand generates the cnbutil command
func NewCnbutilCommand(logger ConfigurableLogger) *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:   "cnbutil",
		Short: "Companion tooling for buildpacks built with libcnb",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fs := cmd.Flags(); fs != nil {
				if flag, err := fs.GetBool("no-color"); err == nil && flag {
					color.Disable(true)
					logger.WantColor(false)
				}
				if flag, err := fs.GetBool("verbose"); err == nil {
					logger.WantVerbose(flag)
				}
				if flag, err := fs.GetBool("timestamps"); err == nil {
					logger.WantTime(flag)
				}
			}
		},
	}

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("timestamps", false, "Enable timestamps in output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more output")
	rootCmd.Flags().Bool("version", false, "Show current 'cnbutil' version")

	commands.AddHelpFlag(rootCmd, "cnbutil")

	client := transfer.NewClient(logger)

	rootCmd.AddCommand(commands.Link(logger))
	rootCmd.AddCommand(commands.Fetch(logger, client))
	rootCmd.AddCommand(commands.Upload(logger, client))
	rootCmd.AddCommand(commands.Mode(logger))
	rootCmd.AddCommand(commands.Version(logger, Version))

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{.Version}}{{"\n"}}`)
	rootCmd.SetOut(logging.GetWriterForLevel(logger, log.InfoLevel))
	rootCmd.SetErr(logging.GetWriterForLevel(logger, log.ErrorLevel))

	return rootCmd
}
