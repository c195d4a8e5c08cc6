package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildpacks/libcnb/internal/style"
	"github.com/buildpacks/libcnb/logging"
	"github.com/buildpacks/libcnb/pkg/transfer"
)

func Upload(logger logging.Logger, client TransferClient) *cobra.Command {
	var exclusions []string

	cmd := &cobra.Command{
		Use:     "upload <dir> <url>",
		Args:    cobra.ExactArgs(2),
		Short:   "Compress a directory as an xz compressed tar and PUT it to a URL",
		Example: "cnbutil upload . https://storage.example.com/source.tar.xz --exclude .git,node_modules",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			dir, uri := args[0], args[1]

			if err := client.CompressAndPut(cmd.Context(), dir, uri, transfer.WithExclusions(exclusions...)); err != nil {
				return err
			}

			logger.Infof("Uploaded %s", style.Symbol(dir))
			return nil
		}),
	}

	cmd.Flags().StringSliceVarP(&exclusions, "exclude", "e", nil, "Gitignore style pattern of paths to leave out"+multiValueHelp("pattern"))
	AddHelpFlag(cmd, "upload")
	return cmd
}
