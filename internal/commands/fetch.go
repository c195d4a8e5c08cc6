package commands

import (
	"github.com/spf13/cobra"

	"github.com/buildpacks/libcnb/internal/paths"
	"github.com/buildpacks/libcnb/internal/style"
	"github.com/buildpacks/libcnb/logging"
)

func Fetch(logger logging.Logger, client TransferClient) *cobra.Command {
	var stripPrefix string

	cmd := &cobra.Command{
		Use:   "fetch <url-or-path> <dir>",
		Args:  cobra.ExactArgs(2),
		Short: "Download an xz compressed tar and extract it into a directory",
		Long: "Download an xz compressed tar and extract it into a directory.\n\n" +
			"A local path is read as a file URI. The sha256 of the downloaded bytes is printed once the archive is extracted.",
		Example: "cnbutil fetch https://nodejs.org/dist/v18.0.0/node-v18.0.0-linux-x64.tar.xz ./node --strip-prefix node-v18.0.0-linux-x64",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			uri, dir := args[0], args[1]
			if !paths.IsURI(uri) {
				var err error
				if uri, err = paths.FilePathToURI(uri); err != nil {
					return err
				}
			}

			sha, err := client.GetAndExtract(cmd.Context(), uri, dir, stripPrefix)
			if err != nil {
				return err
			}

			logger.Infof("Extracted %s into %s", style.Symbol(uri), style.Symbol(dir))
			logger.Infof("sha256:%s", sha)
			return nil
		}),
	}

	cmd.Flags().StringVar(&stripPrefix, "strip-prefix", "", "Leading directory to remove from every entry")
	AddHelpFlag(cmd, "fetch")
	return cmd
}
