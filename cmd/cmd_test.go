package cmd_test

import (
	"bytes"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/libcnb/cmd"
	"github.com/buildpacks/libcnb/logging"
	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestCnbutilCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "CnbutilCommand", testCnbutilCommand, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testCnbutilCommand(t *testing.T, when spec.G, it spec.S) {
	var outBuf bytes.Buffer

	when("#NewCnbutilCommand", func() {
		it("registers the subcommands", func() {
			rootCmd := cmd.NewCnbutilCommand(logging.NewLogWithWriter(logging.NewLogHandler(&outBuf)))

			var names []string
			for _, c := range rootCmd.Commands() {
				names = append(names, c.Name())
			}
			h.AssertEq(t, names, []string{"link", "fetch", "upload", "mode", "version"})
		})

		it("prints the version", func() {
			rootCmd := cmd.NewCnbutilCommand(logging.NewLogWithWriter(logging.NewLogHandler(&outBuf)))
			rootCmd.SetArgs([]string{"--version"})
			h.AssertNil(t, rootCmd.Execute())
			h.AssertEq(t, outBuf.String(), cmd.Version+"\n")
		})

		it("enables debug output with --verbose", func() {
			logger := logging.NewLogWithWriter(logging.NewLogHandler(&outBuf))
			rootCmd := cmd.NewCnbutilCommand(logger)
			rootCmd.SetArgs([]string{"mode", "--verbose"})
			h.AssertNil(t, rootCmd.Execute())
			h.AssertEq(t, logger.IsVerbose(), true)
		})

		it("prefixes lines with timestamps", func() {
			rootCmd := cmd.NewCnbutilCommand(logging.NewLogWithWriter(logging.NewLogHandler(&outBuf)))
			rootCmd.SetArgs([]string{"version", "--timestamps"})
			h.AssertNil(t, rootCmd.Execute())
			h.AssertNotEq(t, outBuf.String(), "INFO   "+cmd.Version+"\n")
			h.AssertContains(t, outBuf.String(), "INFO   "+cmd.Version+"\n")
		})
	})
}
