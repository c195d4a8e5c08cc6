package commands_test

import (
	"bytes"
	"testing"

	"github.com/heroku/color"
	"github.com/pkg/errors"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/spf13/cobra"

	"github.com/buildpacks/libcnb/internal/commands"
	"github.com/buildpacks/libcnb/internal/commands/fakes"
	"github.com/buildpacks/libcnb/logging"
	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestUploadCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "UploadCommand", testUploadCommand, spec.Random(), spec.Report(report.Terminal{}))
}

func testUploadCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		command *cobra.Command
		outBuf  bytes.Buffer
		client  *fakes.FakeTransferClient
	)

	it.Before(func() {
		outBuf.Reset()
		client = &fakes.FakeTransferClient{}
		command = commands.Upload(logging.New(&outBuf), client)
	})

	when("#Upload", func() {
		it("uploads the directory", func() {
			command.SetArgs([]string{"some-dir", "https://example.com/source.tar.xz"})
			h.AssertNil(t, command.Execute())

			h.AssertEq(t, client.ReceivedDir, "some-dir")
			h.AssertEq(t, client.ReceivedURI, "https://example.com/source.tar.xz")
			h.AssertEq(t, client.ReceivedUploadOps, 1)
			h.AssertContains(t, outBuf.String(), "Uploaded 'some-dir'")
		})

		it("accepts exclusions", func() {
			command.SetArgs([]string{"some-dir", "https://example.com/source.tar.xz", "-e", ".git", "--exclude", "node_modules"})
			h.AssertNil(t, command.Execute())
			h.AssertEq(t, client.ReceivedDir, "some-dir")
		})

		it("logs and returns client errors", func() {
			client.ErrorForUpload = errors.New("upload went wrong")

			command.SetArgs([]string{"some-dir", "https://example.com/source.tar.xz"})
			h.AssertError(t, command.Execute(), "upload went wrong")
			h.AssertContains(t, outBuf.String(), "ERROR")
			h.AssertNotContains(t, outBuf.String(), "Uploaded")
		})
	})
}
