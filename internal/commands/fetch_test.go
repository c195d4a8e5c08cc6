package commands_test

import (
	"bytes"
	"path/filepath"
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

func TestFetchCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "FetchCommand", testFetchCommand, spec.Random(), spec.Report(report.Terminal{}))
}

func testFetchCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		command *cobra.Command
		outBuf  bytes.Buffer
		client  *fakes.FakeTransferClient
	)

	it.Before(func() {
		outBuf.Reset()
		client = &fakes.FakeTransferClient{SHA: "abc123"}
		command = commands.Fetch(logging.New(&outBuf), client)
	})

	when("#Fetch", func() {
		it("extracts the archive and prints its sha256", func() {
			command.SetArgs([]string{"https://example.com/node.tar.xz", "some-dir"})
			h.AssertNil(t, command.Execute())

			h.AssertEq(t, client.ReceivedURI, "https://example.com/node.tar.xz")
			h.AssertEq(t, client.ReceivedDir, "some-dir")
			h.AssertEq(t, client.ReceivedPrefix, "")
			h.AssertContains(t, outBuf.String(), "Extracted 'https://example.com/node.tar.xz' into 'some-dir'")
			h.AssertContains(t, outBuf.String(), "sha256:abc123")
		})

		it("reads a local path as a file uri", func() {
			path := filepath.Join(t.TempDir(), "node.tar.xz")
			command.SetArgs([]string{path, "some-dir"})
			h.AssertNil(t, command.Execute())

			h.AssertMatch(t, client.ReceivedURI, `^file://.*node\.tar\.xz$`)
		})

		it("passes the prefix to strip", func() {
			command.SetArgs([]string{"https://example.com/node.tar.xz", "some-dir", "--strip-prefix", "node-v18"})
			h.AssertNil(t, command.Execute())
			h.AssertEq(t, client.ReceivedPrefix, "node-v18")
		})

		it("logs and returns client errors", func() {
			client.ErrorForFetch = errors.New("download went wrong")

			command.SetArgs([]string{"https://example.com/node.tar.xz", "some-dir"})
			h.AssertError(t, command.Execute(), "download went wrong")
			h.AssertContains(t, outBuf.String(), "ERROR")
			h.AssertNotContains(t, outBuf.String(), "sha256:")
		})

		it("requires two arguments", func() {
			command.SetArgs([]string{"https://example.com/node.tar.xz"})
			h.AssertNotNil(t, command.Execute())
			h.AssertEq(t, client.ReceivedURI, "")
		})
	})
}
