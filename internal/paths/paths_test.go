package paths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestPaths(t *testing.T) {
	spec.Run(t, "Paths", testPaths, spec.Report(report.Terminal{}))
}

func testPaths(t *testing.T, when spec.G, it spec.S) {
	when("#IsURI", func() {
		it("detects schemes", func() {
			h.AssertEq(t, IsURI("https://example.com/ruby.tar.xz"), true)
			h.AssertEq(t, IsURI("file:///tmp/ruby.tar.xz"), true)
			h.AssertEq(t, IsURI("/tmp/ruby.tar.xz"), false)
		})
	})

	when("is unix", func() {
		it.Before(func() {
			h.SkipIf(t, runtime.GOOS == "windows", "Skipped on windows")
		})

		when("#FilePathToURI", func() {
			it("returns a uri for an absolute path", func() {
				uri, err := FilePathToURI("/some/file.tar.xz")
				h.AssertNil(t, err)
				h.AssertEq(t, uri, "file:///some/file.tar.xz")
			})

			it("resolves relative paths", func() {
				abs, err := filepath.Abs("some/file.tar.xz")
				h.AssertNil(t, err)

				uri, err := FilePathToURI("some/file.tar.xz")
				h.AssertNil(t, err)
				h.AssertEq(t, uri, "file://"+abs)
			})
		})

		when("#URIToFilePath", func() {
			it("unescapes the path", func() {
				path, err := URIToFilePath("file:///some%20dir/file.tar.xz")
				h.AssertNil(t, err)
				h.AssertEq(t, path, "/some dir/file.tar.xz")
			})

			it("fails on malformed escapes", func() {
				_, err := URIToFilePath("file:///some%zzdir")
				h.AssertNotNil(t, err)
			})
		})
	})
}
