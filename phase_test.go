package libcnb_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/libcnb"
	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestPhase(t *testing.T) {
	spec.Run(t, "Phase", testPhase, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testPhase(t *testing.T, when spec.G, it spec.S) {
	when("#PhaseFromExecutable", func() {
		it("uses the file name", func() {
			for argv0, expected := range map[string]libcnb.Phase{
				"detect":                       libcnb.PhaseDetect,
				"./bin/build":                  libcnb.PhaseBuild,
				"/cnb/buildpacks/ruby/bin/test": libcnb.PhaseTest,
				"bin/publish":                  libcnb.PhasePublish,
			} {
				phase, ok := libcnb.PhaseFromExecutable(argv0)
				h.AssertEq(t, ok, true)
				h.AssertEq(t, phase, expected)
			}
		})

		it("rejects other names", func() {
			for _, argv0 := range []string{"", "bin/main", "bin/detect.exe", "bin/Detect", "/"} {
				_, ok := libcnb.PhaseFromExecutable(argv0)
				h.AssertEq(t, ok, false)
			}
		})

		it("does not follow symlinks", func() {
			h.SkipIf(t, runtime.GOOS == "windows", "symlinks require elevated privileges on windows")

			dir := t.TempDir()
			target := filepath.Join(dir, "main")
			h.AssertNil(t, os.WriteFile(target, []byte{}, 0755))
			link := filepath.Join(dir, "build")
			h.AssertNil(t, os.Symlink(target, link))

			phase, ok := libcnb.PhaseFromExecutable(link)
			h.AssertEq(t, ok, true)
			h.AssertEq(t, phase, libcnb.PhaseBuild)
		})
	})
}
