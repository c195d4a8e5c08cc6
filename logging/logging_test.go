package logging

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestLogging(t *testing.T) {
	spec.Run(t, "Logging", testLogging, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testLogging(t *testing.T, when spec.G, it spec.S) {
	const testTime = "2019/05/15 01:01:01.000000"
	var (
		out, errOut bytes.Buffer
		hnd         *Handler
		logger      *logWithWriter
	)

	it.Before(func() {
		out.Reset()
		errOut.Reset()
		hnd = NewLogHandler(&out)
		hnd.NoColor = false
		hnd.timer = func() time.Time {
			tm, _ := time.Parse(timeFmt, testTime)
			return tm
		}
		logger = NewLogWithWriter(hnd, WithErrorWriter(&errOut))
	})

	it("can enable time in logs", func() {
		hnd.WantTime = true
		logger.Info("test")
		h.AssertEq(t, out.String(), "2019/05/15 01:01:01.000000 \x1b[34mINFO  \x1b[0m test\n")
	})

	it("has no time by default", func() {
		logger.Info("test")
		h.AssertEq(t, out.String(), "\x1b[34mINFO  \x1b[0m test\n")
	})

	it("can disable color logs", func() {
		hnd.NoColor = true
		logger.Info("test")
		h.AssertEq(t, out.String(), "INFO   test\n")
	})

	it("writes errors to the error writer", func() {
		hnd.NoColor = true
		logger.Errorf("failed %d", 1)
		h.AssertEq(t, out.String(), "")
		h.AssertEq(t, errOut.String(), "ERROR  failed 1\n")
	})

	it("hides debug output unless verbose", func() {
		hnd.NoColor = true
		logger.Debug("hidden")
		h.AssertEq(t, out.String(), "")
		h.AssertEq(t, logger.IsVerbose(), false)

		verbose := NewLogWithWriter(hnd, WithVerbose(true))
		verbose.Debug("shown")
		h.AssertEq(t, out.String(), "DEBUG  shown\n")
		h.AssertEq(t, verbose.IsVerbose(), true)
	})

	it("can be reconfigured after creation", func() {
		logger.WantColor(false)
		logger.WantTime(true)
		logger.WantVerbose(true)
		logger.Debug("late")
		h.AssertEq(t, out.String(), testTime+" DEBUG  late\n")

		logger.WantVerbose(false)
		logger.Debug("hidden")
		h.AssertEq(t, out.String(), testTime+" DEBUG  late\n")
	})

	when("#GetWriterForLevel", func() {
		it("discards debug output for a quiet logger", func() {
			h.AssertSameInstance(t, GetWriterForLevel(logger, log.DebugLevel), io.Discard)
		})

		it("returns the logger writer for info", func() {
			h.AssertSameInstance(t, GetWriterForLevel(logger, log.InfoLevel), io.Writer(&out))
		})
	})
}
