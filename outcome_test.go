package libcnb_test

import (
	"bytes"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/libcnb"
	h "github.com/buildpacks/libcnb/testhelpers"
)

func TestOutcome(t *testing.T) {
	spec.Run(t, "Outcome", testOutcome, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testOutcome(t *testing.T, when spec.G, it spec.S) {
	encode := func(v interface{}) string {
		buf := &bytes.Buffer{}
		h.AssertNil(t, toml.NewEncoder(buf).Encode(v))
		return buf.String()
	}

	when("DetectOutcome", func() {
		it("carries the plan on pass", func() {
			plan := libcnb.BuildPlan{Provides: []libcnb.BuildPlanProvide{{Name: "node"}}}
			outcome := libcnb.DetectPass(plan)

			h.AssertEq(t, outcome.Passed(), true)
			h.AssertEq(t, outcome.Plan(), plan)
		})

		it("has no plan on fail", func() {
			outcome := libcnb.DetectFail()

			h.AssertEq(t, outcome.Passed(), false)
			h.AssertNil(t, outcome.Plan())
		})
	})

	when("TestResults", func() {
		it("starts ready and empty", func() {
			results := libcnb.NewTestResults()

			h.AssertEq(t, results.Status, libcnb.TestStatusReady)
			h.AssertEq(t, len(results.Passed), 0)
			h.AssertEq(t, len(results.Failed), 0)
			h.AssertEq(t, len(results.Ignored), 0)
		})

		it("leaves out empty sequences and keeps the status", func() {
			results := libcnb.NewTestResults()
			results.Status = libcnb.TestStatusPass

			h.AssertEq(t, encode(results), "status = \"Pass\"\n")
		})

		it("writes results under the sequence matching their status", func() {
			results := libcnb.NewTestResults()
			results.Add(libcnb.NewTestResult("DummyTest.passes", libcnb.TestStatusPass))
			results.Add(libcnb.NewTestResult("DummyTest.skipped", libcnb.TestStatusIgnore))
			results.Add(libcnb.NewTestResult("not run", libcnb.TestStatusReady))
			results.Status = libcnb.TestStatusPass

			encoded := encode(results)
			h.AssertContains(t, encoded, "[[passed]]\n  desc = \"DummyTest.passes\"\n  status = \"Pass\"")
			h.AssertContains(t, encoded, "[[ignored]]\n  desc = \"DummyTest.skipped\"\n  status = \"Ignore\"")
			h.AssertNotContains(t, encoded, "failed")
			h.AssertNotContains(t, encoded, "not run")
		})
	})

	when("TestOutcome", func() {
		it("keeps the results for both variants", func() {
			results := libcnb.NewTestResults()
			results.Status = libcnb.TestStatusFail

			pass := libcnb.TestPass(results)
			fail := libcnb.TestFail(results)

			h.AssertEq(t, pass.Passed(), true)
			h.AssertEq(t, fail.Passed(), false)
			h.AssertEq(t, fail.Results(), results)
		})
	})
}
