package libcnb_test

import (
	"context"
	"path/filepath"

	"github.com/buildpacks/libcnb"
	"github.com/buildpacks/libcnb/pkg/files"
	"github.com/buildpacks/libcnb/pkg/transfer"
)

type apexMetadata struct {
	RunnerURL string `toml:"runner-url"`
}

// This example shows a buildpack that detects Apex test classes, installs a test runner during build,
// runs the tests in the test phase and uploads the application in the publish phase. The binary is linked
// as bin/detect, bin/build, bin/test and bin/publish.
func Example_runAll() {
	detect := func(ctx libcnb.DetectContext[libcnb.GenericPlatform, apexMetadata]) (libcnb.DetectOutcome, error) {
		if !files.FindOneFile(ctx.AppDir, "IsTest") {
			return libcnb.DetectFail(), nil
		}
		return libcnb.DetectPass(libcnb.BuildPlan{
			Provides: []libcnb.BuildPlanProvide{{Name: "apex-runner"}},
			Requires: []libcnb.BuildPlanRequire{{Name: "apex-runner"}},
		}), nil
	}

	build := func(ctx libcnb.BuildContext[libcnb.GenericPlatform, apexMetadata]) error {
		sha, err := transfer.GetAndExtract(context.Background(), ctx.Buildpack.Metadata.RunnerURL, filepath.Join(ctx.LayersDir, "runner"), "runner")
		if err != nil {
			return err
		}
		ctx.Logger.Infof("Installed runner %s", sha)
		return nil
	}

	test := func(ctx libcnb.TestContext[libcnb.GenericPlatform, apexMetadata]) (libcnb.TestOutcome, error) {
		results := libcnb.NewTestResults()
		results.Add(libcnb.NewTestResult("DummyTest.testIt", libcnb.TestStatusPass))
		results.Status = libcnb.TestStatusPass
		return libcnb.TestPass(results), nil
	}

	publish := func(ctx libcnb.PublishContext[libcnb.GenericPlatform, apexMetadata]) error {
		url, ok := ctx.Platform.Lookup("UPLOAD_URL")
		if !ok {
			return nil
		}
		return transfer.CompressAndPut(context.Background(), ctx.AppDir, url, transfer.WithExclusions(".git", "node_modules"))
	}

	libcnb.RunAll(libcnb.NewGenericPlatform, detect, build, test, publish, libcnb.GenericErrorHandler{})
}
