package libcnb

import "github.com/buildpacks/libcnb/logging"

// DetectContext is passed to the detect function.
type DetectContext[P, BM any] struct {
	AppDir       string
	BuildpackDir string
	StackID      string
	Platform     P
	Buildpack    BuildpackDescriptor[BM]
	Logger       logging.Logger
}

// BuildContext is passed to the build function.
type BuildContext[P, BM any] struct {
	LayersDir     string
	AppDir        string
	BuildpackDir  string
	StackID       string
	Platform      P
	BuildpackPlan BuildpackPlan
	Buildpack     BuildpackDescriptor[BM]
	Logger        logging.Logger
}

// TestContext is passed to the test function.
type TestContext[P, BM any] struct {
	LayersDir    string
	AppDir       string
	BuildpackDir string
	StackID      string
	Platform     P
	Buildpack    BuildpackDescriptor[BM]
	Logger       logging.Logger
}

// PublishContext is passed to the publish function.
type PublishContext[P, BM any] struct {
	AppDir       string
	BuildpackDir string
	StackID      string
	Platform     P
	Buildpack    BuildpackDescriptor[BM]
	Logger       logging.Logger
}

type (
	DetectFunc[P, BM any]  func(ctx DetectContext[P, BM]) (DetectOutcome, error)
	BuildFunc[P, BM any]   func(ctx BuildContext[P, BM]) error
	TestFunc[P, BM any]    func(ctx TestContext[P, BM]) (TestOutcome, error)
	PublishFunc[P, BM any] func(ctx PublishContext[P, BM]) error
)
