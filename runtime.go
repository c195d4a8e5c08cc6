// Package libcnb runs a single binary as every executable of a Cloud Native Buildpack.
//
// The binary is linked as bin/detect, bin/build, bin/test and bin/publish. RunAll selects the phase from
// the name it was invoked with, assembles the phase context, calls the matching function and exits with the
// code the lifecycle expects.
package libcnb

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildpacks/libcnb/internal/style"
	"github.com/buildpacks/libcnb/internal/tomlfile"
	"github.com/buildpacks/libcnb/logging"
)

const (
	EnvStackID      = "CNB_STACK_ID"
	EnvBuildpackDir = "CNB_BUILDPACK_DIR"
	EnvLogLevel     = "CNB_LOG_LEVEL"

	// TestResultsFile is written to the application directory by the test phase.
	TestResultsFile = "test-results.toml"
)

const (
	exitCodeSuccess       = 0
	exitCodeInvalidArgs   = 1
	exitCodeTestFail      = 1
	exitCodeDetectFail    = 100
	exitCodeAPIMismatch   = 254
	exitCodeUnknownPhase  = 255
	unknownExecutableName = "<unknown>"
)

// ExitHandler terminates the process. The runtime returns after every call to Exit.
type ExitHandler interface {
	Exit(code int)
}

type osExitHandler struct{}

func (osExitHandler) Exit(code int) {
	os.Exit(code)
}

type config struct {
	args        []string
	exitHandler ExitHandler
	lookupEnv   func(string) (string, bool)
	workingDir  string
	stdout      io.Writer
	stderr      io.Writer
	logger      logging.Logger
}

type Option func(*config)

// WithArgs replaces os.Args. The first element is the executable name.
func WithArgs(args []string) Option {
	return func(c *config) {
		c.args = args
	}
}

func WithExitHandler(exitHandler ExitHandler) Option {
	return func(c *config) {
		c.exitHandler = exitHandler
	}
}

func WithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *config) {
		c.lookupEnv = lookupEnv
	}
}

// WithWorkingDir sets the application directory instead of the current working directory.
func WithWorkingDir(dir string) Option {
	return func(c *config) {
		c.workingDir = dir
	}
}

func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

func WithStderr(w io.Writer) Option {
	return func(c *config) {
		c.stderr = w
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(options []Option) config {
	cfg := config{
		args:        os.Args,
		exitHandler: osExitHandler{},
		lookupEnv:   os.LookupEnv,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	if cfg.logger == nil {
		level, _ := cfg.lookupEnv(EnvLogLevel)
		cfg.logger = logging.New(
			cfg.stdout,
			logging.WithErrorWriter(cfg.stderr),
			logging.WithVerbose(strings.EqualFold(level, "debug")),
		)
	}
	return cfg
}

// RunAll runs the function for the phase named by the executable. Functions left nil disable their phase.
// When handler is nil a GenericErrorHandler writing to the runtime logger is used.
func RunAll[P, BM any](
	newPlatform PlatformFactory[P],
	detect DetectFunc[P, BM],
	build BuildFunc[P, BM],
	test TestFunc[P, BM],
	publish PublishFunc[P, BM],
	handler ErrorHandler,
	options ...Option,
) {
	d := newDispatcher[P, BM](newPlatform, handler, options)
	d.detect, d.build, d.test, d.publish = detect, build, test, publish
	d.run()
}

// Run is RunAll restricted to the detect and build phases.
func Run[P, BM any](
	newPlatform PlatformFactory[P],
	detect DetectFunc[P, BM],
	build BuildFunc[P, BM],
	handler ErrorHandler,
	options ...Option,
) {
	d := newDispatcher[P, BM](newPlatform, handler, options)
	d.detect, d.build = detect, build
	d.run()
}

type dispatcher[P, BM any] struct {
	config
	newPlatform PlatformFactory[P]
	handler     ErrorHandler

	detect  DetectFunc[P, BM]
	build   BuildFunc[P, BM]
	test    TestFunc[P, BM]
	publish PublishFunc[P, BM]

	buildpackDir string
	buildpack    BuildpackDescriptor[BM]
}

func newDispatcher[P, BM any](newPlatform PlatformFactory[P], handler ErrorHandler, options []Option) *dispatcher[P, BM] {
	cfg := newConfig(options)
	if handler == nil {
		handler = GenericErrorHandler{Logger: cfg.logger}
	}
	return &dispatcher[P, BM]{
		config:      cfg,
		newPlatform: newPlatform,
		handler:     handler,
	}
}

func (d *dispatcher[P, BM]) phases() []Phase {
	var phases []Phase
	if d.detect != nil {
		phases = append(phases, PhaseDetect)
	}
	if d.build != nil {
		phases = append(phases, PhaseBuild)
	}
	if d.test != nil {
		phases = append(phases, PhaseTest)
	}
	if d.publish != nil {
		phases = append(phases, PhasePublish)
	}
	return phases
}

func (d *dispatcher[P, BM]) enabled(phase Phase) bool {
	for _, p := range d.phases() {
		if p == phase {
			return true
		}
	}
	return false
}

func (d *dispatcher[P, BM]) exit(code int) {
	d.logger.Debugf("Exiting with code %s", style.SymbolF("%d", code))
	d.exitHandler.Exit(code)
}

func (d *dispatcher[P, BM]) run() {
	if err := d.loadBuildpack(); err != nil {
		d.exit(d.handler.HandleError(err))
		return
	}

	if !d.buildpack.SupportsAPI() {
		fmt.Fprintln(d.stderr, "Error: Cloud Native Buildpack API mismatch")
		fmt.Fprintf(d.stderr, "This buildpack (%s) uses Cloud Native Buildpacks API version %s.\n", d.buildpack.DisplayName(), d.buildpack.apiString())
		fmt.Fprintf(d.stderr, "But the underlying libcnb library requires CNB API %s.\n", SupportedBuildpackAPI)
		d.exit(exitCodeAPIMismatch)
		return
	}

	var argv0 string
	if len(d.args) > 0 {
		argv0 = d.args[0]
	}

	phase, ok := PhaseFromExecutable(argv0)
	if !ok || !d.enabled(phase) {
		name := unknownExecutableName
		if argv0 != "" {
			name = filepath.Base(argv0)
		}
		fmt.Fprintf(d.stderr, "Error: Expected the name of this executable to be %s. Found '%s' instead.\n", quotePhases(d.phases(), "or"), name)
		fmt.Fprintln(d.stderr, "The executable name is used to determine the current buildpack phase.")
		fmt.Fprintf(d.stderr, "You might want to create %s links to this executable and run those instead.\n", quotePhases(d.phases(), "and"))
		d.exit(exitCodeUnknownPhase)
		return
	}

	args := d.args[1:]
	if expected := argsByPhase[phase]; len(args) != expected.count {
		fmt.Fprintf(d.stderr, "Usage: %s\n", expected.usage)
		fmt.Fprintln(d.stderr, expected.docs)
		d.exit(exitCodeInvalidArgs)
		return
	}

	d.logger.Debug(style.Step("Running %s for %s", style.Symbol(string(phase)), style.Symbol(d.buildpack.Info.FullName())))

	var err error
	switch phase {
	case PhaseDetect:
		err = d.runDetect(args[0], args[1])
	case PhaseBuild:
		err = d.runBuild(args[0], args[1], args[2])
	case PhaseTest:
		err = d.runTest(args[0], args[1])
	case PhasePublish:
		err = d.runPublish(args[0])
	}

	if err != nil {
		d.exit(d.handler.HandleError(err))
	}
}

func (d *dispatcher[P, BM]) loadBuildpack() error {
	dir, ok := d.lookupEnv(EnvBuildpackDir)
	if !ok {
		return newError(CannotDetermineBuildpackDirectory, envNotSet(EnvBuildpackDir))
	}

	descriptor, err := ReadBuildpackDescriptor[BM](dir)
	if err != nil {
		return newError(CannotReadBuildpackDescriptor, err)
	}

	d.buildpackDir = dir
	d.buildpack = descriptor
	return nil
}

type assembled[P any] struct {
	appDir   string
	stackID  string
	platform P
}

func (d *dispatcher[P, BM]) assemble(platformDir string) (assembled[P], error) {
	appDir, err := d.appDir()
	if err != nil {
		return assembled[P]{}, newError(CannotDetermineAppDirectory, err)
	}

	stackID, ok := d.lookupEnv(EnvStackID)
	if !ok {
		return assembled[P]{}, newError(CannotDetermineStackID, envNotSet(EnvStackID))
	}

	platform, err := d.newPlatform(platformDir)
	if err != nil {
		return assembled[P]{}, newError(CannotCreatePlatformFromPath, err)
	}

	return assembled[P]{appDir: appDir, stackID: stackID, platform: platform}, nil
}

func (d *dispatcher[P, BM]) appDir() (string, error) {
	if d.workingDir != "" {
		return d.workingDir, nil
	}
	return os.Getwd()
}

func (d *dispatcher[P, BM]) runDetect(platformDir, planPath string) error {
	c, err := d.assemble(platformDir)
	if err != nil {
		return err
	}

	outcome, err := d.detect(DetectContext[P, BM]{
		AppDir:       c.appDir,
		BuildpackDir: d.buildpackDir,
		StackID:      c.stackID,
		Platform:     c.platform,
		Buildpack:    d.buildpack,
		Logger:       d.logger,
	})
	if err != nil {
		return err
	}

	if !outcome.Passed() {
		d.exit(exitCodeDetectFail)
		return nil
	}

	plan := outcome.Plan()
	if plan == nil {
		plan = BuildPlan{}
	}
	if err := tomlfile.Write(planPath, plan); err != nil {
		return newError(CannotWriteBuildPlan, err)
	}

	d.exit(exitCodeSuccess)
	return nil
}

func (d *dispatcher[P, BM]) runBuild(layersDir, platformDir, planPath string) error {
	c, err := d.assemble(platformDir)
	if err != nil {
		return err
	}

	var plan BuildpackPlan
	if err := tomlfile.Read(planPath, &plan); err != nil {
		return newError(CannotReadBuildpackPlan, err)
	}

	return d.build(BuildContext[P, BM]{
		LayersDir:     layersDir,
		AppDir:        c.appDir,
		BuildpackDir:  d.buildpackDir,
		StackID:       c.stackID,
		Platform:      c.platform,
		BuildpackPlan: plan,
		Buildpack:     d.buildpack,
		Logger:        d.logger,
	})
}

func (d *dispatcher[P, BM]) runTest(layersDir, platformDir string) error {
	c, err := d.assemble(platformDir)
	if err != nil {
		return err
	}

	outcome, err := d.test(TestContext[P, BM]{
		LayersDir:    layersDir,
		AppDir:       c.appDir,
		BuildpackDir: d.buildpackDir,
		StackID:      c.stackID,
		Platform:     c.platform,
		Buildpack:    d.buildpack,
		Logger:       d.logger,
	})
	if err != nil {
		return err
	}

	if err := d.writeTestResults(filepath.Join(c.appDir, TestResultsFile), outcome.Results()); err != nil {
		return newError(CannotWriteTestResults, err)
	}

	if outcome.Passed() {
		d.exit(exitCodeSuccess)
	} else {
		d.exit(exitCodeTestFail)
	}
	return nil
}

func (d *dispatcher[P, BM]) writeTestResults(path string, results TestResults) error {
	if err := tomlfile.Write(path, results); err != nil {
		return err
	}

	rendered, err := tomlfile.Render(results)
	if err != nil {
		return err
	}

	fmt.Fprintf(d.stdout, "Tests Finished. %s\n", results.Status)
	fmt.Fprint(d.stdout, rendered)
	return nil
}

func (d *dispatcher[P, BM]) runPublish(platformDir string) error {
	c, err := d.assemble(platformDir)
	if err != nil {
		return err
	}

	return d.publish(PublishContext[P, BM]{
		AppDir:       c.appDir,
		BuildpackDir: d.buildpackDir,
		StackID:      c.stackID,
		Platform:     c.platform,
		Buildpack:    d.buildpack,
		Logger:       d.logger,
	})
}
