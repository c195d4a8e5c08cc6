package libcnb

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/internal/style"
	"github.com/buildpacks/libcnb/logging"
)

// ErrEnvNotSet is the cause of errors for required environment variables that are absent.
var ErrEnvNotSet = errors.New("environment variable not set")

// ErrorKind identifies the step of the runtime that failed.
type ErrorKind int

const (
	CannotDetermineAppDirectory ErrorKind = iota + 1
	CannotDetermineStackID
	CannotCreatePlatformFromPath
	CannotDetermineBuildpackDirectory
	CannotReadBuildpackDescriptor
	CannotReadBuildpackPlan
	CannotWriteBuildPlan
	CannotWriteTestResults
)

var errorKindNames = map[ErrorKind]string{
	CannotDetermineAppDirectory:       "cannot determine app directory",
	CannotDetermineStackID:            "cannot determine stack id",
	CannotCreatePlatformFromPath:      "cannot create platform from path",
	CannotDetermineBuildpackDirectory: "cannot determine buildpack directory",
	CannotReadBuildpackDescriptor:     "cannot read buildpack descriptor",
	CannotReadBuildpackPlan:           "cannot read buildpack plan",
	CannotWriteBuildPlan:              "cannot write build plan",
	CannotWriteTestResults:            "cannot write test results",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error is returned for failures of the runtime itself, as opposed to errors returned by phase functions.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func envNotSet(name string) error {
	return errors.Wrapf(ErrEnvNotSet, "reading %s", style.Symbol(name))
}

// ErrorHandler maps an error returned during a phase to the exit code of the process. Implementations
// print any diagnostics themselves.
//
//go:generate mockgen -package testmocks -destination testmocks/mock_error_handler.go github.com/buildpacks/libcnb ErrorHandler
type ErrorHandler interface {
	HandleError(err error) int
}

// ErrorHandlerFunc adapts a function to an ErrorHandler.
type ErrorHandlerFunc func(err error) int

func (f ErrorHandlerFunc) HandleError(err error) int {
	return f(err)
}

// GenericErrorHandler logs the error and exits with code 1. A nil Logger logs to stderr.
type GenericErrorHandler struct {
	Logger logging.Logger
}

func (g GenericErrorHandler) HandleError(err error) int {
	logger := g.Logger
	if logger == nil {
		logger = logging.New(os.Stderr)
	}
	logger.Error(style.Error("%s", err))
	return 1
}
