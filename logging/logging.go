// Package logging defines the logger used across libcnb and its apex/log backed implementation.
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/heroku/color"
)

// Logger defines behavior required by a logging package used by libcnb
type Logger interface {
	Debug(msg string)
	Debugf(fmt string, v ...interface{})

	Info(msg string)
	Infof(fmt string, v ...interface{})

	Warn(msg string)
	Warnf(fmt string, v ...interface{})

	Error(msg string)
	Errorf(fmt string, v ...interface{})

	Writer() io.Writer

	IsVerbose() bool
}

// Terminal colors
const (
	red    = 31
	yellow = 33
	blue   = 34
	gray   = 37
)

// std time format
const timeFmt = "2006/01/02 15:04:05.000000"

// Colors map to log levels
var Colors = [...]int{
	log.DebugLevel: gray,
	log.InfoLevel:  blue,
	log.WarnLevel:  yellow,
	log.ErrorLevel: red,
	log.FatalLevel: red,
}

// Strings mapping.
var Strings = [...]string{
	log.DebugLevel: "DEBUG",
	log.InfoLevel:  "INFO",
	log.WarnLevel:  "WARN",
	log.ErrorLevel: "ERROR",
	log.FatalLevel: "FATAL",
}

// Handler implementation.
type Handler struct {
	sync.Mutex
	Writer      io.Writer
	ErrorWriter io.Writer
	WantTime    bool
	NoColor     bool
	timer       func() time.Time
}

func formatLevel(level log.Level, noColor bool) string {
	if noColor {
		return fmt.Sprintf("%-6s", Strings[level])
	}

	return fmt.Sprintf("\033[%dm%-6s\033[0m", Colors[level], Strings[level])
}

// HandleLog writes errors to ErrorWriter when one is set and everything else to Writer.
func (h *Handler) HandleLog(e *log.Entry) error {
	h.Lock()
	defer h.Unlock()

	w := h.Writer
	if e.Level >= log.ErrorLevel && h.ErrorWriter != nil {
		w = h.ErrorWriter
	}

	if h.WantTime {
		ts := h.timer().Format(timeFmt)
		_, _ = fmt.Fprintf(w, "%s %s %s", ts, formatLevel(e.Level, h.NoColor), e.Message)
	} else {
		_, _ = fmt.Fprintf(w, "%s %s", formatLevel(e.Level, h.NoColor), e.Message)
	}

	_, _ = fmt.Fprintln(w)

	return nil
}

// NewLogHandler creates a handler writing every level to w
func NewLogHandler(w io.Writer) *Handler {
	return &Handler{
		Writer:  w,
		NoColor: !color.Enabled(),
		timer: func() time.Time {
			return time.Now()
		},
	}
}

type logWithWriter struct {
	log.Logger
	handler *Handler
}

func (lw *logWithWriter) Writer() io.Writer {
	return lw.handler.Writer
}

func (lw *logWithWriter) IsVerbose() bool {
	return lw.Logger.Level == log.DebugLevel
}

// WantTime toggles timestamps on every line
func (lw *logWithWriter) WantTime(f bool) {
	lw.handler.WantTime = f
}

// WantVerbose toggles debug output
func (lw *logWithWriter) WantVerbose(f bool) {
	WithVerbose(f)(lw)
}

// WantColor toggles colored levels
func (lw *logWithWriter) WantColor(f bool) {
	lw.handler.NoColor = !f
}

// Option configures a logger created by New
type Option func(*logWithWriter)

// WithVerbose enables debug output
func WithVerbose(verbose bool) Option {
	return func(lw *logWithWriter) {
		if verbose {
			lw.Logger.Level = log.DebugLevel
		} else {
			lw.Logger.Level = log.InfoLevel
		}
	}
}

// WithTimestamps prefixes every line with the current time
func WithTimestamps(wantTime bool) Option {
	return func(lw *logWithWriter) {
		lw.handler.WantTime = wantTime
	}
}

// WithErrorWriter sends error and fatal entries to w
func WithErrorWriter(w io.Writer) Option {
	return func(lw *logWithWriter) {
		lw.handler.ErrorWriter = w
	}
}

// New creates a Logger at info level writing to w
func New(w io.Writer, opts ...Option) Logger {
	return NewLogWithWriter(NewLogHandler(w), opts...)
}

// NewLogWithWriter creates a logger backed by h
func NewLogWithWriter(h *Handler, opts ...Option) *logWithWriter {
	var lw logWithWriter
	lw.handler = h
	lw.Logger.Handler = h
	lw.Logger.Level = log.InfoLevel
	for _, opt := range opts {
		opt(&lw)
	}
	return &lw
}

// GetWriterForLevel returns the logger's writer when level is enabled, or a discarding writer otherwise
func GetWriterForLevel(logger Logger, level log.Level) io.Writer {
	if level == log.DebugLevel && !logger.IsVerbose() {
		return io.Discard
	}
	return logger.Writer()
}
