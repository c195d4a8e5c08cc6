package main

import (
	"os"

	"github.com/heroku/color"
	"golang.org/x/term"

	"github.com/buildpacks/libcnb/cmd"
	"github.com/buildpacks/libcnb/internal/commands"
	"github.com/buildpacks/libcnb/logging"
)

func main() {
	// create logger with defaults
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.Disable(true)
	}
	logger := logging.NewLogWithWriter(logging.NewLogHandler(os.Stdout), logging.WithErrorWriter(os.Stderr))

	rootCmd := cmd.NewCnbutilCommand(logger)

	ctx := commands.CreateCancellableContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
