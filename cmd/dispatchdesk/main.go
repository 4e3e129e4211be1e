// Command dispatchdesk is the command-line and terminal client of the dispatch report backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jetsetgo/dispatchdesk/internal/cli"
	"github.com/jetsetgo/dispatchdesk/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		// Cobra has already printed the error.
		return 1
	}
	return 0
}
