// main.go bootstraps qtest: it builds the root Cobra command and executes it with a signal-aware context.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCommand().ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	if errors.Is(err, errFailedCommands) {
		message = fmt.Sprintf("%s\nHint: rerun with --echo to see which commands failed.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
