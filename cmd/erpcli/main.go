package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erp/client/internal/cli"
	"github.com/erp/client/internal/domain/shared"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(version)
	if err := root.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps domain failures to distinct shell exit codes so scripts can
// tell an auth problem from a connectivity one.
func exitCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrSessionInvalid), errors.Is(err, shared.ErrInvalidCredentials):
		return 3
	case errors.Is(err, shared.ErrForbidden):
		return 4
	case errors.Is(err, shared.ErrConnection):
		return 5
	default:
		return 1
	}
}
