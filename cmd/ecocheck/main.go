package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Options{
		Verbose:   isVerbose(),
		LogFormat: os.Getenv("ECOCHECK_LOG_FORMAT"),
	})

	err := root.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitOK
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil && exitErr.Code != cli.ExitInterrupted {
			fmt.Fprintln(os.Stderr, "error:", exitErr.Err)
		}
		return exitErr.Code
	}
	if ctx.Err() != nil {
		return cli.ExitInterrupted
	}
	fmt.Fprintf(os.Stderr, "💥 Health check failed with error: %v\n", err)
	return cli.ExitFailure
}

func isVerbose() bool {
	v := os.Getenv("ECOCHECK_DEBUG")
	return strings.EqualFold(v, "1") || strings.EqualFold(v, "true")
}
