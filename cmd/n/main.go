// Package main is the entry point for the n CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/nscaffold/n/internal/cmd"
	"github.com/nscaffold/n/internal/cmdutil"
	"github.com/nscaffold/n/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := cmd.NewRootCmd(&config.GlobalConfig{})

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		exitErr := cmdutil.PrintError(os.Stderr, err)
		os.Exit(exitErr.Code)
	}
}
