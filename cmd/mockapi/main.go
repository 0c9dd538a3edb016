package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmota/failboard/internal/buildinfo"
	"github.com/marmota/failboard/internal/logging"
	"github.com/marmota/failboard/internal/mockapi"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := mockapi.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.New(os.Stderr, cfg.LogLevel, "text")
	if err := mockapi.Run(ctx, *cfg, log); err != nil {
		log.Error(ctx, "mock api stopped", "error", err)
		os.Exit(1)
	}
}
