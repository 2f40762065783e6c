package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/evently/internal/buildinfo"
	"github.com/dmitrijs2005/evently/internal/client/cli"
	"github.com/dmitrijs2005/evently/internal/client/config"
	"github.com/dmitrijs2005/evently/internal/logging"
)

// loadConfig is a test seam.
var loadConfig = config.LoadConfig

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

// run wires the client together and returns the process exit code. Deferred
// cleanup runs on every path.
func run(stdout, stderr io.Writer) int {
	buildinfo.PrintBuildData(stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	logger := logging.NewTextLogger(stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	defer app.Close()

	app.Run(ctx)
	return 0
}
