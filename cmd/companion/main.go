package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/easeaico/virtual-companion/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if err := cli.Run(ctx, os.Args, version); err != nil {
		stop()
		os.Exit(1)
	}
	stop()
}
