package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BonMercato/wunder/internal/interfaces/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, version, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
