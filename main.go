package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/williamokano/oss_cli/pkg/cli"
	"github.com/williamokano/oss_cli/pkg/logger"
)

func main() {
	// Initialize logger with default settings until the .env file is read
	logger.Init("info", "console")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.Options{}, os.Args[1:])
	stop()

	os.Exit(code)
}
