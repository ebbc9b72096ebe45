package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shortly-web/internal/clipboard"
	"shortly-web/internal/config"
	"shortly-web/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.InitLog(cfg.LogLevel)
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, log, clipboard.System{})
	defer a.close()

	return newRootCmd(a).ExecuteContext(ctx)
}
