package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"licita/internal/config"
	"licita/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	svc := watcher.NewService(cfg)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
