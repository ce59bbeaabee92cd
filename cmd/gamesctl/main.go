package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/naitik09090/backend-games/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.New().ExecuteContext(ctx); err != nil {
		log.Fatalf("❌ gamesctl: %v", err)
	}
}
