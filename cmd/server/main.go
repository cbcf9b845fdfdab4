// Command server runs the HTTP API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/fileshare/fileshare-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
