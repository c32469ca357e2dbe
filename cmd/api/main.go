package main

import (
	"log/slog"
	"os"

	"github.com/metinatakli/venue-checkout/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		slog.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
