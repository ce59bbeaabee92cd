package main

import (
	"log"

	"github.com/naitik09090/backend-games/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ games failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ games stopped with error: %v", err)
	}
}
