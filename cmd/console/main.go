package main

import (
	"log"

	"github.com/aussiebroadwan/realmadmin/internal/console/app"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize console: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("console error: %v", err)
	}
}
