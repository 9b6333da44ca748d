package main

import (
	"log"

	"bookstore-service/internal/app"
	"bookstore-service/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.New(cfg).Run(); err != nil {
		log.Fatal(err)
	}
}
