package main

import (
	"context"
	"log"

	"themis/internal/app/bootstrap"

	"github.com/joho/godotenv"
)

// Worker process entrypoint.
// Data flow:
// 1) Load .env and config.
// 2) Build app wiring.
// 3) Start consumers and the outbox relay loop.
func main() {
	_ = godotenv.Load()

	log.Println("themis worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("themis worker stopped with error: %v", err)
	}
}
