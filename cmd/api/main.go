package main

import (
	"log"

	"bonsai-backend/internal/bootstrap"
	"bonsai-backend/internal/shared/config"
	"bonsai-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (doc store: %s)", addr, cfg.DocStoreType)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
