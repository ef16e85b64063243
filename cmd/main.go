package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwise1/lifegroup_locator/config"
	deps "github.com/bwise1/lifegroup_locator/internal/debs"
	api "github.com/bwise1/lifegroup_locator/internal/http/rest"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()
	deps := deps.New(cfg)

	a := &api.API{
		Config: cfg,
		Deps:   deps,
	}

	// warm the snapshot so the first search does not pay for a full geocoding pass
	go func() {
		snap := deps.Dataset.Get(context.Background())
		if !snap.Available() {
			log.Printf("[Dataset]: initial load unavailable: %v", snap.Err)
		}
	}()

	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		if err := a.Serve(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Doing nothing for ", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")
	if err := a.Shutdown(); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped.")
}
