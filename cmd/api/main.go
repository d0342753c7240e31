package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cityair/cityair-server/internal/api"
	"github.com/cityair/cityair-server/internal/database"
	"github.com/cityair/cityair-server/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting Query API Service...")

	// Connect to database
	db, err := database.Connect(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("Connected to database")

	// Create API server
	server := api.NewServer(db, cfg.API, cfg.Forecast)

	go func() {
		fmt.Printf("\n✓ Query API listening on port %d\n", cfg.API.Port)
		fmt.Println("✓ Press Ctrl+C to stop")
		if err := server.ListenAndServe(); err != nil {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
}
