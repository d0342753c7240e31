package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cityair/cityair-server/internal/connection"
	"github.com/cityair/cityair-server/internal/queue"
	"github.com/cityair/cityair-server/internal/schedule"
	"github.com/cityair/cityair-server/internal/server"
	"github.com/cityair/cityair-server/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting CityAir Ingest Server...")

	// Create Kafka topics
	if err := queue.CreateTopic(
		cfg.Kafka.Brokers,
		cfg.Kafka.TopicReadings,
		cfg.Kafka.NumPartitions,
		1, // replication factor
	); err != nil {
		fmt.Printf("Note: Topic creation failed (may already exist): %v\n", err)
	}

	if err := queue.CreateTopic(
		cfg.Kafka.Brokers,
		cfg.Kafka.TopicAdvisories,
		1, // single partition for advisories
		1, // replication factor
	); err != nil {
		fmt.Printf("Note: Topic creation failed (may already exist): %v\n", err)
	}

	// Create Kafka producer for the readings topic
	producer := queue.NewProducerWithConfig(&queue.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.TopicReadings,
		BatchSize:    cfg.Kafka.BatchSize,
		BatchTimeout: cfg.Kafka.BatchTimeout,
		Async:        cfg.Kafka.Async,
		MaxAttempts:  cfg.Kafka.MaxAttempts,
	})
	defer producer.Close()
	fmt.Printf("Kafka producer initialized (batch=%d, async=%v)\n",
		cfg.Kafka.BatchSize, cfg.Kafka.Async)

	// Create connection manager
	connManager := connection.NewManager(cfg.TCPServer.MaxConnections)
	fmt.Println("Connection manager initialized")

	// Create scheduler for inactivity timers
	scheduler := schedule.NewScheduler()
	scheduler.Start()
	defer scheduler.Stop()
	fmt.Println("Scheduler started")

	// Create and start TCP server
	tcpServer := server.NewTCPServer(&cfg.TCPServer, connManager, scheduler, producer)
	if err := tcpServer.Start(); err != nil {
		log.Fatalf("Failed to start TCP server: %v", err)
	}
	defer tcpServer.Stop()

	// Print statistics periodically
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			stats := connManager.Stats()
			fmt.Printf("\n--- Server Statistics ---\n")
			fmt.Printf("Active Stations: %d / %d\n", stats.TotalConnections, stats.MaxConnections)
			fmt.Printf("Unique Zones: %d\n", stats.UniqueZones)
			fmt.Printf("Pending Timers: %d\n", scheduler.Pending())
			fmt.Printf("------------------------\n\n")
		}
	}()

	fmt.Println("\n✓ CityAir Ingest Server is running")
	fmt.Printf("✓ TCP Server listening on port %d\n", cfg.TCPServer.Port)
	fmt.Println("✓ Press Ctrl+C to stop")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
}
