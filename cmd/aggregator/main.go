package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cityair/cityair-server/internal/aggregation"
	"github.com/cityair/cityair-server/internal/database"
	"github.com/cityair/cityair-server/internal/schedule"
	"github.com/cityair/cityair-server/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("Starting Aggregation Service...")

	// Connect to database
	db, err := database.Connect(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("Connected to database")

	// Create scheduler
	scheduler := schedule.NewScheduler()
	scheduler.Start()
	defer scheduler.Stop()
	fmt.Println("Scheduler started")

	// Create aggregators
	hourlyAgg := aggregation.NewHourlyAggregator(db)
	dailyAgg := aggregation.NewDailyAggregator(db)

	scheduleHourlyAggregation(scheduler, hourlyAgg, cfg.Aggregation.HourlyDelay)
	scheduleDailyAggregation(scheduler, dailyAgg, cfg.Aggregation.DailyTime)

	fmt.Println("\n✓ Aggregation Service is running")
	fmt.Println("✓ Press Ctrl+C to stop")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down gracefully...")
}

func scheduleHourlyAggregation(s *schedule.Scheduler, agg *aggregation.HourlyAggregator, delay time.Duration) {
	taskID := "hourly-aggregation"

	var scheduleNext func()
	scheduleNext = func() {
		nextRun := agg.CalculateNextRunTime(delay)
		fmt.Printf("Next hourly aggregation scheduled for: %s\n", nextRun.Format("2006-01-02 15:04:05"))

		err := s.Schedule(taskID, nextRun, func() {
			fmt.Println("\n--- Running Hourly Aggregation ---")
			if err := agg.AggregatePreviousHour(); err != nil {
				log.Printf("Hourly aggregation failed: %v\n", err)
			}
			fmt.Println("--- Hourly Aggregation Complete ---")

			// Schedule next run
			scheduleNext()
		})
		if err != nil {
			log.Printf("Failed to schedule hourly aggregation: %v\n", err)
		}
	}

	scheduleNext()
}

func scheduleDailyAggregation(s *schedule.Scheduler, agg *aggregation.DailyAggregator, timeOfDay string) {
	taskID := "daily-aggregation"

	var scheduleNext func()
	scheduleNext = func() {
		nextRun, err := agg.CalculateNextRunTime(timeOfDay)
		if err != nil {
			log.Fatalf("Failed to calculate daily run time: %v", err)
		}
		fmt.Printf("Next daily aggregation scheduled for: %s\n", nextRun.Format("2006-01-02 15:04:05"))

		err = s.Schedule(taskID, nextRun, func() {
			fmt.Println("\n--- Running Daily Aggregation ---")
			if err := agg.AggregatePreviousDay(); err != nil {
				log.Printf("Daily aggregation failed: %v\n", err)
			}
			fmt.Println("--- Daily Aggregation Complete ---")

			// Schedule next run
			scheduleNext()
		})
		if err != nil {
			log.Printf("Failed to schedule daily aggregation: %v\n", err)
		}
	}

	scheduleNext()
}
