package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/cityair/cityair-server/internal/aqi"
	"github.com/cityair/cityair-server/internal/database"
	"github.com/cityair/cityair-server/internal/protocol"
)

// BatchWriter consumes reading messages from Kafka and writes both the raw
// reading and its computed AQI snapshot to the database
type BatchWriter struct {
	consumer      *Consumer
	db            *database.DB
	batchSize     int
	flushInterval time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

// NewBatchWriter creates a new batch writer
func NewBatchWriter(consumer *Consumer, db *database.DB, batchSize int, flushInterval time.Duration) *BatchWriter {
	return &BatchWriter{
		consumer:      consumer,
		db:            db,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		stopCh:        make(chan struct{}),
	}
}

// Start begins consuming and writing to database
func (bw *BatchWriter) Start(ctx context.Context) error {
	bw.wg.Add(1)
	go bw.run(ctx)
	return nil
}

// Stop stops the batch writer gracefully
func (bw *BatchWriter) Stop() {
	close(bw.stopCh)
	bw.wg.Wait()
}

func (bw *BatchWriter) run(ctx context.Context) {
	defer bw.wg.Done()

	var batch []kafka.Message
	ticker := time.NewTicker(bw.flushInterval)
	defer ticker.Stop()

	msgChan := make(chan kafka.Message, 10)
	go func() {
		for {
			msg, err := bw.consumer.Consume(ctx)
			if err != nil {
				fmt.Printf("Consumer error: %v\n", err)
				continue
			}
			msgChan <- msg
		}
	}()

	for {
		select {
		case <-bw.stopCh:
			// Flush remaining batch before stopping
			if len(batch) > 0 {
				bw.flush(ctx, batch)
			}
			return

		case <-ticker.C:
			if len(batch) > 0 {
				bw.flush(ctx, batch)
				batch = nil
			}

		case msg := <-msgChan:
			batch = append(batch, msg)
			if len(batch) >= bw.batchSize {
				bw.flush(ctx, batch)
				batch = nil
			}
		}
	}
}

func (bw *BatchWriter) flush(ctx context.Context, batch []kafka.Message) {
	if len(batch) == 0 {
		return
	}

	successCount := 0
	for _, msg := range batch {
		if err := bw.processMessage(msg); err != nil {
			fmt.Printf("Failed to process message: %v\n", err)
			continue
		}
		successCount++

		// Commit offset after successful processing
		if err := bw.consumer.Commit(ctx, msg); err != nil {
			fmt.Printf("Failed to commit offset: %v\n", err)
		}
	}

	fmt.Printf("Flushed batch of %d messages to database\n", successCount)
}

func (bw *BatchWriter) processMessage(msg kafka.Message) error {
	readingMsg, err := protocol.DecodeReadingMessage(msg.Value)
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}

	parsed, err := readingMsg.Data.Parse()
	if err != nil {
		return fmt.Errorf("failed to parse reading data: %w", err)
	}

	// Ensure the zone exists
	zone, err := bw.db.GetZone(readingMsg.Zone)
	if err != nil {
		return fmt.Errorf("failed to get zone: %w", err)
	}
	if zone == nil {
		newZone := &database.Zone{
			Zone:     readingMsg.Zone,
			CityName: readingMsg.City,
		}
		if err := bw.db.UpsertZone(newZone); err != nil {
			return fmt.Errorf("failed to create zone: %w", err)
		}
	}

	// Insert the raw reading
	raw := &database.RawReading{
		Zone:       readingMsg.Zone,
		Timestamp:  parsed.Timestamp,
		ReceivedAt: readingMsg.ReceivedAt,
	}
	for _, r := range parsed.Readings {
		raw.SetConcentration(r.Pollutant, r.Value)
	}
	if err := bw.db.InsertRawReading(raw); err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}

	// Compute and persist the AQI snapshot
	result, err := aqi.Compute(parsed.Readings)
	if err != nil {
		return fmt.Errorf("failed to compute AQI for zone %s: %w", readingMsg.Zone, err)
	}

	snapshot := &database.AQISnapshot{
		Zone:      readingMsg.Zone,
		Timestamp: parsed.Timestamp,
		Value:     result.Value,
		Category:  string(result.Category),
		Dominant:  string(result.Dominant),
	}
	if err := bw.db.InsertAQISnapshot(snapshot); err != nil {
		return fmt.Errorf("failed to insert AQI snapshot: %w", err)
	}

	return nil
}
