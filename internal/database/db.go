package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Connect establishes a connection to the database
func Connect(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &DB{db}, nil
}

// RunMigrations executes all SQL migration files in order
func (db *DB) RunMigrations(migrationsDir string) error {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var sqlFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, filename := range sqlFiles {
		fmt.Printf("Running migration: %s\n", filename)

		content, err := os.ReadFile(filepath.Join(migrationsDir, filename))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
	}

	fmt.Println("All migrations completed successfully")
	return nil
}

// UpsertZone inserts or updates a zone
func (db *DB) UpsertZone(zone *Zone) error {
	query := `
		INSERT INTO zones (zone, city_name, lat, lon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (zone) DO UPDATE
		SET city_name = EXCLUDED.city_name,
		    lat = EXCLUDED.lat,
		    lon = EXCLUDED.lon,
		    updated_at = CURRENT_TIMESTAMP
	`
	_, err := db.Exec(query, zone.Zone, zone.CityName, zone.Lat, zone.Lon)
	return err
}

// GetZone retrieves a zone by its identifier
func (db *DB) GetZone(zone string) (*Zone, error) {
	query := `
		SELECT zone, city_name, lat, lon, created_at, updated_at
		FROM zones
		WHERE zone = $1
	`

	var z Zone
	err := db.QueryRow(query, zone).Scan(
		&z.Zone,
		&z.CityName,
		&z.Lat,
		&z.Lon,
		&z.CreatedAt,
		&z.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &z, nil
}

// InsertRawReading inserts a raw pollutant reading row
func (db *DB) InsertRawReading(reading *RawReading) error {
	query := `
		INSERT INTO raw_readings (
			zone, timestamp, pm25, pm10, no2, so2, co, o3, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	return db.QueryRow(
		query,
		reading.Zone,
		reading.Timestamp,
		reading.PM25,
		reading.PM10,
		reading.NO2,
		reading.SO2,
		reading.CO,
		reading.O3,
		reading.ReceivedAt,
	).Scan(&reading.ID)
}

// InsertAQISnapshot inserts a computed AQI snapshot
func (db *DB) InsertAQISnapshot(snapshot *AQISnapshot) error {
	query := `
		INSERT INTO aqi_snapshots (zone, timestamp, value, category, dominant)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return db.QueryRow(
		query,
		snapshot.Zone,
		snapshot.Timestamp,
		snapshot.Value,
		snapshot.Category,
		snapshot.Dominant,
	).Scan(&snapshot.ID)
}

// GetLatestAQISnapshot retrieves the most recent snapshot for a zone
func (db *DB) GetLatestAQISnapshot(zone string) (*AQISnapshot, error) {
	query := `
		SELECT id, zone, timestamp, value, category, dominant, created_at
		FROM aqi_snapshots
		WHERE zone = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var s AQISnapshot
	err := db.QueryRow(query, zone).Scan(
		&s.ID,
		&s.Zone,
		&s.Timestamp,
		&s.Value,
		&s.Category,
		&s.Dominant,
		&s.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// GetActiveAdvisoryThresholds retrieves all active advisory thresholds for a zone
func (db *DB) GetActiveAdvisoryThresholds(zone string) ([]*AdvisoryThreshold, error) {
	query := `
		SELECT id, zone, min_aqi, duration_minutes, is_active, created_at, updated_at
		FROM advisory_thresholds
		WHERE zone = $1 AND is_active = true
		ORDER BY min_aqi
	`

	rows, err := db.Query(query, zone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var thresholds []*AdvisoryThreshold
	for rows.Next() {
		var t AdvisoryThreshold
		if err := rows.Scan(
			&t.ID,
			&t.Zone,
			&t.MinAQI,
			&t.DurationMinutes,
			&t.IsActive,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		thresholds = append(thresholds, &t)
	}

	return thresholds, rows.Err()
}

// InsertAdvisoryLog inserts a new advisory log entry
func (db *DB) InsertAdvisoryLog(advisory *AdvisoryLog) error {
	query := `
		INSERT INTO advisories_log (
			zone, aqi_value, category, dominant, threshold_config, start_time, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING advisory_id
	`

	return db.QueryRow(
		query,
		advisory.Zone,
		advisory.AQIValue,
		advisory.Category,
		advisory.Dominant,
		advisory.ThresholdConfig,
		advisory.StartTime,
		advisory.Status,
	).Scan(&advisory.AdvisoryID)
}

// UpdateAdvisoryLogLifted updates an advisory log to lifted status
func (db *DB) UpdateAdvisoryLogLifted(advisoryID int64, endTime time.Time) error {
	query := `
		UPDATE advisories_log
		SET status = $1, end_time = $2, updated_at = CURRENT_TIMESTAMP
		WHERE advisory_id = $3
	`

	_, err := db.Exec(query, AdvisoryStatusLifted, endTime, advisoryID)
	return err
}
