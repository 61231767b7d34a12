// Command cacheimport bulk-loads previously exported geocode cache
// entries (CSV address,lat,lon) into the Postgres cache. Existing entries
// keep their stored value; the import never overwrites.
package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/lib/pq"

	"github.com/sassil1/petmap/internal/config"
)

type CacheRecord struct {
	Address string
	Lat     float64
	Lon     float64
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DBSource == "" {
		fmt.Println("Error: DB_SOURCE is not configured")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := createTableIfNotExists(db); err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	inserted, err := importRecords(db, records)
	if err != nil {
		fmt.Printf("Error importing records: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records (%d already cached)\n", inserted, len(records)-inserted)
}

func parseCSV(filePath string) ([]CacheRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	_, err = reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []CacheRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 3 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 3 columns", len(record))
		}

		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %s", record[1])
		}

		lon, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %s", record[2])
		}

		if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("coordinate out of range: %v, %v", lat, lon)
		}

		records = append(records, CacheRecord{
			Address: record[0],
			Lat:     lat,
			Lon:     lon,
		})
	}

	return records, nil
}

func createTableIfNotExists(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address    TEXT PRIMARY KEY,
		latitude   DOUBLE PRECISION NOT NULL,
		longitude  DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	_, err := db.Exec(query)
	return err
}

// importRecords stages the rows with COPY into a temp table, then merges
// them with ON CONFLICT DO NOTHING so already-cached addresses keep their
// first stored value.
func importRecords(db *sql.DB, records []CacheRecord) (int, error) {
	txn, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer txn.Rollback()

	_, err = txn.Exec(`
		CREATE TEMP TABLE geocode_cache_import (
			address   TEXT,
			latitude  DOUBLE PRECISION,
			longitude DOUBLE PRECISION
		) ON COMMIT DROP
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to create staging table: %w", err)
	}

	stmt, err := txn.Prepare(pq.CopyIn("geocode_cache_import", "address", "latitude", "longitude"))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare copy: %w", err)
	}

	for _, r := range records {
		if _, err := stmt.Exec(r.Address, r.Lat, r.Lon); err != nil {
			return 0, fmt.Errorf("failed to copy record: %w", err)
		}
	}
	if _, err := stmt.Exec(); err != nil {
		return 0, fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("failed to close copy: %w", err)
	}

	result, err := txn.Exec(`
		INSERT INTO geocode_cache (address, latitude, longitude)
		SELECT address, latitude, longitude FROM geocode_cache_import
		ON CONFLICT (address) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to merge staged records: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count inserted rows: %w", err)
	}

	if err := txn.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(inserted), nil
}
