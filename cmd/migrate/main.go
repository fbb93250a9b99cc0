package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/lib/pq"

	"awards-platform/internal/config"
)

// Applies the raw SQL files in migrations/ in name order. Re-running is
// safe: duplicate-object errors from already-applied files are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	files, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		log.Fatalf("Failed to list migrations: %v", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Failed to read migration file %s: %v", file, err)
		}

		log.Printf("Applying migration: %s", file)
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && isAlreadyApplied(pqErr) {
				log.Printf("Skipping %s: already applied (%s)", file, pqErr.Code.Name())
				continue
			}
			log.Fatalf("Failed to apply migration %s: %v", file, err)
		}
	}

	log.Println("Migrations completed successfully")
}

// isAlreadyApplied reports whether the error means the schema object
// already exists
func isAlreadyApplied(err *pq.Error) bool {
	switch err.Code {
	case "42P07", // duplicate_table
		"42701", // duplicate_column
		"42710": // duplicate_object
		return true
	}
	return false
}
