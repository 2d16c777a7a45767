package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"time"

	"lolstreamsearch/lib/database/migrations"
	"lolstreamsearch/lib/database/postgres"
	"lolstreamsearch/lib/utils/logging"

	"github.com/lib/pq"
)

var logger = logging.NewLogger("POSTGRES_MIGRATE")

func applyMigration(db *sql.DB, filename, migrationSQL string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// Execute the entire migration as one statement
	_, err = tx.Exec(migrationSQL)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P07" { // duplicate_table
			logger.Warn("MIGRATION_OBJECT_EXISTS", err, map[string]any{
				logging.FILENAME: filename,
			})
		} else {
			return fmt.Errorf("error executing migration: %w", err)
		}
	}

	_, err = tx.Exec("INSERT INTO _migrations (name, applied_at) VALUES ($1, $2)", filename, time.Now())
	if err != nil {
		return fmt.Errorf("error recording migration: %w", err)
	}

	return tx.Commit()
}

func getAppliedMigrations(db *sql.DB) (map[string]bool, error) {
	applied := make(map[string]bool)
	rows, err := db.Query("SELECT name FROM _migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func main() {
	directory := flag.String("dir", "infrastructure/postgres/migrations", "migration directory")
	logging.ParseFlags()

	postgres.Wait()
	db := postgres.DB
	defer db.Close()

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS _migrations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	if err != nil {
		logger.Fatal("MIGRATIONS_TABLE_CREATE_ERROR", err, nil)
	}

	migrationFiles, err := migrations.GetMigrationFiles(*directory)
	if err != nil {
		logger.Fatal("MIGRATION_FILES_READ_ERROR", err, map[string]any{
			logging.PATH: *directory,
		})
	}

	_, err = migrations.RunMigrations(migrations.MigrationConfig{
		Directory:      *directory,
		MigrationFiles: migrationFiles,
		GetAppliedMigrations: func() (map[string]bool, error) {
			return getAppliedMigrations(db)
		},
		ApplyMigration: func(filename, sql string) error {
			return applyMigration(db, filename, sql)
		},
	})
	if err != nil {
		logger.Fatal("MIGRATIONS_FAILED", err, nil)
	}
}
