package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"lolstreamsearch/lib/database/clickhouse"
	"lolstreamsearch/lib/database/migrations"
	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/utils/logging"
)

var logger = logging.NewLogger("CLICKHOUSE_MIGRATE")

func applyMigration(ctx context.Context, filename, migrationSQL string) error {
	// Split SQL by semicolons and execute each statement
	statements := splitSQL(migrationSQL)
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if err := clickhouse.DB.Exec(ctx, stmt); err != nil {
			// Check if it's an "already exists" error
			if strings.Contains(err.Error(), "already exists") || strings.Contains(err.Error(), "Duplicate") {
				logger.Warn("MIGRATION_OBJECT_EXISTS", err, map[string]any{
					logging.FILENAME: filename,
				})
				continue
			}
			return fmt.Errorf("error executing migration: %w", err)
		}
	}

	// Record migration with explicit database
	migrationsTable := fmt.Sprintf("%s._migrations", env.ClickHouseDB)
	if err := clickhouse.DB.Exec(ctx, fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", migrationsTable), filename); err != nil {
		return fmt.Errorf("error recording migration: %w", err)
	}

	return nil
}

func splitSQL(sql string) []string {
	// Simple split by semicolon, ignoring those inside strings
	var statements []string
	var current strings.Builder
	inString := false
	escapeNext := false

	for _, c := range sql {
		if escapeNext {
			current.WriteRune(c)
			escapeNext = false
			continue
		}

		if c == '\\' {
			escapeNext = true
			current.WriteRune(c)
			continue
		}

		if c == '\'' {
			inString = !inString
			current.WriteRune(c)
			continue
		}

		if c == ';' && !inString {
			statements = append(statements, current.String())
			current.Reset()
			continue
		}

		current.WriteRune(c)
	}

	// Add the last statement if any
	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}

func getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	appliedMigrations := make(map[string]bool)
	rows, err := clickhouse.DB.Query(ctx, fmt.Sprintf("SELECT name FROM %s._migrations FINAL", env.ClickHouseDB))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		appliedMigrations[name] = true
	}
	return appliedMigrations, rows.Err()
}

func main() {
	directory := flag.String("dir", "infrastructure/clickhouse/migrations", "migration directory")
	logging.ParseFlags()

	clickhouse.Wait()
	ctx := context.Background()

	createMigrationsTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s._migrations
		(
			name String,
			applied_at DateTime DEFAULT now()
		)
		ENGINE = ReplacingMergeTree(applied_at)
		ORDER BY name
	`, env.ClickHouseDB)
	if err := clickhouse.DB.Exec(ctx, createMigrationsTableSQL); err != nil {
		logger.Fatal("MIGRATIONS_TABLE_CREATE_ERROR", err, nil)
	}

	if _, err := os.Stat(*directory); os.IsNotExist(err) {
		logger.Info("NO_MIGRATION_DIRECTORY", map[string]any{
			logging.PATH: *directory,
		})
		return
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
			return getAppliedMigrations(ctx)
		},
		ApplyMigration: func(filename, sql string) error {
			return applyMigration(ctx, filename, sql)
		},
	})
	if err != nil {
		logger.Fatal("MIGRATIONS_FAILED", err, nil)
	}
}
