package migrations

import (
	"os"
	"path/filepath"
	"sort"

	"lolstreamsearch/lib/utils/logging"
)

var logger = logging.NewLogger("MIGRATIONS")

// GetMigrationFiles reads all SQL files from a directory and returns them sorted
func GetMigrationFiles(directory string) ([]string, error) {
	var migrationFiles []string
	files, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if filepath.Ext(file.Name()) == ".sql" {
			migrationFiles = append(migrationFiles, file.Name())
		}
	}

	// Names start with a sequence number
	sort.Strings(migrationFiles)
	return migrationFiles, nil
}

// ReadMigrationFile reads a migration file and returns its contents
func ReadMigrationFile(directory, filename string) (string, error) {
	data, err := os.ReadFile(filepath.Join(directory, filename))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MigrationConfig holds the configuration for running migrations
type MigrationConfig struct {
	Directory            string
	MigrationFiles       []string
	GetAppliedMigrations func() (map[string]bool, error)
	ApplyMigration       func(filename, sql string) error
}

// RunMigrations applies every file of config.MigrationFiles not yet reported as applied, in order.
// It returns the number of migrations applied.
func RunMigrations(config MigrationConfig) (int, error) {
	logger.Info("FOUND_MIGRATION_FILES", map[string]any{
		logging.COUNT: len(config.MigrationFiles),
		logging.PATH:  config.Directory,
	})

	appliedMigrations, err := config.GetAppliedMigrations()
	if err != nil {
		logger.Error("FAILED_TO_GET_APPLIED_MIGRATIONS", err, nil)
		return 0, err
	}

	appliedCount := 0
	for _, filename := range config.MigrationFiles {
		fields := map[string]any{
			logging.FILENAME: filename,
		}
		if appliedMigrations[filename] {
			logger.Debug("MIGRATION_ALREADY_APPLIED", fields)
			continue
		}

		logger.Info("APPLYING_MIGRATION", fields)

		migrationSQL, err := ReadMigrationFile(config.Directory, filename)
		if err != nil {
			logger.Error("FAILED_TO_READ_MIGRATION_FILE", err, fields)
			return appliedCount, err
		}

		if err := config.ApplyMigration(filename, migrationSQL); err != nil {
			logger.Error("FAILED_TO_APPLY_MIGRATION", err, fields)
			return appliedCount, err
		}

		logger.Info("MIGRATION_APPLIED", fields)
		appliedCount++
	}

	if appliedCount == 0 {
		logger.Info("DATABASE_UP_TO_DATE", nil)
	} else {
		logger.Info("MIGRATIONS_COMPLETE", map[string]any{
			logging.COUNT: appliedCount,
		})
	}

	return appliedCount, nil
}
