package postgres

import (
	"database/sql"
	"fmt"
	"sync"

	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/utils/singleton"

	_ "github.com/lib/pq"
)

var (
	DB       *sql.DB
	logger   = logging.NewLogger("POSTGRES")
	initOnce sync.Once
	initDone <-chan struct{}
)

// DSN builds the lib/pq connection string from POSTGRES_* settings
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		env.PostgresHost, env.PostgresPort, env.PostgresUser, env.PostgresPassword, env.PostgresDB)
}

// Init starts connecting in the background. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		initDone = singleton.InitAsync("POSTGRES", 10, func() error {
			db, err := sql.Open("postgres", DSN())
			if err != nil {
				return err
			}
			if err := db.Ping(); err != nil {
				db.Close()
				return err
			}
			DB = db
			return nil
		})
	})
}

// Wait blocks until PostgreSQL initialization is complete
func Wait() {
	Init()
	<-initDone
}
