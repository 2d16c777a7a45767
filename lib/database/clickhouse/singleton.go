package clickhouse

import (
	"context"
	"fmt"
	"sync"

	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/utils/singleton"

	"github.com/ClickHouse/clickhouse-go/v2"
	ch "github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

var (
	DB       ch.Conn
	initOnce sync.Once
	initDone <-chan struct{}
)

// Init starts connecting in the background. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		initDone = singleton.InitAsync("CLICKHOUSE", 10, func() error {
			conn, err := connect()
			if err != nil {
				return err
			}
			if err := conn.Ping(context.Background()); err != nil {
				conn.Close()
				return err
			}
			DB = conn
			return nil
		})
	})
}

// Wait blocks until ClickHouse initialization is complete
func Wait() {
	Init()
	<-initDone
}

func connect() (ch.Conn, error) {
	return clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%s", env.ClickHouseHost, env.ClickHousePort)},
		Auth: clickhouse.Auth{
			Database: env.ClickHouseDB,
			Username: env.ClickHouseUser,
			Password: env.ClickHousePassword,
		},
	})
}
