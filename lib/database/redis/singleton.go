package redis

import (
	"context"
	"sync"

	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/utils/singleton"

	goredis "github.com/redis/go-redis/v9"
)

var (
	Client   *goredis.Client
	initOnce sync.Once
	initDone <-chan struct{}
)

// Enabled reports whether REDIS_ADDR is configured
func Enabled() bool {
	return env.RedisAddr != ""
}

// Init starts connecting in the background. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		initDone = singleton.InitAsync("REDIS", 5, func() error {
			client := goredis.NewClient(&goredis.Options{
				Addr: env.RedisAddr,
			})
			if err := client.Ping(context.Background()).Err(); err != nil {
				client.Close()
				return err
			}
			Client = client
			return nil
		})
	})
}

// Wait blocks until Redis initialization is complete
func Wait() {
	Init()
	<-initDone
}
