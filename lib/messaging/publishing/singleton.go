package publishing

import (
	"sync"

	"lolstreamsearch/lib/messaging/rabbit"
	"lolstreamsearch/lib/messaging/routing"
	"lolstreamsearch/lib/utils/singleton"
)

var (
	initOnce sync.Once
	initDone <-chan struct{}
)

// Init opens the publisher channel once RabbitMQ is connected. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		initDone = singleton.InitAsync("RABBITMQ_PUBLISHER", 3, func() error {
			rabbit.Wait()

			ch, err := rabbit.Conn.Channel()
			if err != nil {
				return err
			}
			// Messages published before the first worker starts must not be dropped
			for _, queue := range routing.Queues {
				if _, err := rabbit.DeclareQueue(ch, queue); err != nil {
					ch.Close()
					return err
				}
			}
			channel = ch
			return nil
		})
	})
}

// Wait blocks until publishing initialization is complete
func Wait() {
	Init()
	<-initDone
}
