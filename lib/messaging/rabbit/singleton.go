package rabbit

import (
	"fmt"
	"sync"

	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/utils/singleton"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	Conn     *amqp.Connection
	initOnce sync.Once
	initDone <-chan struct{}
)

// Init starts connecting in the background. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		initDone = singleton.InitAsync("RABBITMQ", 10, func() error {
			rabbitURL := fmt.Sprintf("amqp://%s:%s@%s:%s/", env.RabbitMQUser, env.RabbitMQPassword, env.RabbitMQHost, env.RabbitMQPort)
			conn, err := amqp.Dial(rabbitURL)
			if err != nil {
				return err
			}
			Conn = conn
			return nil
		})
	})
}

// Wait blocks until RabbitMQ initialization is complete
func Wait() {
	Init()
	<-initDone
}

// DeclareQueue declares a durable queue on ch. Publishers and consumers share these arguments.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}
