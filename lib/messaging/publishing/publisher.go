package publishing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	channel   *amqp.Channel
	channelMu sync.Mutex
)

// PublishJSONMessage publishes a JSON message to the specified queue
func PublishJSONMessage(ctx context.Context, queueName string, body any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return publish(ctx, queueName, amqp.Publishing{
		ContentType:  "application/json",
		Body:         jsonBody,
		DeliveryMode: amqp.Persistent,
	})
}

func publish(ctx context.Context, queueName string, msg amqp.Publishing) error {
	Wait()

	channelMu.Lock()
	defer channelMu.Unlock()
	return channel.PublishWithContext(
		ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		msg,
	)
}
