package publishing

import "context"

// MessagePublisher interface for sending messages
type MessagePublisher interface {
	PublishJSONMessage(ctx context.Context, queueName string, body any) error
}

// RabbitPublisher publishes through the shared channel of this package
type RabbitPublisher struct{}

func (RabbitPublisher) PublishJSONMessage(ctx context.Context, queueName string, body any) error {
	return PublishJSONMessage(ctx, queueName, body)
}
