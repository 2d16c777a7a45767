package processing

import (
	"context"
	"errors"
	"time"

	"lolstreamsearch/lib/monitoring/worker_metrics"
	"lolstreamsearch/lib/utils/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	WORKER_STOPPING = "WORKER_STOPPING"
	AUTOSCALE_IN    = "autoscaled_in"
)

var errScaledIn = errors.New(AUTOSCALE_IN)

// WorkerInterface is what a processor sees of the worker running it
type WorkerInterface interface {
	Context() context.Context
	Debug(key string, fields map[string]any)
	Info(key string, fields map[string]any)
	Warn(key string, err error, fields map[string]any)
	Error(key string, err error, fields map[string]any)
}

// ProcessorFunc handles one message. A returned error dead-letters the message, unless the
// worker was stopped meanwhile, in which case the message is requeued.
type ProcessorFunc func(worker WorkerInterface, message amqp.Delivery) error

// Worker consumes one channel of a topic's queue
type Worker struct {
	ID        int
	QueueName string
	logger    logging.Logger

	ctx        context.Context         // cancelled on shutdown or autoscale
	cancel     context.CancelCauseFunc // cause tells the two apart
	closer     func() error            // releases the AMQP channel, may be nil
	deliveries <-chan amqp.Delivery
	processor  ProcessorFunc
	done       chan struct{}
}

func newWorker(id int, queueName string, logger logging.Logger, deliveries <-chan amqp.Delivery, processor ProcessorFunc, closer func() error) *Worker {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &Worker{
		ID:         id,
		QueueName:  queueName,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		closer:     closer,
		deliveries: deliveries,
		processor:  processor,
		done:       make(chan struct{}),
	}
}

// Run processes deliveries until the worker is cancelled or the channel closes
func (w *Worker) Run() {
	defer close(w.done)
	if w.closer != nil {
		defer w.closer()
	}

	for {
		select {
		case <-w.ctx.Done():
			reason := "unknown"
			if cause := context.Cause(w.ctx); cause != nil {
				reason = cause.Error()
			}
			w.Debug(WORKER_STOPPING, map[string]any{
				logging.REASON: reason,
			})
			return
		case msg, ok := <-w.deliveries:
			if !ok {
				w.Warn(WORKER_STOPPING, errors.New("delivery channel closed"), nil)
				return
			}
			w.handle(msg)
		}
	}
}

func (w *Worker) handle(msg amqp.Delivery) {
	start := time.Now()
	err := w.processor(w, msg)
	worker_metrics.QueueMessageProcessingDuration.WithLabelValues(w.QueueName).Observe(time.Since(start).Seconds())

	if err != nil && w.ctx.Err() != nil {
		// Interrupted by scale-in or shutdown, another worker picks it up
		w.Info("MESSAGE_REQUEUED", map[string]any{
			logging.REASON: err.Error(),
		})
		worker_metrics.QueueMessagesProcessed.WithLabelValues(w.QueueName, "requeued").Inc()
		if err := msg.Nack(false, true); err != nil {
			w.Error("MESSAGE_NACK_ERROR", err, nil)
		}
		return
	}

	if err != nil {
		w.Warn("MESSAGE_PROCESSING_ERROR", err, nil)
		worker_metrics.QueueMessagesProcessed.WithLabelValues(w.QueueName, "error").Inc()
		// requeue=false: the broker dead-letters the message if the queue has a DLX
		if err := msg.Nack(false, false); err != nil {
			w.Error("MESSAGE_NACK_ERROR", err, nil)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		w.Warn("MESSAGE_ACK_ERROR", err, nil)
		return
	}
	worker_metrics.QueueMessagesProcessed.WithLabelValues(w.QueueName, "success").Inc()
}

// Wait blocks until Run has returned
func (w *Worker) Wait() {
	<-w.done
}

// ScaleIn stops this worker. Calls made for the message in flight are cancelled through
// Context; a message that fails because of it is requeued.
func (w *Worker) ScaleIn() {
	w.cancel(errScaledIn)
}

func (w *Worker) Context() context.Context {
	return w.ctx
}

func (w *Worker) addWorkerFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out[logging.QUEUE] = w.QueueName
	out[logging.WORKER_ID] = w.ID
	return out
}

func (w *Worker) Debug(key string, fields map[string]any) {
	w.logger.Debug(key, w.addWorkerFields(fields))
}

func (w *Worker) Info(key string, fields map[string]any) {
	w.logger.Info(key, w.addWorkerFields(fields))
}

func (w *Worker) Warn(key string, err error, fields map[string]any) {
	w.logger.Warn(key, err, w.addWorkerFields(fields))
}

func (w *Worker) Error(key string, err error, fields map[string]any) {
	w.logger.Error(key, err, w.addWorkerFields(fields))
}
