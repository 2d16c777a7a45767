package processing

import (
	"context"
	"errors"
	"sync"
	"time"

	"lolstreamsearch/lib/messaging/rabbit"
	"lolstreamsearch/lib/monitoring/worker_metrics"
	"lolstreamsearch/lib/utils/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

// TopicManager manages a single topic with self-scaling worker goroutines
type TopicManager struct {
	topic  Topic
	config TopicConfig
	ctx    context.Context
	logger logging.Logger

	mutex   sync.Mutex
	workers []*Worker
	scaler  *scaler

	// Dedicated channel for queue depth checks, never used for consuming
	depthChannel *amqp.Channel
}

func (tm *TopicManager) addTopicFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[logging.QUEUE] = tm.config.QueueName
	return out
}

func (tm *TopicManager) Info(key string, fields map[string]any) {
	tm.logger.Info(key, tm.addTopicFields(fields))
}

func (tm *TopicManager) Warn(key string, err error, fields map[string]any) {
	tm.logger.Warn(key, err, tm.addTopicFields(fields))
}

// StartTopicManager starts the topic's initial workers and its scaling monitor.
// Workers stop when ctx is done; Wait blocks until they have.
func StartTopicManager(ctx context.Context, topic Topic, logger logging.Logger) (*TopicManager, error) {
	config := topic.Config.withDefaults()
	tm := &TopicManager{
		topic:  topic,
		config: config,
		ctx:    ctx,
		logger: logger,
		scaler: newScaler(config),
	}

	rabbit.Wait()
	if err := tm.scaleTo(config.DesiredWorkers); err != nil {
		return nil, err
	}
	if tm.WorkerCount() == 0 {
		return nil, errors.New("no worker could be started")
	}

	tm.Info("TOPIC_STARTED", map[string]any{
		logging.WORKER_COUNT: tm.WorkerCount(),
	})

	go tm.handleShutdown()
	go tm.monitorSelfScaling()
	return tm, nil
}

// WorkerCount returns the number of running workers
func (tm *TopicManager) WorkerCount() int {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	return len(tm.workers)
}

// Wait blocks until ctx is done and every worker has settled its current message
func (tm *TopicManager) Wait() {
	<-tm.ctx.Done()

	tm.mutex.Lock()
	workers := append([]*Worker(nil), tm.workers...)
	tm.mutex.Unlock()
	for _, w := range workers {
		w.Wait()
	}
}

func (tm *TopicManager) scaleTo(target int) error {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	target = max(tm.config.MinWorkers, min(target, tm.config.MaxWorkers))
	from := len(tm.workers)

	var startErr error
	for len(tm.workers) < target {
		w, err := tm.startWorker(len(tm.workers))
		if err != nil {
			startErr = err
			tm.Warn("WORKER_START_ERROR", err, map[string]any{
				logging.WORKER_ID: len(tm.workers),
			})
			break
		}
		tm.workers = append(tm.workers, w)
	}
	for len(tm.workers) > target {
		last := len(tm.workers) - 1
		tm.workers[last].ScaleIn()
		tm.workers = tm.workers[:last]
	}

	worker_metrics.QueueWorkerCount.WithLabelValues(tm.config.QueueName).Set(float64(len(tm.workers)))
	if from != 0 && from != len(tm.workers) {
		tm.Info("WORKERS_SCALED", map[string]any{
			logging.FROM: from,
			logging.TO:   len(tm.workers),
		})
	}
	return startErr
}

func (tm *TopicManager) startWorker(workerID int) (*Worker, error) {
	ch, err := rabbit.Conn.Channel()
	if err != nil {
		return nil, err
	}

	q, err := rabbit.DeclareQueue(ch, tm.config.QueueName)
	if err != nil {
		ch.Close()
		return nil, err
	}

	if err := ch.Qos(tm.config.PrefetchCount, 0, false); err != nil {
		ch.Close()
		return nil, err
	}

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		return nil, err
	}

	w := newWorker(workerID, tm.config.QueueName, tm.logger, msgs, tm.topic.Processor, ch.Close)
	go w.Run()
	return w, nil
}

func (tm *TopicManager) monitorSelfScaling() {
	ticker := time.NewTicker(tm.config.ScaleCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case <-ticker.C:
		}

		queueDepth, err := tm.queueDepth()
		if err != nil {
			tm.Warn("QUEUE_DEPTH_ERROR", err, nil)
			continue
		}
		worker_metrics.QueueDepth.WithLabelValues(tm.config.QueueName).Set(float64(queueDepth))

		current := tm.WorkerCount()
		shouldScale, direction, target := tm.scaler.decide(queueDepth, current, time.Now())
		if !shouldScale {
			continue
		}

		tm.Info("SCALING_WORKERS", map[string]any{
			logging.QUEUE_DEPTH: queueDepth,
			logging.FROM:        current,
			logging.TO:          target,
			logging.DIRECTION:   direction,
		})
		worker_metrics.QueueScalingDecisions.WithLabelValues(tm.config.QueueName, direction).Inc()

		if err := tm.scaleTo(target); err != nil {
			tm.Warn("SCALING_FAILED", err, map[string]any{
				logging.TO: target,
			})
		}
		tm.scaler.scaled(time.Now())
	}
}

// queueDepth declares the queue on the depth channel, which returns its message count
// without consuming anything
func (tm *TopicManager) queueDepth() (int, error) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	if tm.depthChannel == nil || tm.depthChannel.IsClosed() {
		ch, err := rabbit.Conn.Channel()
		if err != nil {
			return 0, err
		}
		tm.depthChannel = ch
	}

	q, err := rabbit.DeclareQueue(tm.depthChannel, tm.config.QueueName)
	if err != nil {
		return 0, err
	}
	return q.Messages, nil
}

// handleShutdown cancels every worker with the manager's cancellation cause
func (tm *TopicManager) handleShutdown() {
	<-tm.ctx.Done()
	cause := context.Cause(tm.ctx)

	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	for _, w := range tm.workers {
		w.cancel(cause)
	}
	if tm.depthChannel != nil {
		tm.depthChannel.Close()
	}
}
