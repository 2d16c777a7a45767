package processing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lolstreamsearch/lib/utils/logging"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAcknowledger implements amqp.Acknowledger
type recordingAcknowledger struct {
	mu       sync.Mutex
	acked    []uint64
	nacked   []uint64
	requeued []uint64
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if requeue {
		a.requeued = append(a.requeued, tag)
	} else {
		a.nacked = append(a.nacked, tag)
	}
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

type testMessage struct {
	VideoURL string `json:"videoUrl"`
}

func TestWorkerAcksSuccessAndNacksFailure(t *testing.T) {
	ack := &recordingAcknowledger{}
	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte(`{"videoUrl":"https://youtu.be/Kryc40r9wOg"}`)}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte(`not json`)}
	close(deliveries)

	var seen []string
	processor := func(worker WorkerInterface, message amqp.Delivery) error {
		msg, err := ParseJSON[testMessage](worker, message.Body)
		if err != nil {
			return err
		}
		seen = append(seen, msg.VideoURL)
		return nil
	}

	w := newWorker(0, "video_enrich", logging.NewLogger("TEST"), deliveries, processor, nil)
	w.Run()

	assert.Equal(t, []string{"https://youtu.be/Kryc40r9wOg"}, seen)
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.nacked)
}

func TestWorkerStopsOnScaleIn(t *testing.T) {
	deliveries := make(chan amqp.Delivery)
	closed := false
	w := newWorker(3, "video_enrich", logging.NewLogger("TEST"), deliveries, func(WorkerInterface, amqp.Delivery) error {
		return errors.New("unreachable")
	}, func() error {
		closed = true
		return nil
	})

	go w.Run()
	w.ScaleIn()

	finished := make(chan struct{})
	go func() {
		w.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	require.Error(t, w.Context().Err())
	assert.ErrorIs(t, context.Cause(w.Context()), errScaledIn)
	assert.True(t, closed)
}

func TestWorkerRequeuesMessageInterruptedByScaleIn(t *testing.T) {
	ack := &recordingAcknowledger{}
	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: []byte(`{"videoUrl":"https://youtu.be/Kryc40r9wOg"}`)}

	started := make(chan struct{})
	processor := func(worker WorkerInterface, message amqp.Delivery) error {
		close(started)
		// Stands in for an upstream call that honours the worker context
		<-worker.Context().Done()
		return worker.Context().Err()
	}

	w := newWorker(1, "video_enrich", logging.NewLogger("TEST"), deliveries, processor, nil)
	go w.Run()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("message was not picked up")
	}
	w.ScaleIn()

	finished := make(chan struct{})
	go func() {
		w.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	ack.mu.Lock()
	defer ack.mu.Unlock()
	assert.Empty(t, ack.acked)
	assert.Empty(t, ack.nacked)
	assert.Equal(t, []uint64{7}, ack.requeued)
}
