package singleton

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitAsyncRetriesUntilConnected(t *testing.T) {
	var calls atomic.Int32
	done := InitAsync("TEST_SERVICE", 3, func() error {
		if calls.Add(1) == 1 {
			return errors.New("connection refused")
		}
		return nil
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("initialization did not complete")
	}
	assert.Equal(t, int32(2), calls.Load())
}
