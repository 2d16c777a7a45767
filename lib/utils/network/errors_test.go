package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want NetworkErrorType
	}{
		{"deadline", context.DeadlineExceeded, ErrorTypeTimeout},
		{"client timeout", errors.New("Client.Timeout exceeded while awaiting headers"), ErrorTypeTimeout},
		{"refused", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), ErrorTypeConnection},
		{"429", &HTTPStatusError{StatusCode: http.StatusTooManyRequests}, ErrorTypeRateLimited},
		{"503 wrapped", fmt.Errorf("get match: %w", &HTTPStatusError{StatusCode: 503}), ErrorTypeServerError},
		{"404", &HTTPStatusError{StatusCode: http.StatusNotFound}, ErrorTypeClientError},
		{"other", errors.New("json: cannot unmarshal"), ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeNetworkError(tt.err).Type)
		})
	}

	assert.Nil(t, CategorizeNetworkError(nil))
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, ShouldRetry(&HTTPStatusError{StatusCode: 502}))
	assert.True(t, ShouldRetry(&HTTPStatusError{StatusCode: 429}))
	assert.True(t, ShouldRetry(context.DeadlineExceeded))
	assert.False(t, ShouldRetry(&HTTPStatusError{StatusCode: 403}))
	assert.False(t, ShouldRetry(errors.New("bad json")))
	assert.False(t, ShouldRetry(nil))
}

func TestShouldLogAsError(t *testing.T) {
	assert.False(t, ShouldLogAsError(nil))
	assert.False(t, ShouldLogAsError(context.DeadlineExceeded))
	assert.True(t, ShouldLogAsError(errors.New("unexpected")))
}
