package sentry

import (
	"fmt"
	"time"

	"lolstreamsearch/lib/env"

	"github.com/getsentry/sentry-go"
)

// Init initializes Sentry from SENTRY_DSN; returns false when no DSN is configured
func Init(appName string, debug bool) bool {
	dsn := env.SentryDSN
	if dsn == "" {
		return false
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env.Environment,
		Release:          env.Release,
		Debug:            debug,
		AttachStacktrace: true,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if event.Tags == nil {
				event.Tags = make(map[string]string)
			}
			event.Tags["app"] = appName
			return event
		},
	}); err != nil {
		panic(err)
	}

	return true
}

func isInitialized() bool {
	hub := sentry.CurrentHub()
	return hub != nil && hub.Client() != nil
}

// Recover recovers from panics and sends them to Sentry
func Recover() {
	if err := recover(); err != nil {
		if isInitialized() {
			hub := sentry.CurrentHub()
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetLevel(sentry.LevelFatal)
				scope.SetTag("panic", "true")
				if e, ok := err.(error); ok {
					hub.CaptureException(e)
				} else {
					hub.CaptureMessage(fmt.Sprintf("panic: %v", err))
				}
			})
			sentry.Flush(2 * time.Second)
		}
		panic(err) // Re-panic after capturing
	}
}

// CaptureError captures an error to Sentry with the log key as a tag and the fields as extras
func CaptureError(level sentry.Level, logKey string, err error, fields map[string]any) {
	if !isInitialized() {
		return
	}

	sentry.CurrentHub().WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		scope.SetTag("log_key", logKey)
		for k, v := range fields {
			scope.SetExtra(k, v)
		}

		sentry.CurrentHub().CaptureException(err)
	})
}

// Flush ensures all pending events are sent before program exits
func Flush() {
	if isInitialized() {
		sentry.Flush(2 * time.Second)
	}
}
