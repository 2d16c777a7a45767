package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	prevOut, prevErr, prevLevel := stdoutWriter, stderrWriter, logLevel
	stdoutWriter, stderrWriter = &stdout, &stderr
	t.Cleanup(func() {
		stdoutWriter, stderrWriter = prevOut, prevErr
		SetLogLevel(prevLevel)
	})
	return &stdout, &stderr
}

func TestInfoWritesSortedLogfmt(t *testing.T) {
	stdout, stderr := captureOutput(t)
	SetLogLevel(Info)

	NewLogger("API").Info("VIDEO_STORED", map[string]any{
		VIDEO_ID: "Kryc40r9wOg",
		CHAMPION: "K'Sante",
		COUNT:    3,
		URL:      "https://youtu.be/Kryc40r9wOg?t=1737",
	})

	line := stdout.String()
	assert.Contains(t, line, "[INFO][API] -- VIDEO_STORED >> champion=K'Sante count=3 url=https://youtu.be/Kryc40r9wOg?t=1737 video_id=Kryc40r9wOg")
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Empty(t, stderr.String())
}

func TestWarnGoesToStderrWithError(t *testing.T) {
	stdout, stderr := captureOutput(t)
	SetLogLevel(Info)

	NewLogger("RIOT_CLIENT").Warn("API_KEY_RELOAD_FAILED", errors.New("key file is empty"), map[string]any{
		PATH: "/run/secrets/riot key",
	})

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `API_KEY_RELOAD_FAILED >> error="key file is empty" path="/run/secrets/riot key"`)
}

func TestLevelFiltering(t *testing.T) {
	stdout, stderr := captureOutput(t)
	SetLogLevel(Warn)

	logger := NewLogger("WORKER")
	logger.Debug("HIDDEN_DEBUG", nil)
	logger.Info("HIDDEN_INFO", nil)
	logger.Warn("SHOWN_WARN", nil, nil)

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `SHOWN_WARN >> error=<nil>`)
}

func TestEventWithoutFields(t *testing.T) {
	stdout, _ := captureOutput(t)
	SetLogLevel(Debug)

	NewLogger("TOOLS").Debug("SERVICE_STOPPED", nil)
	assert.True(t, strings.HasSuffix(stdout.String(), "-- SERVICE_STOPPED\n"))
}

func TestFormatLogfmtValueQuoting(t *testing.T) {
	assert.Equal(t, "plain", formatLogfmtValue("plain"))
	assert.Equal(t, `"two words"`, formatLogfmtValue("two words"))
	assert.Equal(t, `"a=b"`, formatLogfmtValue("a=b"))
	assert.Equal(t, `"say \"hi\""`, formatLogfmtValue(`say "hi"`))
	assert.Equal(t, "1.5", formatLogfmtValue(1.5))
	assert.Equal(t, "true", formatLogfmtValue(true))
	assert.Equal(t, "user", formatLogfmtKey("$user"))
}

func TestErrorLeavesCallerFieldsUntouched(t *testing.T) {
	stdout, stderr := captureOutput(t)
	SetLogLevel(Info)

	fields := map[string]any{STAGE: "identity", DURATION: 1500 * time.Millisecond}
	NewLogger("RESOLVER").Error("RESOLUTION_FAILED", errors.New("riot id not found"), fields)

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `[ERROR][RESOLVER] -- RESOLUTION_FAILED >> duration=1.5s error="riot id not found" stage=identity`)
	assert.NotContains(t, fields, "error")
}

func TestFormatLogfmtValueErrors(t *testing.T) {
	assert.Equal(t, `"context canceled"`, formatLogfmtValue(context.Canceled))
	assert.Equal(t, "<nil>", formatLogfmtValue(nil))
}
