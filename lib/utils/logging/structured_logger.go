package logging

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"lolstreamsearch/lib/utils/sentry"
)

// StructuredLogger writes one logfmt line per event: timestamp, level, prefix, key, then sorted fields
type StructuredLogger struct {
	prefix string
}

// NewLogger creates a logger whose lines are tagged with prefix
func NewLogger(prefix string) *StructuredLogger {
	return &StructuredLogger{prefix: prefix}
}

// severity ties a printed label to the configured level that enables it
type severity struct {
	label   string
	enabled string
	stderr  bool
}

var (
	debugSeverity = severity{label: DEBUG, enabled: Debug}
	infoSeverity  = severity{label: INFO, enabled: Info}
	warnSeverity  = severity{label: WARN, enabled: Warn, stderr: true}
	errorSeverity = severity{label: ERROR, enabled: Error, stderr: true}
	fatalSeverity = severity{label: FATAL, enabled: Error, stderr: true}
)

func (s severity) writer() io.Writer {
	if s.stderr {
		return stderrWriter
	}
	return stdoutWriter
}

// formatLogfmtKey drops a leading $
func formatLogfmtKey(k string) string {
	return strings.TrimPrefix(k, "$")
}

// formatLogfmtValue renders v, quoting it when it holds whitespace, control chars, '=', '"' or '\'
func formatLogfmtValue(v any) string {
	s := stringify(v)
	if !strings.ContainsFunc(s, needsQuote) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuote(r rune) bool {
	return r <= ' ' || r == '=' || r == '"' || r == '\\'
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case error:
		return val.Error()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	case time.Duration:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

func (l *StructuredLogger) emit(s severity, key string, fields map[string]any) {
	if !ShouldLog(s.enabled) {
		return
	}

	var line strings.Builder
	line.WriteString(time.Now().UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(&line, " [%s][%s] -- %s", s.label, l.prefix, key)
	if len(fields) > 0 {
		line.WriteString(" >>")
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			line.WriteByte(' ')
			line.WriteString(formatLogfmtKey(k))
			line.WriteByte('=')
			line.WriteString(formatLogfmtValue(fields[k]))
		}
	}
	line.WriteByte('\n')
	io.WriteString(s.writer(), line.String())
}

// withError returns a copy of fields carrying err under "error"; the caller's map is left untouched
func withError(fields map[string]any, err error) map[string]any {
	out := maps.Clone(fields)
	if out == nil {
		out = make(map[string]any, 1)
	}
	out["error"] = fmt.Sprint(err)
	return out
}

func (l *StructuredLogger) Debug(key string, fields map[string]any) {
	l.emit(debugSeverity, key, fields)
}

func (l *StructuredLogger) Info(key string, fields map[string]any) {
	l.emit(infoSeverity, key, fields)
}

func (l *StructuredLogger) Warn(key string, err error, fields map[string]any) {
	l.emit(warnSeverity, key, withError(fields, err))
}

// Error logs and reports err to Sentry
func (l *StructuredLogger) Error(key string, err error, fields map[string]any) {
	fields = withError(fields, err)
	l.emit(errorSeverity, key, fields)
	if err != nil {
		sentry.CaptureError(Error, key, err, fields)
	}
}

// Fatal logs, reports err to Sentry, flushes and exits with code 1
func (l *StructuredLogger) Fatal(key string, err error, fields map[string]any) {
	fields = withError(fields, err)
	l.emit(fatalSeverity, key, fields)
	if err != nil {
		sentry.CaptureError(Fatal, key, err, fields)
	}
	sentry.Flush()
	os.Exit(1)
}

// InitSentry enables Sentry under the logger's prefix when SENTRY_DSN is set.
// Defer flush first and recover second so a panic is captured before the flush runs:
//
//	flushSentry, recoverSentry := logger.InitSentry()
//	defer flushSentry()
//	defer recoverSentry()
func (l *StructuredLogger) InitSentry() (flush func(), recoverPanic func()) {
	fields := map[string]any{"app": l.prefix}
	enabled := sentry.Init(l.prefix, IsVerbose())
	if enabled {
		l.Debug("SENTRY_INITIALIZED", fields)
	} else {
		l.Debug("SENTRY_NOT_INITIALIZED", fields)
	}

	flush = func() {
		if !enabled {
			return
		}
		l.Debug("FLUSHING_SENTRY", fields)
		sentry.Flush()
	}
	return flush, sentry.Recover
}
