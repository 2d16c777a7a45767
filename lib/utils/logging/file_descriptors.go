package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lolstreamsearch/lib/env"
)

var (
	stdoutWriter io.Writer = os.Stdout
	stderrWriter io.Writer = os.Stderr
)

func init() {
	if w, err := teeToFile(os.Stdout, env.StdoutPath); err != nil {
		panic(fmt.Errorf("failed to open stdout file: %v", err))
	} else {
		stdoutWriter = w
	}

	if w, err := teeToFile(os.Stderr, env.StderrPath); err != nil {
		panic(fmt.Errorf("failed to open stderr file: %v", err))
	} else {
		stderrWriter = w
	}
}

// teeToFile writes to both the stream and the file at path, or only the stream when path is empty
func teeToFile(stream *os.File, path string) (io.Writer, error) {
	if path == "" {
		return stream, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(stream, file), nil
}

// SetOutput redirects both log streams, used by tests to capture output
func SetOutput(stdout, stderr io.Writer) {
	stdoutWriter = stdout
	stderrWriter = stderr
}
