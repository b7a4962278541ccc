// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/x509-trust-verifier/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// This interface supports both human-readable CLI output and structured
// JSON logging for pipelines that consume verification results.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// Warner is implemented by loggers that distinguish warnings from
// informational messages.
type Warner interface {
	Warnf(format string, v ...any)
}

// Warnf logs a warning through l, using its Warnf method when it has one.
func Warnf(l Logger, format string, v ...any) {
	if l == nil {
		return
	}
	if w, ok := l.(Warner); ok {
		w.Warnf(format, v...)
		return
	}
	l.Printf("warning: "+format, v...)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Warnf prints a message prefixed with "warning: ".
func (c *CLILogger) Warnf(format string, v ...any) { c.logger.Printf("warning: "+format, v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with one JSON object per line:
//
//	{"level":"info","message":"..."}
//
// It is meant for running the verifier inside pipelines that collect
// structured logs. JSONLogger is safe for concurrent use by multiple
// goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewJSONLogger creates a new JSON logger writing to writer.
// A nil writer discards output. When silent is true nothing is written.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// write encodes one entry through a pooled buffer.
func (j *JSONLogger) write(level, msg string) {
	if j.silent {
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// Encoder appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry{Level: level, Message: msg}); err != nil {
		return
	}

	j.mu.Lock()
	_, _ = buf.WriteTo(j.writer)
	j.mu.Unlock()
}

// Printf formats and logs an info level entry.
func (j *JSONLogger) Printf(format string, v ...any) { j.write("info", fmt.Sprintf(format, v...)) }

// Println logs an info level entry.
func (j *JSONLogger) Println(v ...any) { j.write("info", fmt.Sprint(v...)) }

// Warnf formats and logs a warn level entry.
func (j *JSONLogger) Warnf(format string, v ...any) { j.write("warn", fmt.Sprintf(format, v...)) }

// SetOutput sets the output destination for the JSON logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}
