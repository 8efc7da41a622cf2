// Package log provides testing utilities for structured logging.

package log

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// TestLogger is a ZerologLogger that writes JSON lines into an in-memory
// buffer so tests can assert on what was logged.
//
//	logger, buffer := log.NewTestLogger(log.LevelDebug)
//	model := linear_model.NewLinearRegression(linear_model.WithLogger(logger))
//	...
//	if !logger.ContainsField(log.StatusKey, "converged") { ... }
type TestLogger struct {
	*ZerologLogger
	buffer *bytes.Buffer
}

// NewTestLogger creates a TestLogger capturing records at or above level.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{
		ZerologLogger: NewZerologLogger(buffer, level),
		buffer:        buffer,
	}, buffer
}

// With implements Logger.With; the derived logger shares the buffer.
func (t *TestLogger) With(fields ...any) Logger {
	return &TestLogger{
		ZerologLogger: t.ZerologLogger.With(fields...).(*ZerologLogger),
		buffer:        t.buffer,
	}
}

// GetLogEntries parses the captured output into one map per record.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage reports whether any record's message contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if msg, ok := entry["message"].(string); ok && strings.Contains(msg, message) {
			return true
		}
	}
	return false
}

// ContainsField reports whether any record has key set to value. Numbers
// decode as float64.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if fieldValue, exists := entry[key]; exists && fieldValue == value {
			return true
		}
	}
	return false
}

// Clear discards all captured output.
func (t *TestLogger) Clear() {
	t.buffer.Reset()
}
