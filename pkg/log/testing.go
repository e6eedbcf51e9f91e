package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// TestLogger is a Logger implementation that captures JSON records in a
// buffer so tests can assert on emitted messages and fields.
type TestLogger struct {
	mu    sync.Mutex
	buf   *bytes.Buffer
	inner Logger
}

// NewTestLogger creates a TestLogger and the buffer it writes to.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &TestLogger{buf: buf, inner: NewLogger(buf, level)}, buf
}

func (t *TestLogger) Debug(msg string, fields ...any) {
	t.log(func(l Logger) { l.Debug(msg, fields...) })
}
func (t *TestLogger) Info(msg string, fields ...any) {
	t.log(func(l Logger) { l.Info(msg, fields...) })
}
func (t *TestLogger) Warn(msg string, fields ...any) {
	t.log(func(l Logger) { l.Warn(msg, fields...) })
}
func (t *TestLogger) Error(msg string, fields ...any) {
	t.log(func(l Logger) { l.Error(msg, fields...) })
}

func (t *TestLogger) log(fn func(Logger)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.inner)
}

// With returns the same TestLogger with additional context fields.
func (t *TestLogger) With(fields ...any) Logger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &TestLogger{buf: t.buf, inner: t.inner.With(fields...)}
}

// Enabled defers to the wrapped logger.
func (t *TestLogger) Enabled(ctx context.Context, level Level) bool {
	return t.inner.Enabled(ctx, level)
}

// Entries parses the captured output into one map per record.
func (t *TestLogger) Entries() ([]map[string]interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var entries []map[string]interface{}
	for _, line := range strings.Split(t.buf.String(), "\n") {
		if strings.TrimSpace(line) == "" {
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

// ContainsMessage reports whether any captured record has the given message.
func (t *TestLogger) ContainsMessage(message string) bool {
	entries, err := t.Entries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if msg, ok := entry["message"].(string); ok && msg == message {
			return true
		}
	}
	return false
}
