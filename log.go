package space

import (
	"bufio"
	"io"
	"log/slog"
	"sync"
)

var (
	_ Logger  = &SlogLogger{}
	_ Flusher = &SlogLogger{}
	_ Logger  = NopLogger{}
)

// SlogLogger adapts a slog.Logger writing into a buffer that the space flushes
// at the end of every step.
type SlogLogger struct {
	logger *slog.Logger
	mu     sync.Mutex
	buf    *bufio.Writer
}

func NewSlogLogger(w io.Writer, level slog.Level) *SlogLogger {
	l := &SlogLogger{buf: bufio.NewWriter(w)}
	l.logger = slog.New(slog.NewTextHandler(lockedWriter{l}, &slog.HandlerOptions{Level: level}))
	return l
}

func (l *SlogLogger) Info(msg string, keyValues ...any) {
	l.logger.Info(msg, keyValues...)
}

func (l *SlogLogger) Error(msg string, keyValues ...any) {
	l.logger.Error(msg, keyValues...)
}

func (l *SlogLogger) Debug(msg string, keyValues ...any) {
	l.logger.Debug(msg, keyValues...)
}

func (l *SlogLogger) Warn(msg string, keyValues ...any) {
	l.logger.Warn(msg, keyValues...)
}

func (l *SlogLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Flush()
}

type lockedWriter struct {
	l *SlogLogger
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	return w.l.buf.Write(p)
}

type NopLogger struct{}

func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Warn(string, ...any)  {}

// scopedLogger prefixes every record with fixed key-values.
type scopedLogger struct {
	Logger
	keyValues []any
}

func withValues(l Logger, keyValues ...any) scopedLogger {
	return scopedLogger{Logger: l, keyValues: keyValues}
}

func (s scopedLogger) Info(msg string, keyValues ...any) {
	s.Logger.Info(msg, append(s.keyValues[:len(s.keyValues):len(s.keyValues)], keyValues...)...)
}

func (s scopedLogger) Error(msg string, keyValues ...any) {
	s.Logger.Error(msg, append(s.keyValues[:len(s.keyValues):len(s.keyValues)], keyValues...)...)
}

func (s scopedLogger) Debug(msg string, keyValues ...any) {
	s.Logger.Debug(msg, append(s.keyValues[:len(s.keyValues):len(s.keyValues)], keyValues...)...)
}

func (s scopedLogger) Warn(msg string, keyValues ...any) {
	s.Logger.Warn(msg, append(s.keyValues[:len(s.keyValues):len(s.keyValues)], keyValues...)...)
}

func (s scopedLogger) Flush() error {
	if f, ok := s.Logger.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
