package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Logger is the leveled logger used across the service.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	logger *log.Logger
	level  string
	format string
}

// New creates a Logger filtering below the given level. Format is "text"
// (default) or "json" for one JSON object per line.
func New(level, format string) Logger {
	flags := log.LstdFlags
	if format == "json" {
		flags = 0 // timestamp lives inside the JSON record
	}
	return &implLogger{
		logger: log.New(os.Stdout, "", flags),
		level:  strings.ToLower(level),
		format: strings.ToLower(format),
	}
}

func (l *implLogger) shouldLog(level string) bool {
	current, ok := levels[l.level]
	if !ok {
		current = levels["info"]
	}
	target, ok := levels[level]
	if !ok {
		return true
	}
	return target >= current
}

func (l *implLogger) write(level, msg string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}
	text := fmt.Sprintf(msg, args...)
	if l.format == "json" {
		record, err := json.Marshal(map[string]string{
			"time":  time.Now().Format(time.RFC3339),
			"level": level,
			"msg":   text,
		})
		if err == nil {
			l.logger.Print(string(record))
			return
		}
	}
	l.logger.Printf("[%s] %s", strings.ToUpper(level), text)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.write("debug", msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.write("info", msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.write("warn", msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.write("error", msg, args...)
}
