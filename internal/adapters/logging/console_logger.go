// Package logging writes handler logs to a terminal or a file
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/config"
)

// Severity orders the levels handlers log at
type Severity int

const (
	Debug Severity = iota
	Info
	Warn
	Error
)

// ParseSeverity accepts the level names used by handlers and the config file
// in any case. Unknown names fall back to Info.
func ParseSeverity(level string) Severity {
	switch strings.ToLower(level) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (s Severity) String() string {
	return [...]string{"debug", "info", "warn", "error"}[s]
}

// ConsoleLogger implements common.ContainerLogger. Text lines look like
//
//	2031-04-02T12:00:00Z [info] Building installed kind=bacteria_farm owner=ship
//
// and json lines carry the same fields as one object per line.
type ConsoleLogger struct {
	out   io.Writer
	min   Severity
	json  bool
	clock shared.Clock
	mu    sync.Mutex
}

// NewConsoleLogger creates a logger writing to out
func NewConsoleLogger(out io.Writer, level, format string, clock shared.Clock) *ConsoleLogger {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ConsoleLogger{
		out:   out,
		min:   ParseSeverity(level),
		json:  format == "json",
		clock: clock,
	}
}

// NewFromConfig opens the configured output. The returned closer releases a
// log file and is a no-op for stdout and stderr.
func NewFromConfig(cfg config.LoggingConfig) (*ConsoleLogger, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Output {
	case "stdout":
		return NewConsoleLogger(os.Stdout, cfg.Level, cfg.Format, nil), noop, nil
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return NewConsoleLogger(f, cfg.Level, cfg.Format, nil), f.Close, nil
	default:
		return NewConsoleLogger(os.Stderr, cfg.Level, cfg.Format, nil), noop, nil
	}
}

// SetLevel changes the minimum severity written
func (l *ConsoleLogger) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.min = ParseSeverity(level)
}

// Log writes one entry when level is at or above the configured minimum
func (l *ConsoleLogger) Log(level, message string, metadata map[string]interface{}) {
	severity := ParseSeverity(level)

	l.mu.Lock()
	defer l.mu.Unlock()
	if severity < l.min {
		return
	}

	timestamp := l.clock.Now().UTC().Format(time.RFC3339)
	if l.json {
		entry := make(map[string]interface{}, len(metadata)+3)
		for k, v := range metadata {
			entry[k] = v
		}
		entry["time"] = timestamp
		entry["level"] = severity.String()
		entry["msg"] = message
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, "%s [error] failed to encode log entry: %v\n", timestamp, err)
			return
		}
		fmt.Fprintln(l.out, string(data))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", timestamp, severity, message)
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	fmt.Fprintln(l.out, b.String())
}
