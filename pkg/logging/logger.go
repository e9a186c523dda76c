// Package logging builds the hclog loggers shared by the capture tools.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

const timeFormat = "2006-01-02T15:04:05Z" // UTC ISO format

// NewLogger creates an hclog logger with the toolkit's standard settings:
// UTC timestamps, JSON output when RGB0_JSON_LOG=1, and a 💡 prefix on
// plain-text lines. A nil output goes to the writer Output resolves.
func NewLogger(name, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = Output()
	}

	jsonFormat := JSONFormat()
	if !jsonFormat {
		output = NewPrefixWriter("💡 ", output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: timeFormat,
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// Level resolves the log level: the explicit value wins, then
// RGB0_LOG_LEVEL, then "warn".
func Level(explicit string) string {
	return LevelOr(explicit, "warn")
}

// LevelOr is Level with a caller-chosen final fallback.
func LevelOr(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("RGB0_LOG_LEVEL"); env != "" {
		return env
	}
	return fallback
}

// JSONFormat reports whether RGB0_JSON_LOG asks for JSON log lines.
func JSONFormat() bool {
	return os.Getenv("RGB0_JSON_LOG") == "1"
}

// Output returns the destination for log lines: the file named by
// RGB0_LOG_PATH when set and creatable, stderr otherwise.
func Output() io.Writer {
	if logPath := os.Getenv("RGB0_LOG_PATH"); logPath != "" {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			return file
		}
	}
	return os.Stderr
}
