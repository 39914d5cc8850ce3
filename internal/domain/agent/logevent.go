package agent

import (
	"encoding/json"
	"time"
)

const (
	DefaultLogLevel = "info"
	DefaultLogType  = "log"
	DefaultLogTitle = "Server"
)

// LogEvent is one agent log line. Meta is opaque and may be nil.
type LogEvent struct {
	ID      string          `json:"id"`
	Time    time.Time       `json:"time"`
	Level   string          `json:"level"`
	Type    string          `json:"type"`
	Title   string          `json:"title"`
	Message string          `json:"message"`
	Meta    json.RawMessage `json:"meta"`
}

// ApplyDefaults fills blank level, type and title.
func (e *LogEvent) ApplyDefaults() {
	if e.Level == "" {
		e.Level = DefaultLogLevel
	}
	if e.Type == "" {
		e.Type = DefaultLogType
	}
	if e.Title == "" {
		e.Title = DefaultLogTitle
	}
}
