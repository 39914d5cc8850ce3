// Package serverlog ingests agent log events into a bounded in-memory
// buffer and the server_logs table.
package serverlog

import (
	"context"
	"encoding/json"
	"strings"

	"warden/internal/domain/agent"
	"warden/internal/infrastructure/memstore"
	"warden/internal/infrastructure/mirror"
	"warden/internal/shared/biztime"
	"warden/internal/shared/errors"
	"warden/internal/shared/id"
	"warden/internal/shared/logger"
)

const (
	// BufferCapacity is how many events each tenant buffer keeps.
	BufferCapacity = 300

	DefaultReadLimit = 100
	MaxReadLimit     = 500
)

// IngestCommand is one event as posted by an agent.
type IngestCommand struct {
	LicenseKey string
	Level      string
	Type       string
	Title      string
	Message    string
	Meta       json.RawMessage
}

// Service buffers the newest events per tenant and mirrors every event to
// the store. Reads prefer the store and fall back to the buffer.
type Service struct {
	buffers *memstore.Partitioned[[]*agent.LogEvent]
	repo    agent.LogRepository
	writer  *mirror.Writer
	now     biztime.Clock
	logger  logger.Interface
}

func NewService(repo agent.LogRepository, writer *mirror.Writer, logger logger.Interface) *Service {
	return &Service{
		buffers: memstore.NewPartitioned[[]*agent.LogEvent](nil),
		repo:    repo,
		writer:  writer,
		now:     biztime.NowUTC,
		logger:  logger,
	}
}

// SetClock replaces the time source.
func (s *Service) SetClock(c biztime.Clock) {
	s.now = c
}

// Ingest stamps the event, puts it at the head of the tenant buffer and
// schedules the store insert.
func (s *Service) Ingest(ctx context.Context, cmd IngestCommand) (*agent.LogEvent, error) {
	key := strings.TrimSpace(cmd.LicenseKey)
	if key == "" || strings.TrimSpace(cmd.Message) == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "license_key and message are required")
	}

	meta := cmd.Meta
	if len(meta) == 0 || string(meta) == "null" {
		meta = nil
	}
	event := &agent.LogEvent{
		ID:      id.NewUUID(),
		Time:    s.now(),
		Level:   cmd.Level,
		Type:    cmd.Type,
		Title:   cmd.Title,
		Message: cmd.Message,
		Meta:    meta,
	}
	event.ApplyDefaults()

	s.buffers.Update(key, func(events *[]*agent.LogEvent) {
		next := make([]*agent.LogEvent, 0, min(len(*events)+1, BufferCapacity))
		next = append(next, event)
		next = append(next, *events...)
		if len(next) > BufferCapacity {
			next = next[:BufferCapacity]
		}
		*events = next
	})

	stored := *event
	s.writer.Write(ctx, "server-log", func(ctx context.Context) error {
		return s.repo.Insert(ctx, key, &stored)
	})

	return event, nil
}

// ClampLimit maps a requested page size onto [1, MaxReadLimit]. Zero or
// negative means the default.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultReadLimit
	case limit > MaxReadLimit:
		return MaxReadLimit
	default:
		return limit
	}
}

// Read returns up to limit events newest first. A successful store read is
// authoritative even when empty; the buffer is only used when the store
// fails.
func (s *Service) Read(ctx context.Context, key string, limit int) ([]*agent.LogEvent, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.NewValidationError(errors.CodeMissingLicense, "license is required")
	}
	limit = ClampLimit(limit)

	events, err := s.repo.ListRecent(ctx, key, limit)
	if err == nil {
		if events == nil {
			events = []*agent.LogEvent{}
		}
		return events, nil
	}

	s.logger.Warnw("server log store unavailable, serving buffer",
		"license_key", key,
		"error", err,
	)
	return s.Buffered(key, limit), nil
}

// Buffered returns up to limit buffered events newest first.
func (s *Service) Buffered(key string, limit int) []*agent.LogEvent {
	out := []*agent.LogEvent{}
	s.buffers.View(strings.TrimSpace(key), func(events *[]*agent.LogEvent) {
		n := min(limit, len(*events))
		out = append(out, (*events)[:n]...)
	})
	return out
}
