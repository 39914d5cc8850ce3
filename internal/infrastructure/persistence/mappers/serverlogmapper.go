package mappers

import (
	"encoding/json"

	"gorm.io/datatypes"

	"warden/internal/domain/agent"
	"warden/internal/infrastructure/persistence/models"
)

type ServerLogMapper struct{}

func NewServerLogMapper() ServerLogMapper {
	return ServerLogMapper{}
}

// ToEntity fills blank level, type and title with the event defaults.
func (ServerLogMapper) ToEntity(m *models.ServerLogModel) *agent.LogEvent {
	if m == nil {
		return nil
	}
	e := &agent.LogEvent{
		ID:      m.EventID,
		Time:    m.LoggedAt,
		Level:   m.Level,
		Type:    m.Type,
		Title:   m.Title,
		Message: m.Message,
	}
	if len(m.Meta) > 0 && string(m.Meta) != "null" {
		e.Meta = json.RawMessage(m.Meta)
	}
	e.ApplyDefaults()
	return e
}

func (ServerLogMapper) ToModel(licenseKey string, e *agent.LogEvent) *models.ServerLogModel {
	m := &models.ServerLogModel{
		EventID:    e.ID,
		LicenseKey: licenseKey,
		LoggedAt:   e.Time,
		Level:      e.Level,
		Type:       e.Type,
		Title:      e.Title,
		Message:    e.Message,
	}
	if len(e.Meta) > 0 {
		m.Meta = datatypes.JSON(e.Meta)
	}
	return m
}
