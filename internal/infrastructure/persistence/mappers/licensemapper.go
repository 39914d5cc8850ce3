package mappers

import (
	"warden/internal/domain/license"
	"warden/internal/infrastructure/persistence/models"
)

type LicenseMapper struct{}

func NewLicenseMapper() LicenseMapper {
	return LicenseMapper{}
}

func (LicenseMapper) ToEntity(m *models.LicenseModel) *license.License {
	if m == nil {
		return nil
	}
	return &license.License{
		LicenseKey: m.LicenseKey,
		Status:     m.Status,
		ExpiresAt:  m.ExpiresAt,
		HWID:       m.HWID,
		LastSeen:   m.LastSeen,
		CreatedAt:  m.CreatedAt,
	}
}

func (LicenseMapper) ToModel(l *license.License) *models.LicenseModel {
	return &models.LicenseModel{
		LicenseKey: l.LicenseKey,
		Status:     l.Status,
		ExpiresAt:  l.ExpiresAt,
		HWID:       l.HWID,
		LastSeen:   l.LastSeen,
		CreatedAt:  l.CreatedAt,
	}
}

func (m LicenseMapper) ToEntities(list []*models.LicenseModel) []*license.License {
	out := make([]*license.License, 0, len(list))
	for _, item := range list {
		out = append(out, m.ToEntity(item))
	}
	return out
}
