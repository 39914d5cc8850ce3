package mappers

import (
	"warden/internal/domain/ban"
	"warden/internal/infrastructure/persistence/models"
)

type BanMapper struct{}

func NewBanMapper() BanMapper {
	return BanMapper{}
}

func (BanMapper) ToEntity(m *models.BanModel) *ban.Ban {
	if m == nil {
		return nil
	}
	ids := make([]string, 0, len(m.Identifiers))
	for _, ident := range m.Identifiers {
		ids = append(ids, ident.Identifier)
	}
	return &ban.Ban{
		BanID:       m.BanID,
		LicenseKey:  m.LicenseKey,
		PlayerID:    m.PlayerID,
		Reason:      m.Reason,
		Duration:    m.Duration,
		CreatedAt:   m.CreatedAt,
		ExpiresAt:   m.ExpiresAt,
		BannedBy:    m.BannedBy,
		EvidenceURL: m.EvidenceURL,
		Identifiers: ids,
	}
}

// ToModel includes one identifier row per entry of b.Identifiers.
func (BanMapper) ToModel(b *ban.Ban) *models.BanModel {
	idents := make([]models.BanIdentifierModel, 0, len(b.Identifiers))
	for _, v := range b.Identifiers {
		idents = append(idents, models.BanIdentifierModel{
			BanID:      b.BanID,
			LicenseKey: b.LicenseKey,
			Identifier: v,
		})
	}
	return &models.BanModel{
		BanID:       b.BanID,
		LicenseKey:  b.LicenseKey,
		PlayerID:    b.PlayerID,
		Reason:      b.Reason,
		Duration:    b.Duration,
		CreatedAt:   b.CreatedAt,
		ExpiresAt:   b.ExpiresAt,
		BannedBy:    b.BannedBy,
		EvidenceURL: b.EvidenceURL,
		Identifiers: idents,
	}
}

func (m BanMapper) ToEntities(list []*models.BanModel) []*ban.Ban {
	out := make([]*ban.Ban, 0, len(list))
	for _, item := range list {
		out = append(out, m.ToEntity(item))
	}
	return out
}
