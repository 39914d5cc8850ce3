package mappers

import (
	"warden/internal/domain/account"
	"warden/internal/infrastructure/persistence/models"
)

type AccountMapper struct{}

func NewAccountMapper() AccountMapper {
	return AccountMapper{}
}

func (AccountMapper) CustomerToEntity(m *models.CustomerModel) *account.Customer {
	if m == nil {
		return nil
	}
	return &account.Customer{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		LicenseKey:   m.LicenseKey,
		CreatedAt:    m.CreatedAt,
	}
}

func (AccountMapper) CustomerToModel(c *account.Customer) *models.CustomerModel {
	return &models.CustomerModel{
		ID:           c.ID,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		LicenseKey:   c.LicenseKey,
		CreatedAt:    c.CreatedAt,
	}
}

func (AccountMapper) AdminToEntity(m *models.PanelAdminModel) *account.PanelAdmin {
	if m == nil {
		return nil
	}
	return &account.PanelAdmin{
		ID:           m.ID,
		LicenseKey:   m.LicenseKey,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		TokenHash:    m.TokenHash,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (AccountMapper) AdminToModel(a *account.PanelAdmin) *models.PanelAdminModel {
	return &models.PanelAdminModel{
		ID:           a.ID,
		LicenseKey:   a.LicenseKey,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		TokenHash:    a.TokenHash,
		Active:       a.Active,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
