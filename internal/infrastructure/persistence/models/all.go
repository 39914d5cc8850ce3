package models

// All lists every model managed by AutoMigrate, parents before children.
func All() []any {
	return []any{
		&LicenseModel{},
		&CustomerModel{},
		&PanelAdminModel{},
		&BanModel{},
		&BanIdentifierModel{},
		&ServerStatusModel{},
		&ServerLogModel{},
		&DetectionSettingsModel{},
	}
}
