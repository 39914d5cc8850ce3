package constants

const (
	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContentTypeJSON = "application/json"

	// Context keys set by the HTTP middleware
	ContextKeyIdentity     = "identity"
	ContextKeyLicenseKey   = "license_key"
	ContextKeyOperator     = "operator"
	ContextKeyOperatorRole = "operator_role"

	// Database table names
	TableLicenses          = "licenses"
	TableCustomers         = "customers"
	TablePanelAdmins       = "panel_admins"
	TableBans              = "bans"
	TableBanIdentifiers    = "ban_identifiers"
	TableServerStatus      = "server_status"
	TableServerLogs        = "server_logs"
	TableDetectionSettings = "detection_settings"

	ErrMsgInternalServerError = "Internal server error occurred"
)
