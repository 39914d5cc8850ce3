package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// LegacyUnban enables DELETE /api/server/ban/:banId, which lifts bans
	// without checking the caller's tenant.
	LegacyUnban bool `mapstructure:"legacy_unban"`
	// LatestAgentVersion is compared against heartbeat versions to flag
	// outdated agents on the dashboard. Empty disables the check.
	LatestAgentVersion string `mapstructure:"latest_agent_version"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver              string `mapstructure:"driver"`
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	Database            string `mapstructure:"database"`
	Path                string `mapstructure:"path"`
	MaxIdleConns        int    `mapstructure:"max_idle_conns"`
	MaxOpenConns        int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime     int    `mapstructure:"conn_max_lifetime"`
	QueryTimeoutSeconds int    `mapstructure:"query_timeout_seconds"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC&clientFoundRows=true",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

// QueryTimeout bounds every store call. Zero or negative falls back to 5s.
func (d *DatabaseConfig) QueryTimeout() time.Duration {
	if d.QueryTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(d.QueryTimeoutSeconds) * time.Second
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LicenseConfig struct {
	SigningSecret string `mapstructure:"signing_secret"`
	KeyPrefix     string `mapstructure:"key_prefix"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

// AuthConfig covers the operator console. Customer and panel admin
// credentials live in the database.
type AuthConfig struct {
	OperatorPasswordHash string    `mapstructure:"operator_password_hash"`
	BcryptCost           int       `mapstructure:"bcrypt_cost"`
	JWT                  JWTConfig `mapstructure:"jwt"`
}

type StorageConfig struct {
	EvidenceDir    string `mapstructure:"evidence_dir"`
	EvidenceBucket string `mapstructure:"evidence_bucket"`
	PublicPath     string `mapstructure:"public_path"`
}

type RetentionConfig struct {
	ServerLogsDays       int `mapstructure:"server_logs_days"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}

type RateLimitConfig struct {
	Requests      int `mapstructure:"requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

func (r *RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.WindowSeconds) * time.Second
}
