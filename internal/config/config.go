// Package config loads server settings from the environment.
package config

import "time"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Materials MaterialsConfig `mapstructure:"materials"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	TLSCert         string        `mapstructure:"tls_cert" validate:"required_with=TLSKey"`
	TLSKey          string        `mapstructure:"tls_key" validate:"required_with=TLSCert"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
}

// DatabaseConfig is optional. With no URL the server keeps users and history
// in memory.
type DatabaseConfig struct {
	URL     string `mapstructure:"url" validate:"omitempty,url"`
	Migrate bool   `mapstructure:"migrate"`
}

type AuthConfig struct {
	JWTSecret    string  `mapstructure:"jwt_secret" validate:"required,min=16"`
	RateLimit    float64 `mapstructure:"rate_limit" validate:"gt=0"`
	RateBurst    int     `mapstructure:"rate_burst" validate:"gt=0"`
	SecureCookie bool    `mapstructure:"secure_cookie"`
}

type MaterialsConfig struct {
	// OverlayFile is an ini file of extra or replacement materials.
	OverlayFile string `mapstructure:"overlay_file"`
}

// TLS reports whether the server should serve HTTPS.
func (c ServerConfig) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
