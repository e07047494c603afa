package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ShaftGear/internal/validate"
)

const envPrefix = "SHAFTGEAR"

var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.tls_cert":         "",
	"server.tls_key":          "",
	"server.shutdown_timeout": 15 * time.Second,
	"server.read_timeout":     15 * time.Second,
	"database.url":            "",
	"database.migrate":        true,
	"auth.jwt_secret":         "",
	"auth.rate_limit":         5.0,
	"auth.rate_burst":         20,
	"auth.secure_cookie":      false,
	"materials.overlay_file":  "",
}

// Load reads an optional .env file, then SHAFTGEAR_* environment variables
// (SHAFTGEAR_SERVER_PORT, SHAFTGEAR_AUTH_JWT_SECRET, ...), and validates the
// result. envFiles default to ".env"; missing files are skipped.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validate.New(nil).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
