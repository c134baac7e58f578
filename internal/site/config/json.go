package config

import (
	"encoding/json"
	"os"

	"github.com/nextclip/attribution/internal/flagx"
	"github.com/nextclip/attribution/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It uses
// timex.Duration so JSON can specify intervals either as strings like
// "720h" or as integer nanoseconds.
type JsonConfig struct {
	EndpointAddr   string         `json:"endpoint_addr"`
	StoreBackend   string         `json:"store_backend"`
	SQLitePath     string         `json:"sqlite_path"`
	RedisAddr      string         `json:"redis_addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	CookieDomain   string         `json:"cookie_domain"`
	AttributionTTL timex.Duration `json:"attribution_ttl"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. With no flag present nothing is loaded. Read or
// unmarshal errors panic; this runs once at startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	applyJson(cfg, data)
}

// applyJson copies non-zero JSON fields into cfg. Split out of
// parseJson so tests can exercise the overlay without touching flags.
func applyJson(cfg *Config, data []byte) {
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.StoreBackend != "" {
		cfg.StoreBackend = jc.StoreBackend
	}
	if jc.SQLitePath != "" {
		cfg.SQLitePath = jc.SQLitePath
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.CookieDomain != "" {
		cfg.CookieDomain = jc.CookieDomain
	}
	if jc.AttributionTTL.Std() > 0 {
		cfg.AttributionTTL = jc.AttributionTTL.Std()
	}
}
