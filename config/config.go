package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the well-known development signing key. Any real deployment
// must override it through JWT_SECRET.
const DefaultJWTSecret = "dev_super_secret_change_me"

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// JWT
	JWTSecret string
	TokenTTL  time.Duration

	// Spreadsheet storage
	UsersFile string

	// Password hashing
	BcryptCost int

	// HTTP access log toggle
	HTTPLogEnabled bool

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := ParseTTL(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// ParseTTL accepts Go durations ("90m", "2h"), a bare number of seconds ("3600")
// and whole days ("7d"). A bare number is seconds, not milliseconds, and spelled-out
// units ("1 day", "2 hours") as well as "w"/"y" suffixes are rejected. The result
// must be positive.
func ParseTTL(s string) (time.Duration, error) {
	d, err := parseTTL(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("ttl must be positive, got %v", d)
	}
	return d, nil
}

func parseTTL(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "sheet-auth"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3000"),
		GinMode: getenv("GIN_MODE", "release"),

		JWTSecret: getenv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:  getdur("TOKEN_EXPIRES_IN", 2*time.Hour),

		UsersFile: getenv("USERS_FILE", "users.xlsx"),

		BcryptCost: getint("BCRYPT_COST", 10),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", false),
	}
}

// InsecureSecret reports whether the signing key is still the development default.
func (c *Config) InsecureSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
