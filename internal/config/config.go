package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the API server.  Each field
// corresponds to an environment variable.
type Config struct {
	Env            string   // application environment (e.g. "dev", "prod")
	Port           string   // HTTP port to listen on
	DBUser         string   // database username
	DBPass         string   // database password (optional)
	DBHost         string   // database host address
	DBPort         string   // database port number
	DBName         string   // database name
	JWTSecret      string   // secret used to sign access tokens
	AccessTTLMin   int      // access token time-to-live in minutes
	RefreshTTLDays int      // refresh token time-to-live in days
	BcryptCost     int      // bcrypt cost for password hashing
	AllowedOrigins []string // CORS allow list; "*" allows any origin
}

// LogConfig controls the zap logger.  It never fails to load so that a
// logger is available before the rest of the configuration is read.
type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // json | console
}

// LoadDotEnv reads a .env file from the working directory when one exists.
// Variables already present in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// LoadLogConfig reads LOG_LEVEL and LOG_FORMAT.
func LoadLogConfig() LogConfig {
	return LogConfig{
		Level:  envStr("LOG_LEVEL", "info"),
		Format: envStr("LOG_FORMAT", "json"),
	}
}

// Load reads the server configuration.  Every missing or malformed
// required variable is reported in the returned error.
func Load() (Config, error) {
	r := &reader{}
	cfg := Config{
		Env:            r.must("APP_ENV"),
		Port:           envStr("APP_PORT", "8080"),
		DBUser:         r.must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         r.must("DB_HOST"),
		DBPort:         envStr("DB_PORT", "3306"),
		DBName:         r.must("DB_NAME"),
		JWTSecret:      r.must("JWT_SECRET"),
		AccessTTLMin:   r.intOr("ACCESS_TOKEN_TTL_MIN", 30),
		RefreshTTLDays: r.intOr("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     r.intOr("BCRYPT_COST", 12),
		AllowedOrigins: splitList(envStr("CORS_ALLOWED_ORIGINS", "*")),
	}
	if cfg.AccessTTLMin < 1 {
		r.fail(fmt.Errorf("ACCESS_TOKEN_TTL_MIN must be positive"))
	}
	return cfg, errors.Join(r.errs...)
}

// reader accumulates lookup failures so Load can report all of them.
type reader struct{ errs []error }

func (r *reader) fail(err error) { r.errs = append(r.errs, err) }

// must retrieves the value of a required environment variable.
func (r *reader) must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		r.fail(fmt.Errorf("missing required env var: %s", key))
	}
	return v
}

// intOr is like envInt but records malformed values instead of
// silently falling back.
func (r *reader) intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		r.fail(fmt.Errorf("invalid int for %s: %q", key, s))
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
