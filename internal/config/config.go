package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvProduction is the INDVEND_ENV value that enables production checks.
const EnvProduction = "production"

// Config errors
var (
	ErrCSRFKeyRequired = errors.New("INDVEND_CSRF_KEY is required in production")
	ErrCSRFKeyFormat   = errors.New("INDVEND_CSRF_KEY must be 64 hex characters (32 bytes)")
)

// Config holds process settings read from the environment.
type Config struct {
	Addr        string
	DBPath      string // empty keeps the local store in memory
	Env         string
	CSRFKey     []byte
	RateLimit   int // requests per second per IP
	SlowRequest time.Duration
	SlowQuery   time.Duration
	IdleDevice  time.Duration // workspaces unused this long are evicted
	LogLevel    slog.Level
	ResendKey   string
	EmailFrom   string
	Location    *time.Location
}

// Production reports whether the process runs in production mode.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads the configuration. Unset variables take defaults; malformed
// values are errors so a typo never silently changes behaviour.
// POST: on success CSRFKey is 32 bytes and Location is non-nil
func Load() (Config, error) {
	cfg := Config{
		Addr:      getenv("INDVEND_ADDR", ":8080"),
		DBPath:    getenv("INDVEND_DB_PATH", "indvend.db"),
		Env:       getenv("INDVEND_ENV", "development"),
		ResendKey: os.Getenv("INDVEND_RESEND_KEY"),
		EmailFrom: getenv("INDVEND_EMAIL_FROM", "IndVend Fitness <noreply@indvend.example>"),
	}
	if v, ok := os.LookupEnv("INDVEND_DB_PATH"); ok && v == "" {
		cfg.DBPath = ""
	}

	var err error
	if cfg.RateLimit, err = getenvInt("INDVEND_RATE_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if cfg.SlowRequest, err = getenvDuration("INDVEND_SLOW_REQUEST_MS", 200*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.SlowQuery, err = getenvDuration("INDVEND_SLOW_QUERY_MS", 50*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.IdleDevice, err = getenvDuration("INDVEND_WORKSPACE_IDLE", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("INDVEND_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("INDVEND_LOG_LEVEL: %w", err)
	}
	if cfg.Location, err = loadLocation(os.Getenv("INDVEND_TZ")); err != nil {
		return Config{}, err
	}
	if cfg.CSRFKey, err = loadCSRFKey(os.Getenv("INDVEND_CSRF_KEY"), cfg.Production()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, val)
	}
	return n, nil
}

// getenvDuration reads a millisecond count, or any time.ParseDuration string.
func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond, nil
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d, nil
	}
	return 0, fmt.Errorf("%s must be a positive duration, got %q", key, val)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("INDVEND_TZ: %w", err)
	}
	return loc, nil
}

// loadCSRFKey decodes the configured key, or generates a random one
// outside production.
func loadCSRFKey(keyHex string, production bool) ([]byte, error) {
	if keyHex = strings.TrimSpace(keyHex); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, ErrCSRFKeyFormat
		}
		return key, nil
	}
	if production {
		return nil, ErrCSRFKeyRequired
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate CSRF key: %w", err)
	}
	slog.Warn("config_event", "event", "csrf_key_generated", "detail", "forms will not survive a restart; set INDVEND_CSRF_KEY")
	return key, nil
}
