package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hackerclone/hackerclone/internal/common/constants"
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	SecretKey      string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

// Load reads the process configuration once at startup. DATABASE_URL and
// SECRET_KEY are required; their absence is a fatal configuration error,
// never a per-request one.
func Load() (Config, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	secretKey, err := mustEnv("SECRET_KEY")
	if err != nil {
		return Config{}, err
	}

	if err := validateSecretKey(secretKey); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		SecretKey:      secretKey,
		SessionTTL:     getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 5*time.Second),
		PoolMaxConns:   int32(getIntEnv("DB_POOL_MAX_CONNS", 25)),
		PoolMinConns:   int32(getIntEnv("DB_POOL_MIN_CONNS", 5)),
	}, nil
}

func validateSecretKey(secret string) error {
	if len(secret) < constants.SecretKeyMinLength {
		return commonerrors.ErrConfiguration.WithCause(
			fmt.Errorf("SECRET_KEY must be at least %d bytes, got %d", constants.SecretKeyMinLength, len(secret)),
		)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrConfiguration.WithCause(
			fmt.Errorf("missing required environment variable %s", key),
		)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
