// Package config loads walletwise settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/walletwise/internal/calculator"
)

// Config holds every setting the commands need.
type Config struct {
	Addr            string
	DBDriver        string
	DBDSN           string
	JWTSecret       string
	TokenTTL        time.Duration
	DefaultCurrency string
	ShutdownTimeout time.Duration
	Balance         calculator.Policy

	// EphemeralSecret is set when JWT_SECRET was unset and a random secret
	// was generated. Tokens then don't survive a restart.
	EphemeralSecret bool
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// Load reads the configuration from environment variables, applying
// defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("ADDR", ":8080"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:           getEnv("DB_DSN", "./data/walletwise.db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		DefaultCurrency: strings.ToUpper(getEnv("DEFAULT_CURRENCY", "COP")),
		Balance:         calculator.DefaultPolicy(),
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: want sqlite or postgres", cfg.DBDriver)
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.Balance.IgnoreUnknownMembers, err = getBool("BALANCE_IGNORE_UNKNOWN_MEMBERS", cfg.Balance.IgnoreUnknownMembers); err != nil {
		return nil, err
	}
	if cfg.Balance.CreditPayerFullAmount, err = getBool("BALANCE_CREDIT_PAYER_FULL_AMOUNT", cfg.Balance.CreditPayerFullAmount); err != nil {
		return nil, err
	}
	if raw := getEnv("BALANCE_SETTLEMENT_EPSILON", ""); raw != "" {
		eps, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BALANCE_SETTLEMENT_EPSILON: %w", err)
		}
		if eps.IsNegative() {
			return nil, fmt.Errorf("invalid BALANCE_SETTLEMENT_EPSILON: must not be negative")
		}
		cfg.Balance.Epsilon = eps
	}

	if cfg.JWTSecret == "" {
		if cfg.JWTSecret, err = randomSecret(); err != nil {
			return nil, err
		}
		cfg.EphemeralSecret = true
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
