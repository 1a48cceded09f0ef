package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvAPIBaseURL   = "SHOPSPHERE_API_URL"
	EnvPaymentKeyID = "SHOPSPHERE_PAYMENT_KEY_ID"
	EnvDataDir      = "SHOPSPHERE_DATA_DIR"
	EnvLogLevel     = "SHOPSPHERE_LOG_LEVEL"
)

// parseEnv overlays cfg with SHOPSPHERE_* variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment are not overwritten by it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvPaymentKeyID); v != "" {
		cfg.PaymentKeyID = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
