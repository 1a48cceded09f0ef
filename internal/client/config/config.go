package config

import "time"

// Config holds runtime settings for the ShopSphere CLI.
type Config struct {
	// APIBaseURL is the scheme://host:port of the storefront backend.
	APIBaseURL string
	// PaymentKeyID is the public key id of the hosted checkout. Empty means
	// payments are disabled.
	PaymentKeyID string
	// CheckoutScriptURL is the hosted checkout resource probed before a
	// payment is opened.
	CheckoutScriptURL string
	// DataDir holds the local preference database.
	DataDir string
	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration
	// LoginRedirectDelay is how long the login success banner stays before
	// navigating; RegisterRedirectDelay is the same for registration.
	LoginRedirectDelay    time.Duration
	RegisterRedirectDelay time.Duration
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with defaults suitable for local development.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.PaymentKeyID = ""
	c.CheckoutScriptURL = "https://checkout.razorpay.com/v1/checkout.js"
	c.DataDir = "~/.shopsphere"
	c.RequestTimeout = 10 * time.Second
	c.LoginRedirectDelay = time.Second
	c.RegisterRedirectDelay = 2 * time.Second
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then environment (including a .env file in
// the working directory), then the JSON file, then command-line flags.
// Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
