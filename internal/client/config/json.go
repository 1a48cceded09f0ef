package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/shopsphere/internal/flagx"
	"github.com/dmitrijs2005/shopsphere/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "1s"-style strings or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL            string         `json:"api_base_url"`
	PaymentKeyID          string         `json:"payment_key_id"`
	CheckoutScriptURL     string         `json:"checkout_script_url"`
	DataDir               string         `json:"data_dir"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
	LoginRedirectDelay    timex.Duration `json:"login_redirect_delay"`
	RegisterRedirectDelay timex.Duration `json:"register_redirect_delay"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays cfg with the fields present in the file named by
// -c/-config (or $SHOPSPHERE_CONFIG). Absent fields keep their current
// value. Panics on unreadable or malformed files.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.PaymentKeyID, jc.PaymentKeyID)
	setString(&cfg.CheckoutScriptURL, jc.CheckoutScriptURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LoginRedirectDelay.Duration > 0 {
		cfg.LoginRedirectDelay = jc.LoginRedirectDelay.Duration
	}
	if jc.RegisterRedirectDelay.Duration > 0 {
		cfg.RegisterRedirectDelay = jc.RegisterRedirectDelay.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
