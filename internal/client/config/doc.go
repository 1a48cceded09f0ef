// Package config loads runtime configuration for the ShopSphere CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: SHOPSPHERE_API_URL, SHOPSPHERE_PAYMENT_KEY_ID,
//     SHOPSPHERE_DATA_DIR, SHOPSPHERE_LOG_LEVEL, optionally from a .env file.
//  3. Optional JSON file selected with -c / -config or $SHOPSPHERE_CONFIG.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "payment_key_id": "rzp_test_xxx",
//	  "checkout_script_url": "https://checkout.razorpay.com/v1/checkout.js",
//	  "data_dir": "~/.shopsphere",
//	  "request_timeout": "10s",
//	  "login_redirect_delay": "1s",
//	  "register_redirect_delay": "2s",
//	  "log_level": "info"
//	}
package config
