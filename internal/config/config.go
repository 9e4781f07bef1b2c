// Package config provides configuration loading and validation for the API server.
// It uses koanf to merge environment variables with optional file overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Catalog source kinds.
const (
	CatalogSourceFile     = "file"
	CatalogSourceS3       = "s3"
	CatalogSourcePostgres = "postgres"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Server settings
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	// Matching engine
	HomeCountry     string `koanf:"home_country"`     // Country treated as domestic, default "Japan"
	CalibrationPath string `koanf:"calibration_path"` // Optional pipeline calibration JSON

	// Catalog source selection: file, s3, or postgres
	CatalogSource   string `koanf:"catalog_source"`
	CatalogFilePath string `koanf:"catalog_file_path"`

	// Database (postgres catalog source)
	DatabaseURL string `koanf:"database_url"`

	// S3-compatible object storage (s3 catalog source)
	S3BucketName      string `koanf:"s3_bucket_name"`
	S3ObjectKey       string `koanf:"s3_object_key"`
	S3AccessKeyID     string `koanf:"s3_access_key_id"`
	S3SecretAccessKey string `koanf:"s3_secret_access_key"`
	S3Endpoint        string `koanf:"s3_endpoint"`

	// Redis (rate limiting + translation cache); optional
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`

	// JWT Authentication (premium access tokens). The previous secret is
	// set only during a rotation window so outstanding tokens stay valid.
	JWTSecret         string `koanf:"jwt_secret"`
	JWTSecretPrevious string `koanf:"jwt_secret_previous"`

	// Stripe (premium unlock checkout); optional as a group
	StripeAPIKey     string `koanf:"stripe_api_key"`
	StripePriceID    string `koanf:"stripe_price_id"`
	StripeSuccessURL string `koanf:"stripe_success_url"`
	StripeCancelURL  string `koanf:"stripe_cancel_url"`
	// StripeWebhookSecret enables webhook signature verification; the
	// webhook endpoint is disabled when empty.
	StripeWebhookSecret string `koanf:"stripe_webhook_secret"`

	// Translation proxy (DeepL-compatible); optional as a group
	TranslateAPIURL string `koanf:"translate_api_url"`
	TranslateAPIKey string `koanf:"translate_api_key"`
}

// Configuration validation errors.
var (
	ErrMissingJWTSecret        = errors.New("JWT_SECRET is required")
	ErrInvalidCatalogSource    = errors.New("CATALOG_SOURCE must be one of: file, s3, postgres")
	ErrMissingCatalogFilePath  = errors.New("CATALOG_FILE_PATH is required for the file catalog source")
	ErrMissingDatabaseURL      = errors.New("DATABASE_URL is required for the postgres catalog source")
	ErrMissingS3BucketName     = errors.New("S3_BUCKET_NAME is required for the s3 catalog source")
	ErrMissingS3ObjectKey      = errors.New("S3_OBJECT_KEY is required for the s3 catalog source")
	ErrMissingS3AccessKeyID    = errors.New("S3_ACCESS_KEY_ID is required for the s3 catalog source")
	ErrMissingS3SecretAccessKey = errors.New("S3_SECRET_ACCESS_KEY is required for the s3 catalog source")
	ErrMissingS3Endpoint       = errors.New("S3_ENDPOINT is required for the s3 catalog source")
	ErrMissingStripePriceID    = errors.New("STRIPE_PRICE_ID is required when Stripe is configured")
	ErrMissingStripeSuccessURL = errors.New("STRIPE_SUCCESS_URL is required when Stripe is configured")
	ErrMissingStripeCancelURL  = errors.New("STRIPE_CANCEL_URL is required when Stripe is configured")
	ErrMissingTranslateAPIKey  = errors.New("TRANSLATE_API_KEY is required when the translation proxy is configured")
	ErrInvalidPort             = errors.New("PORT must be a valid integer")
)

// Default values for non-secret configuration.
const (
	DefaultPort            = 8080
	DefaultEnv             = "development"
	DefaultHomeCountry     = "Japan"
	DefaultCatalogSource   = CatalogSourceFile
	DefaultCatalogFilePath = "configs/suppliers.json"
)

// Load reads configuration from environment variables and an optional config file.
// Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if valid).
// If a config file path is provided and the file cannot be loaded, an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	// Load from YAML file first if provided (lower precedence)
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	// Parse port from env, collecting error if invalid
	// Try OEMLINK_PORT first, then PORT for backward compatibility
	port, portErr := getEnvIntOrDefaultMulti([]string{"OEMLINK_PORT", "PORT"}, k.Int("port"), DefaultPort)
	if portErr != nil {
		loadErrs = append(loadErrs, portErr)
	}

	// Build config struct, with env vars taking precedence over file values
	cfg := &Config{
		Port:            port,
		Env:             getEnvOrDefaultMulti([]string{"OEMLINK_ENV", "ENV", "GO_ENV"}, k.String("env"), DefaultEnv),
		HomeCountry:     getEnvOrDefault("HOME_COUNTRY", k.String("home_country"), DefaultHomeCountry),
		CalibrationPath: getEnvOrKoanf("CALIBRATION_PATH", k, "calibration_path"),
		CatalogSource:   getEnvOrDefault("CATALOG_SOURCE", k.String("catalog_source"), DefaultCatalogSource),
		CatalogFilePath: getEnvOrDefault("CATALOG_FILE_PATH", k.String("catalog_file_path"), DefaultCatalogFilePath),
		DatabaseURL:     getEnvOrKoanf("DATABASE_URL", k, "database_url"),

		S3BucketName:      getEnvOrKoanf("S3_BUCKET_NAME", k, "s3_bucket_name"),
		S3ObjectKey:       getEnvOrKoanf("S3_OBJECT_KEY", k, "s3_object_key"),
		S3AccessKeyID:     getEnvOrKoanf("S3_ACCESS_KEY_ID", k, "s3_access_key_id"),
		S3SecretAccessKey: getEnvOrKoanf("S3_SECRET_ACCESS_KEY", k, "s3_secret_access_key"),
		S3Endpoint:        getEnvOrKoanf("S3_ENDPOINT", k, "s3_endpoint"),

		RedisAddr:     getEnvOrKoanf("REDIS_ADDR", k, "redis_addr"),
		RedisPassword: getEnvOrKoanf("REDIS_PASSWORD", k, "redis_password"),

		JWTSecret:         getEnvOrKoanf("JWT_SECRET", k, "jwt_secret"),
		JWTSecretPrevious: getEnvOrKoanf("JWT_SECRET_PREVIOUS", k, "jwt_secret_previous"),

		StripeAPIKey:     getEnvOrKoanf("STRIPE_API_KEY", k, "stripe_api_key"),
		StripePriceID:    getEnvOrKoanf("STRIPE_PRICE_ID", k, "stripe_price_id"),
		StripeSuccessURL: getEnvOrKoanf("STRIPE_SUCCESS_URL", k, "stripe_success_url"),
		StripeCancelURL:  getEnvOrKoanf("STRIPE_CANCEL_URL", k, "stripe_cancel_url"),
		StripeWebhookSecret: getEnvOrKoanf("STRIPE_WEBHOOK_SECRET", k, "stripe_webhook_secret"),

		TranslateAPIURL: getEnvOrKoanf("TRANSLATE_API_URL", k, "translate_api_url"),
		TranslateAPIKey: getEnvOrKoanf("TRANSLATE_API_KEY", k, "translate_api_key"),
	}

	// Validate and collect errors
	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first non-empty value found, otherwise the koanf value, or default.
func getEnvOrDefaultMulti(envKeys []string, koanfVal string, defaultVal string) string {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first valid integer value found, otherwise the koanf value, or default.
// Returns an error if any environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefaultMulti(envKeys []string, koanfVal int, defaultVal int) (int, error) {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("%s must be a valid integer: %w", key, ErrInvalidPort)
			}
			return i, nil
		}
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// Validate checks that all required configuration values are present.
// Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}

	switch c.CatalogSource {
	case CatalogSourceFile:
		if c.CatalogFilePath == "" {
			errs = append(errs, ErrMissingCatalogFilePath)
		}
	case CatalogSourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, ErrMissingDatabaseURL)
		}
	case CatalogSourceS3:
		if c.S3BucketName == "" {
			errs = append(errs, ErrMissingS3BucketName)
		}
		if c.S3ObjectKey == "" {
			errs = append(errs, ErrMissingS3ObjectKey)
		}
		if c.S3AccessKeyID == "" {
			errs = append(errs, ErrMissingS3AccessKeyID)
		}
		if c.S3SecretAccessKey == "" {
			errs = append(errs, ErrMissingS3SecretAccessKey)
		}
		if c.S3Endpoint == "" {
			errs = append(errs, ErrMissingS3Endpoint)
		}
	default:
		errs = append(errs, ErrInvalidCatalogSource)
	}

	// Stripe configuration is optional. Only validate fields if the API key is set.
	if c.StripeAPIKey != "" {
		if c.StripePriceID == "" {
			errs = append(errs, ErrMissingStripePriceID)
		}
		if c.StripeSuccessURL == "" {
			errs = append(errs, ErrMissingStripeSuccessURL)
		}
		if c.StripeCancelURL == "" {
			errs = append(errs, ErrMissingStripeCancelURL)
		}
	}

	// Translation proxy is optional. Only validate the key if a URL is set.
	if c.TranslateAPIURL != "" && c.TranslateAPIKey == "" {
		errs = append(errs, ErrMissingTranslateAPIKey)
	}

	return errs
}

// GetJWTSecrets returns the current signing secret and, when a rotation is
// in progress, the previous one.
func (c *Config) GetJWTSecrets() (current, previous string) {
	return c.JWTSecret, c.JWTSecretPrevious
}

// StripeEnabled reports whether the premium checkout flow is configured.
func (c *Config) StripeEnabled() bool {
	return c.StripeAPIKey != ""
}

// TranslateEnabled reports whether the translation proxy is configured.
func (c *Config) TranslateEnabled() bool {
	return c.TranslateAPIURL != ""
}

// LogSummary returns a summary of the configuration suitable for logging.
// All secrets are masked to prevent accidental exposure.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"port":                 fmt.Sprintf("%d", c.Port),
		"env":                  c.Env,
		"home_country":         c.HomeCountry,
		"calibration_path":     c.CalibrationPath,
		"catalog_source":       c.CatalogSource,
		"catalog_file_path":    c.CatalogFilePath,
		"database_url":         maskDatabaseURL(c.DatabaseURL),
		"s3_bucket_name":       c.S3BucketName,
		"s3_object_key":        c.S3ObjectKey,
		"s3_access_key_id":     maskSecret(c.S3AccessKeyID),
		"s3_secret_access_key": maskSecret(c.S3SecretAccessKey),
		"s3_endpoint":          c.S3Endpoint,
		"redis_addr":           c.RedisAddr,
		"redis_password":       maskSecret(c.RedisPassword),
		"jwt_secret":           maskSecret(c.JWTSecret),
		"jwt_secret_previous":  maskSecret(c.JWTSecretPrevious),
		"stripe_api_key":       maskStripeKey(c.StripeAPIKey),
		"stripe_price_id":      c.StripePriceID,
		"stripe_success_url":   c.StripeSuccessURL,
		"stripe_cancel_url":    c.StripeCancelURL,
		"stripe_webhook_secret": maskSecret(c.StripeWebhookSecret),
		"translate_api_url":    c.TranslateAPIURL,
		"translate_api_key":    maskSecret(c.TranslateAPIKey),
	}
}

// maskSecret masks a secret value, showing only the first 4 characters followed by ****
// If the secret is shorter than 8 characters, it's fully masked.
func maskSecret(s string) string {
	if s == "" {
		return "<not set>"
	}
	if len(s) < 8 {
		return "****"
	}
	return s[:4] + "****"
}

// maskStripeKey masks a Stripe API key, preserving the prefix (sk_live_, sk_test_, etc.)
func maskStripeKey(s string) string {
	if s == "" {
		return "<not set>"
	}

	// Stripe keys have format like sk_live_..., sk_test_..., pk_live_..., etc.
	parts := strings.SplitN(s, "_", 3)
	if len(parts) == 3 {
		return parts[0] + "_" + parts[1] + "_****"
	}

	// Fallback to generic masking
	return maskSecret(s)
}

// maskDatabaseURL masks the password in a database URL.
// Supports both postgres:// and postgresql:// schemes.
func maskDatabaseURL(s string) string {
	if s == "" {
		return "<not set>"
	}

	// Look for password pattern: user:password@host
	// Simple approach: find :// and then mask between : and @
	schemeEnd := strings.Index(s, "://")
	if schemeEnd == -1 {
		return maskSecret(s)
	}

	rest := s[schemeEnd+3:]
	atIndex := strings.Index(rest, "@")
	if atIndex == -1 {
		return s // No credentials in URL
	}

	colonIndex := strings.Index(rest[:atIndex], ":")
	if colonIndex == -1 {
		return s // No password (only username)
	}

	// Reconstruct URL with masked password
	scheme := s[:schemeEnd+3]
	user := rest[:colonIndex]
	hostAndPath := rest[atIndex:]

	return scheme + user + ":****" + hostAndPath
}
