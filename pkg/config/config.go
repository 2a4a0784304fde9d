// Package config loads the generator configuration from .env files,
// process environment, and CLI flag overrides applied by main.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is the only fatal configuration error: without the
// shared secret no authenticated scope works.
var ErrMissingAPIKey = errors.New("missing BILLING_API_KEY: set it in .env or pass --api-key")

// Config is everything the pipeline needs from the outside world.
type Config struct {
	BaseURL   string
	APIKey    string
	PublicURL string
	OutFile   string

	Timeout     time.Duration
	MaxPages    int
	PerPage     int
	Concurrency int

	Pretty          bool
	ShowErrors      bool
	StrictTLS       bool
	Verbose         bool
	ExcludePatterns []string

	Branding BrandingOverrides
}

// BrandingOverrides are optional env-provided branding values that win
// over anything the upstream reports.
type BrandingOverrides struct {
	Motto       string
	BrandMark   string
	LogoURL     string
	LogoDarkURL string
	FaviconURL  string
	HeaderBgURL string
	FooterBgURL string
}

const defaultExcludePatterns = "tld,domain register,domain registration,domain transfer,domain renewal"

// Load reads .env (best effort) and the environment. Flag overrides
// are applied by the caller afterwards; Validate runs last.
func Load() *Config {
	_ = godotenv.Load()

	timeoutSeconds := envInt("BILLING_TIMEOUT", 25)
	return &Config{
		BaseURL:         envString("BILLING_BASE_URL", ""),
		APIKey:          envString("BILLING_API_KEY", ""),
		PublicURL:       envString("PUBLIC_SITE_URL", ""),
		OutFile:         envString("DATA_OUTPUT", "data.json"),
		Timeout:         time.Duration(timeoutSeconds) * time.Second,
		MaxPages:        envInt("BILLING_MAX_PAGES", 25),
		PerPage:         envInt("BILLING_PER_PAGE", 100),
		Concurrency:     envInt("BILLING_CONCURRENCY", 3),
		Pretty:          envBool("JSON_PRETTY", true),
		ShowErrors:      envBool("GEN_SHOW_ERRORS", false),
		StrictTLS:       envBool("BILLING_STRICT_TLS", true),
		ExcludePatterns: SplitCSV(envString("EXCLUDE_PRODUCT_PATTERNS", defaultExcludePatterns)),
		Branding: BrandingOverrides{
			Motto:       envString("SITE_MOTTO", ""),
			BrandMark:   envString("SITE_BRAND_MARK", ""),
			LogoURL:     envString("SITE_LOGO_URL", ""),
			LogoDarkURL: envString("SITE_LOGO_DARK_URL", ""),
			FaviconURL:  envString("SITE_FAVICON_URL", ""),
			HeaderBgURL: envString("SITE_HEADER_BG_URL", ""),
			FooterBgURL: envString("SITE_FOOTER_BG_URL", ""),
		},
	}
}

// Validate checks the required values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.PerPage <= 0 {
		c.PerPage = 100
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 25
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	return nil
}

// SplitCSV splits a comma-separated list, trimming and dropping empty
// items.
func SplitCSV(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func envString(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
