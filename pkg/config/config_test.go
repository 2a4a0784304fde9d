package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "data.json", cfg.OutFile)
	assert.Equal(t, 25*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.PerPage)
	assert.Equal(t, 25, cfg.MaxPages)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.True(t, cfg.Pretty)
	assert.True(t, cfg.StrictTLS)
	assert.Contains(t, cfg.ExcludePatterns, "tld")
	assert.Contains(t, cfg.ExcludePatterns, "domain registration")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BILLING_BASE_URL", "https://billing.example.com")
	t.Setenv("BILLING_API_KEY", "s3cret")
	t.Setenv("BILLING_TIMEOUT", "40")
	t.Setenv("JSON_PRETTY", "off")
	t.Setenv("BILLING_STRICT_TLS", "0")
	t.Setenv("EXCLUDE_PRODUCT_PATTERNS", "internal, legacy ,")
	t.Setenv("SITE_MOTTO", "fast hosting")

	cfg := Load()
	assert.Equal(t, "https://billing.example.com", cfg.BaseURL)
	assert.Equal(t, "s3cret", cfg.APIKey)
	assert.Equal(t, 40*time.Second, cfg.Timeout)
	assert.False(t, cfg.Pretty)
	assert.False(t, cfg.StrictTLS)
	assert.Equal(t, []string{"internal", "legacy"}, cfg.ExcludePatterns)
	assert.Equal(t, "fast hosting", cfg.Branding.Motto)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	require.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.APIKey = "k"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.PerPage, "zero values fall back to defaults")
	assert.Equal(t, 25, cfg.MaxPages)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, SplitCSV(" a , b c ,,"))
	assert.Empty(t, SplitCSV(""))
}
