package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen-base/pkg/models"
)

func TestMergeNonEmpty(t *testing.T) {
	base := map[string]any{
		"title":  "Hosting",
		"slug":   "",
		"config": map[string]any{"quota": "10", "cron": ""},
	}
	incoming := map[string]any{
		"title":  "Other title",
		"slug":   "hosting",
		"status": "active",
		"config": map[string]any{"quota": "99", "cron": "5"},
	}

	merged := MergeNonEmpty(base, incoming)

	assert.Equal(t, "Hosting", merged["title"], "non-empty base values never regress")
	assert.Equal(t, "hosting", merged["slug"])
	assert.Equal(t, "active", merged["status"])
	config := merged["config"].(map[string]any)
	assert.Equal(t, "10", config["quota"])
	assert.Equal(t, "5", config["cron"])

	// Inputs stay untouched.
	assert.Equal(t, "", base["slug"])
}

func TestMergeNonEmpty_Idempotent(t *testing.T) {
	x := map[string]any{
		"a": "1",
		"b": map[string]any{"c": "2", "d": []any{"x"}},
	}
	assert.Equal(t, x, MergeNonEmpty(x, x))
}

func TestFillProduct(t *testing.T) {
	price := "10.00"
	detail := &models.Product{
		ID:      "1",
		Title:   "From detail",
		Pricing: models.Pricing{"USD": {Type: "recurrent", Recurrent: map[string]models.PricingEntry{"1M": {Price: &price, Enabled: true}}}},
	}
	listing := &models.Product{
		ID:          "1",
		Title:       "From listing",
		Slug:        "from-listing",
		Pricing:     models.Pricing{"USD": {Type: "once"}, "EUR": {Type: "once"}},
		Limitations: map[string]any{"disk": "10"},
	}

	FillProduct(detail, listing)

	assert.Equal(t, "From detail", detail.Title)
	assert.Equal(t, "from-listing", detail.Slug)
	require.Contains(t, detail.Pricing, "USD")
	assert.Equal(t, "recurrent", detail.Pricing["USD"].Type, "detail pricing wins per currency")
	assert.Contains(t, detail.Pricing, "EUR")
	assert.Equal(t, "10", detail.Limitations["disk"])
}

func TestFillCategory(t *testing.T) {
	base := models.Category{ID: "1", Title: "Shared"}
	filled := FillCategory(base, models.Category{Title: "Other", Slug: "shared", Products: []string{"5"}})
	assert.Equal(t, "Shared", filled.Title)
	assert.Equal(t, "shared", filled.Slug)
	assert.Equal(t, []string{"5"}, filled.Products)
}
