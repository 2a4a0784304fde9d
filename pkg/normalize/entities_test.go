package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductItem(t *testing.T) {
	row := map[string]any{
		"id":     float64(12),
		"title":  "  Web Hosting ",
		"slug":   "web-hosting",
		"type":   "hosting",
		"hidden": "0",
		"product_category_id": "3",
		"config": map[string]any{
			"server": map[string]any{"max_sql": "5"},
			"notes":  "internal",
		},
		"addons": []any{float64(7), "8"},
	}

	product := ProductItem(row, "https://billing.example.com/")
	assert.Equal(t, "12", product.ID, "numeric ids are stringified without decimals")
	assert.Equal(t, "Web Hosting", product.Title)
	assert.Equal(t, "https://billing.example.com/order/web-hosting", product.OrderURL)
	assert.Equal(t, "3", product.CategoryID)
	assert.False(t, product.Hidden)
	assert.Equal(t, []string{"7", "8"}, product.Addons)
	assert.Contains(t, product.Limitations, "server.max_sql")
	assert.NotContains(t, product.Limitations, "notes")
}

func TestProductItem_OrderURLWithoutSlug(t *testing.T) {
	product := ProductItem(map[string]any{"id": "5", "title": "X"}, "https://b.example.com")
	assert.Equal(t, "https://b.example.com/order?product_id=5", product.OrderURL)
}

func TestCurrencyItem(t *testing.T) {
	tests := []struct {
		name         string
		row          map[string]any
		defaultCode  string
		wantCode     string
		wantDecimals int
		wantDefault  bool
		wantEnabled  bool
	}{
		{
			name:         "upstream flag",
			row:          map[string]any{"code": "usd", "is_default": 1, "price_format": "2"},
			wantCode:     "USD",
			wantDecimals: 2,
			wantDefault:  true,
			wantEnabled:  true,
		},
		{
			name:         "configured default",
			row:          map[string]any{"code": "EUR", "conversion_rate": "0.9"},
			defaultCode:  "eur",
			wantCode:     "EUR",
			wantDecimals: 2,
			wantDefault:  true,
			wantEnabled:  true,
		},
		{
			name:         "decimals clamped",
			row:          map[string]any{"code": "JPY", "decimals": float64(9), "enabled": "0"},
			wantCode:     "JPY",
			wantDecimals: 6,
			wantDefault:  false,
			wantEnabled:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			currency := CurrencyItem(tt.row, tt.defaultCode)
			assert.Equal(t, tt.wantCode, currency.Code)
			assert.Equal(t, tt.wantDecimals, currency.PriceDecimals)
			assert.Equal(t, tt.wantDefault, currency.IsDefault)
			assert.Equal(t, tt.wantEnabled, currency.Enabled)
		})
	}
}

func TestHostingPlanItem_TopLevelFeaturesWin(t *testing.T) {
	plan := HostingPlanItem(map[string]any{
		"id":      "2",
		"name":    "Gold",
		"quota":   "10240",
		"max_sql": "10",
		"config": map[string]any{
			"max_sql": "3",
			"cron":    "5",
		},
	})

	require.Equal(t, "2", plan.ID)
	assert.Equal(t, "10240", plan.Limitations["disk"])
	assert.Equal(t, "10", plan.Limitations["database"], "top-level field beats config value")
	assert.Equal(t, "5", plan.Limitations["cron"])
}

func TestHostingPlanItem_ZeroFeaturesIgnored(t *testing.T) {
	plan := HostingPlanItem(map[string]any{"id": "1", "name": "Base", "max_ftp": "0"})
	assert.NotContains(t, plan.Limitations, "ftp")
}

func TestDomainTldItem(t *testing.T) {
	tld := DomainTldItem(map[string]any{
		"id":                 "4",
		"tld":                ".com",
		"active":             "1",
		"price_registration": "12.00",
		"price_renew":        "14.00",
	})
	assert.Equal(t, ".com", tld.Tld)
	assert.True(t, tld.Enabled)
	assert.Equal(t, "12.00", tld.Pricing.Register)
	assert.Equal(t, "14.00", tld.Pricing.Renew)
	assert.Equal(t, "1", tld.MinYears)
}

func TestGatewayItem(t *testing.T) {
	gateway := GatewayItem(map[string]any{
		"id":                  "9",
		"gateway":             "stripe",
		"title":               "Stripe",
		"enabled":             1,
		"accepted_currencies": []any{"usd", "EUR"},
	})
	assert.Equal(t, "9", gateway.ID)
	assert.Equal(t, "stripe", gateway.Code)
	assert.True(t, gateway.Enabled)
	assert.Equal(t, []string{"usd", "EUR"}, gateway.AcceptedCurrencies)
}
