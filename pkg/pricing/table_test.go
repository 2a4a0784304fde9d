package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen-base/pkg/models"
)

func currencySet() map[string]models.Currency {
	return map[string]models.Currency{
		"USD": {Code: "USD", ConversionRate: "1", PriceDecimals: 2, Enabled: true, IsDefault: true},
		"EUR": {Code: "EUR", ConversionRate: "0.9", PriceDecimals: 2, Enabled: true},
		"JPY": {Code: "JPY", ConversionRate: "150", PriceDecimals: 0, Enabled: true},
		"XXX": {Code: "XXX", Enabled: false},
	}
}

func recurrentModel(price string) *models.PricingModel {
	p := price
	return &models.PricingModel{
		Type:      "recurrent",
		Recurrent: map[string]models.PricingEntry{"1M": {Price: &p, Enabled: true}},
	}
}

func TestBuildTable_Election(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(map[string]models.Currency)
		configured string
		wantBase   string
	}{
		{"upstream flag wins", func(m map[string]models.Currency) {}, "", "USD"},
		{
			"configured default when no flag",
			func(m map[string]models.Currency) {
				c := m["USD"]
				c.IsDefault = false
				m["USD"] = c
			},
			"EUR", "EUR",
		},
		{
			"lexically first enabled as last resort",
			func(m map[string]models.Currency) {
				c := m["USD"]
				c.IsDefault = false
				m["USD"] = c
			},
			"", "EUR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			currencies := currencySet()
			tt.mutate(currencies)
			table := BuildTable(currencies, tt.configured)
			assert.Equal(t, tt.wantBase, table.Base)

			rate, ok := table.Rate(table.Base)
			require.True(t, ok, "elected base always has a rate")
			assert.True(t, rate.IsPositive())
		})
	}
}

func TestBuildTable_DisabledExcluded(t *testing.T) {
	table := BuildTable(currencySet(), "")
	assert.Equal(t, []string{"EUR", "JPY", "USD"}, table.Codes())
	_, ok := table.Rate("XXX")
	assert.False(t, ok)
}

func TestSynthesize_DerivesMissingCurrency(t *testing.T) {
	table := BuildTable(currencySet(), "")
	pricing := models.Pricing{}
	table.Synthesize(pricing, recurrentModel("10.00"))

	require.Contains(t, pricing, "USD")
	assert.Equal(t, "10.00", *pricing["USD"].Recurrent["1M"].Price)
	require.Contains(t, pricing, "EUR")
	assert.Equal(t, "9.00", *pricing["EUR"].Recurrent["1M"].Price)
	require.Contains(t, pricing, "JPY")
	assert.Equal(t, "1500", *pricing["JPY"].Recurrent["1M"].Price, "0-decimal currency rounds to whole units")
}

func TestSynthesize_KeepsCustomizedModel(t *testing.T) {
	table := BuildTable(currencySet(), "")
	pricing := models.Pricing{"EUR": recurrentModel("8.49")}
	table.Synthesize(pricing, recurrentModel("10.00"))
	assert.Equal(t, "8.49", *pricing["EUR"].Recurrent["1M"].Price, "an explicit divergent price survives")
}

func TestSynthesize_IdenticalModelTreatedAsUncustomized(t *testing.T) {
	table := BuildTable(currencySet(), "")
	pricing := models.Pricing{"EUR": recurrentModel("10.00")}
	table.Synthesize(pricing, recurrentModel("10.00"))
	assert.Equal(t, "9.00", *pricing["EUR"].Recurrent["1M"].Price,
		"a model structurally equal to the base is re-derived by rate")
}

func TestSynthesize_SkipsUnknownRate(t *testing.T) {
	currencies := currencySet()
	c := currencies["EUR"]
	c.ConversionRate = ""
	currencies["EUR"] = c

	table := BuildTable(currencies, "")
	pricing := models.Pricing{}
	table.Synthesize(pricing, recurrentModel("10.00"))
	assert.NotContains(t, pricing, "EUR")
	assert.Contains(t, pricing, "USD")
}

func TestRateConsistency(t *testing.T) {
	table := BuildTable(currencySet(), "")

	// Converting base→EUR directly must match the cross-rate formula
	// rate(EUR)/rate(USD) within the target precision.
	direct, ok := table.Multiplier("EUR")
	require.True(t, ok)
	eurRate, _ := table.Rate("EUR")
	usdRate, _ := table.Rate("USD")
	assert.True(t, direct.Equal(eurRate.Div(usdRate)))

	amount := ConvertAmount("10.00", direct, 2)
	assert.Equal(t, "9.00", amount)
}

func TestRelations(t *testing.T) {
	table := BuildTable(currencySet(), "")
	relations := table.Relations()

	require.Contains(t, relations, "EUR")
	assert.Equal(t, "1", relations["USD"]["USD"])
	assert.Equal(t, "0.9", relations["USD"]["EUR"])
	// 1 / 0.9, rounded to 8 digits with trailing zeros trimmed.
	assert.Equal(t, "1.11111111", relations["EUR"]["USD"])
	assert.NotContains(t, relations, "XXX")
}

func TestConvertAmount_NonNumericPassthrough(t *testing.T) {
	assert.Equal(t, "unlimited", ConvertAmount("unlimited", decimal.NewFromFloat(0.9), 2))
	assert.Equal(t, "", ConvertAmount("", decimal.NewFromFloat(0.9), 2))
}

func TestModelsEqual(t *testing.T) {
	left := recurrentModel("10.00")
	right := recurrentModel("10.00")
	assert.True(t, ModelsEqual(left, right))

	right.Recurrent["1Y"] = models.PricingEntry{Enabled: true}
	assert.False(t, ModelsEqual(left, right))

	// nil recurrent map and empty map compare equal.
	a := &models.PricingModel{Type: "once"}
	b := &models.PricingModel{Type: "once", Recurrent: map[string]models.PricingEntry{}}
	assert.True(t, ModelsEqual(a, b))
}
