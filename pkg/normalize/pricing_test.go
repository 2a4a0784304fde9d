package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen-base/pkg/models"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var value any
	require.NoError(t, json.Unmarshal([]byte(raw), &value))
	return value
}

func TestPricingShapes_AllShapesNormalizeIdentically(t *testing.T) {
	// The same logical price expressed in the three upstream encodings.
	shapeA := decode(t, `{"type":"recurrent","recurrent":{"1m":{"price":"10.00","setup":"0.00","enabled":1}}}`)
	shapeB := decode(t, `{"USD":{"type":"recurrent","recurrent":{"1m":{"price":"10.00","setup":"0.00","enabled":1}}}}`)
	shapeC := decode(t, `{"USD":{"1m":{"price":"10.00","setup":"0.00","enabled":1}}}`)

	fromA := PricingShapes(shapeA)
	fromB := PricingShapes(shapeB)
	fromC := PricingShapes(shapeC)

	require.Contains(t, fromA, models.DefaultPricingKey)
	require.Contains(t, fromB, "USD")
	require.Contains(t, fromC, "USD")

	wantEntry := fromB["USD"].Recurrent["1M"]
	assert.Equal(t, wantEntry, fromA[models.DefaultPricingKey].Recurrent["1M"])
	assert.Equal(t, wantEntry, fromC["USD"].Recurrent["1M"])
	require.NotNil(t, wantEntry.Price)
	assert.Equal(t, "10.00", *wantEntry.Price)
	assert.True(t, wantEntry.Enabled)
}

func TestPricingShapes_PeriodCodesUppercased(t *testing.T) {
	pricing := PricingShapes(decode(t, `{"type":"recurrent","recurrent":{"1m":"5","1y":"50"}}`))
	model := pricing[models.DefaultPricingKey]
	require.NotNil(t, model)
	assert.Contains(t, model.Recurrent, "1M")
	assert.Contains(t, model.Recurrent, "1Y")
	assert.NotContains(t, model.Recurrent, "1m")
}

func TestPricingShapes_RootLevelPeriodsWithoutWrapper(t *testing.T) {
	pricing := PricingShapes(decode(t, `{"type":"recurrent","1m":{"price":"3.50"}}`))
	model := pricing[models.DefaultPricingKey]
	require.NotNil(t, model)
	require.Contains(t, model.Recurrent, "1M")
	assert.Equal(t, "3.50", *model.Recurrent["1M"].Price)
}

func TestPricingShapes_NonObjectInput(t *testing.T) {
	assert.Empty(t, PricingShapes("not pricing"))
	assert.Empty(t, PricingShapes(nil))
}

func TestPricingPeriod(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		wantPrice   string
		wantSetup   *string
		wantEnabled bool
	}{
		{"bare number", 9.99, "9.99", nil, true},
		{"numeric string", "12.50", "12.50", nil, true},
		{"object with aliases", map[string]any{"value": "7", "setup_fee": "1", "active": "yes"}, "7", strPtr("1"), true},
		{"disabled object", map[string]any{"price": "7", "enabled": 0}, "7", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := PricingPeriod(tt.input)
			require.NotNil(t, entry.Price)
			assert.Equal(t, tt.wantPrice, *entry.Price)
			assert.Equal(t, tt.wantSetup, entry.Setup)
			assert.Equal(t, tt.wantEnabled, entry.Enabled)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		entry := PricingPeriod([]any{"x"})
		assert.Nil(t, entry.Price)
		assert.False(t, entry.Enabled)
	})
}

func strPtr(s string) *string { return &s }
