// Package pricing resolves multi-currency pricing: structural equality
// of pricing models, rate conversion, and synthesis of currencies the
// upstream never priced explicitly.
package pricing

import (
	"reflect"
	"strings"

	"github.com/shopspring/decimal"

	"sitegen-base/pkg/models"
)

// FormatDecimal renders a rate with up to 8 fractional digits and
// trailing zeros trimmed.
func FormatDecimal(value decimal.Decimal) string {
	text := value.Round(8).String()
	if text == "" {
		return "0"
	}
	return text
}

// ParseAmount parses a decimal string, tolerating thousands separators.
func ParseAmount(text string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero, false
	}
	parsed, err := decimal.NewFromString(strings.ReplaceAll(trimmed, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return parsed, true
}

// ConvertAmount multiplies a decimal string by the rate multiplier and
// rounds to the target currency's precision (clamped to 0–6). Anything
// non-numeric passes through untouched.
func ConvertAmount(amount string, multiplier decimal.Decimal, decimals int) string {
	numeric, ok := ParseAmount(amount)
	if !ok {
		return amount
	}
	precision := clampPrecision(decimals)
	return numeric.Mul(multiplier).StringFixed(int32(precision))
}

func clampPrecision(decimals int) int {
	if decimals < 0 {
		return 0
	}
	if decimals > 6 {
		return 6
	}
	return decimals
}

// ConvertModel derives a new pricing model with every price and setup
// amount converted by the multiplier. The input is never mutated.
func ConvertModel(model *models.PricingModel, multiplier decimal.Decimal, decimals int) *models.PricingModel {
	if model == nil {
		return nil
	}
	out := model.Clone()
	convertEntry(out.Free, multiplier, decimals)
	convertEntry(out.Once, multiplier, decimals)
	for period, entry := range out.Recurrent {
		converted := entry
		convertEntry(&converted, multiplier, decimals)
		out.Recurrent[period] = converted
	}
	return out
}

func convertEntry(entry *models.PricingEntry, multiplier decimal.Decimal, decimals int) {
	if entry == nil {
		return
	}
	if entry.Price != nil {
		converted := ConvertAmount(*entry.Price, multiplier, decimals)
		entry.Price = &converted
	}
	if entry.Setup != nil {
		converted := ConvertAmount(*entry.Setup, multiplier, decimals)
		entry.Setup = &converted
	}
}

// ConvertDomainPricing converts register/renew/transfer prices.
func ConvertDomainPricing(pricing models.DomainPricing, multiplier decimal.Decimal, decimals int) models.DomainPricing {
	return models.DomainPricing{
		Register: ConvertAmount(pricing.Register, multiplier, decimals),
		Renew:    ConvertAmount(pricing.Renew, multiplier, decimals),
		Transfer: ConvertAmount(pricing.Transfer, multiplier, decimals),
	}
}

// ModelsEqual compares two pricing models structurally, ignoring map
// insertion order. An explicit per-currency price that is structurally
// identical to the base model is treated as never customized and
// re-derived by conversion; a manual override that happens to match the
// base exactly is indistinguishable and will be overwritten (known
// false-positive, kept for compatibility).
func ModelsEqual(left, right *models.PricingModel) bool {
	return reflect.DeepEqual(compareForm(left), compareForm(right))
}

func compareForm(model *models.PricingModel) *models.PricingModel {
	if model == nil {
		return nil
	}
	out := model.Clone()
	if out.Recurrent == nil {
		out.Recurrent = map[string]models.PricingEntry{}
	}
	out.Type = strings.TrimSpace(out.Type)
	return out
}
