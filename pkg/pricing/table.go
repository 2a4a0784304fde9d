package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"sitegen-base/pkg/models"
)

// Table holds the enabled currencies of one run: their conversion
// rates relative to the platform default, their price precision, and
// the elected base currency (rate = 1).
type Table struct {
	Base     string
	codes    []string
	rates    map[string]decimal.Decimal
	decimals map[string]int
}

// BuildTable elects the base currency and collects rates from the
// enabled currency set. Election is deterministic: the lexically first
// currency flagged as default by the upstream wins; otherwise the
// configured default code when enabled; otherwise the lexically first
// enabled code. The elected base is granted rate 1 when it has none.
func BuildTable(currencies map[string]models.Currency, configuredDefault string) *Table {
	table := &Table{
		rates:    map[string]decimal.Decimal{},
		decimals: map[string]int{},
	}

	flagged := []string{}
	for code, currency := range currencies {
		if !currency.Enabled {
			continue
		}
		upper := strings.ToUpper(code)
		table.codes = append(table.codes, upper)
		table.decimals[upper] = clampPrecision(currency.PriceDecimals)
		if rate, ok := ParseAmount(currency.ConversionRate); ok && rate.IsPositive() {
			table.rates[upper] = rate
		}
		if currency.IsDefault {
			flagged = append(flagged, upper)
		}
	}
	sort.Strings(table.codes)
	sort.Strings(flagged)

	configured := strings.ToUpper(configuredDefault)
	switch {
	case len(flagged) > 0:
		table.Base = flagged[0]
	case configured != "" && table.has(configured):
		table.Base = configured
	case len(table.codes) > 0:
		table.Base = table.codes[0]
	}

	if table.Base != "" {
		if _, ok := table.rates[table.Base]; !ok {
			table.rates[table.Base] = decimal.NewFromInt(1)
		}
	}
	return table
}

func (t *Table) has(code string) bool {
	for _, c := range t.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Codes returns the enabled currency codes in lexical order.
func (t *Table) Codes() []string {
	return t.codes
}

// Rate returns the base-relative conversion rate for a currency.
func (t *Table) Rate(code string) (decimal.Decimal, bool) {
	rate, ok := t.rates[strings.ToUpper(code)]
	return rate, ok
}

// Decimals returns the configured price precision for a currency.
func (t *Table) Decimals(code string) int {
	if d, ok := t.decimals[strings.ToUpper(code)]; ok {
		return d
	}
	return 2
}

// Multiplier returns rate(target)/rate(base); false when either rate
// is unknown or the base rate is not positive.
func (t *Table) Multiplier(target string) (decimal.Decimal, bool) {
	baseRate, okBase := t.rates[t.Base]
	targetRate, okTarget := t.rates[strings.ToUpper(target)]
	if !okBase || !okTarget || !baseRate.IsPositive() {
		return decimal.Zero, false
	}
	return targetRate.Div(baseRate), true
}

// Synthesize fills pricing for every enabled currency from the base
// model: a currency with no explicit model, or whose model is
// structurally identical to the base (never customized), gets the base
// converted by its rate. Currencies without a usable rate are skipped.
func (t *Table) Synthesize(pricing models.Pricing, base *models.PricingModel) {
	if base == nil || t.Base == "" {
		return
	}
	for _, code := range t.codes {
		if code == t.Base {
			pricing[code] = base.Clone()
			continue
		}
		multiplier, ok := t.Multiplier(code)
		if !ok {
			continue
		}
		existing, present := pricing[code]
		if present && existing != nil && !ModelsEqual(existing, base) {
			continue
		}
		pricing[code] = ConvertModel(base, multiplier, t.Decimals(code))
	}
}

// RatesToBase renders the base-relative rate of each currency as an
// 8-digit trimmed decimal string.
func (t *Table) RatesToBase() map[string]string {
	out := map[string]string{}
	for code, rate := range t.rates {
		if !rate.IsPositive() {
			continue
		}
		out[code] = FormatDecimal(rate)
	}
	return out
}

// Relations renders the full cross-rate matrix:
// Relations[from][to] = rate(to)/rate(from).
func (t *Table) Relations() map[string]map[string]string {
	out := map[string]map[string]string{}
	for from, fromRate := range t.rates {
		if !fromRate.IsPositive() {
			continue
		}
		row := map[string]string{}
		for to, toRate := range t.rates {
			if !toRate.IsPositive() {
				continue
			}
			row[to] = FormatDecimal(toRate.Div(fromRate))
		}
		out[from] = row
	}
	return out
}
