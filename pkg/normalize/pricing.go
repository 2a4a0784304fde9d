package normalize

import (
	"strings"

	"sitegen-base/pkg/models"
)

// The upstream encodes pricing in three shapes with no discriminator:
//
//	A: a single currency-agnostic model ({type, free, once, recurrent})
//	B: currency code → shape-A model
//	C: currency code → bare period→price pairs (legacy)
//
// PricingShapes detects the shape structurally and returns the
// canonical per-currency map; shape A lands under
// models.DefaultPricingKey.
func PricingShapes(raw any) models.Pricing {
	root := AsMap(raw)
	if root == nil {
		return models.Pricing{}
	}

	if looksLikePricingModel(root) {
		return models.Pricing{models.DefaultPricingKey: pricingModel(root)}
	}

	out := models.Pricing{}
	for currency, value := range root {
		row := AsMap(value)
		if row == nil {
			continue
		}
		code := strings.ToUpper(currency)
		if looksLikePricingModel(row) {
			out[code] = pricingModel(row)
			continue
		}
		out[code] = legacyPeriodModel(row)
	}
	return out
}

func looksLikePricingModel(row map[string]any) bool {
	for _, key := range []string{"type", "recurrent", "free", "once"} {
		if _, ok := row[key]; ok {
			return true
		}
	}
	return false
}

func pricingModel(row map[string]any) *models.PricingModel {
	model := &models.PricingModel{
		Type:      Text(row["type"]),
		Recurrent: map[string]models.PricingEntry{},
	}

	if free, ok := row["free"]; ok {
		entry := PricingPeriod(free)
		model.Free = &entry
	}
	if once, ok := row["once"]; ok {
		entry := PricingPeriod(once)
		model.Once = &entry
	}

	if recurrent := AsMap(row["recurrent"]); recurrent != nil {
		for period, entry := range recurrent {
			model.Recurrent[strings.ToUpper(period)] = PricingPeriod(entry)
		}
		return model
	}

	// Some payloads expose periods at root level without a "recurrent"
	// wrapper.
	for period, entry := range row {
		switch strings.ToLower(period) {
		case "type", "free", "once", "recurrent":
			continue
		}
		if AsMap(entry) == nil && !IsNumeric(entry) {
			continue
		}
		model.Recurrent[strings.ToUpper(period)] = PricingPeriod(entry)
	}
	return model
}

func legacyPeriodModel(row map[string]any) *models.PricingModel {
	model := &models.PricingModel{
		Recurrent: map[string]models.PricingEntry{},
	}
	if free, ok := row["free"]; ok {
		entry := PricingPeriod(free)
		model.Free = &entry
	}
	if once, ok := row["once"]; ok {
		entry := PricingPeriod(once)
		model.Once = &entry
	}
	for period, value := range row {
		switch strings.ToLower(period) {
		case "free", "once", "type":
			continue
		}
		model.Recurrent[strings.ToUpper(period)] = PricingPeriod(value)
	}
	return model
}

// PricingPeriod normalizes one billing-period entry: either a bare
// numeric price or an object with aliased price/setup/enabled keys.
func PricingPeriod(value any) models.PricingEntry {
	if IsNumeric(value) {
		price := Stringify(value)
		if s, ok := value.(string); ok {
			price = strings.TrimSpace(s)
		}
		return models.PricingEntry{Price: &price, Enabled: true}
	}

	row := AsMap(value)
	if row == nil {
		return models.PricingEntry{Enabled: false}
	}

	entry := models.PricingEntry{
		Enabled: BoolLike(PickFirst(row, []string{"enabled", "active", "status"}, true), true),
	}
	if price := PickFirst(row, []string{"price", "value", "amount", "m_renewal_price"}, nil); price != nil {
		text := Stringify(price)
		entry.Price = &text
	}
	if setup := PickFirst(row, []string{"setup", "setup_price", "setup_fee"}, nil); setup != nil {
		text := Stringify(setup)
		entry.Setup = &text
	}
	return entry
}
