package normalize

import "sitegen-base/pkg/models"

// MergeNonEmpty fills only the gaps of base from incoming: a key that
// already holds a non-empty value in base is never overwritten, nested
// objects merge recursively. Neither argument is mutated. Merging a map
// with itself returns an equal map.
func MergeNonEmpty(base, incoming map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(incoming))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range incoming {
		current, exists := out[key]
		if !exists {
			out[key] = value
			continue
		}
		baseMap, baseIsMap := current.(map[string]any)
		incomingMap, incomingIsMap := value.(map[string]any)
		if baseIsMap && incomingIsMap {
			out[key] = MergeNonEmpty(baseMap, incomingMap)
			continue
		}
		if isEmptyValue(current) {
			out[key] = value
		}
	}
	return out
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func fillString(base *string, incoming string) {
	if *base == "" {
		*base = incoming
	}
}

// FillCategory fills base's empty fields from incoming and returns it.
func FillCategory(base, incoming models.Category) models.Category {
	fillString(&base.Title, incoming.Title)
	fillString(&base.Slug, incoming.Slug)
	fillString(&base.Description, incoming.Description)
	fillString(&base.IconURL, incoming.IconURL)
	if len(base.Products) == 0 {
		base.Products = incoming.Products
	}
	return base
}

// FillProduct fills base's gaps from incoming in place. Pricing merges
// per currency: a currency model already present in base stays as-is.
func FillProduct(base, incoming *models.Product) {
	if base == nil || incoming == nil {
		return
	}
	fillString(&base.ID, incoming.ID)
	fillString(&base.Title, incoming.Title)
	fillString(&base.Description, incoming.Description)
	fillString(&base.Type, incoming.Type)
	fillString(&base.Status, incoming.Status)
	fillString(&base.Slug, incoming.Slug)
	fillString(&base.OrderURL, incoming.OrderURL)
	fillString(&base.CategoryID, incoming.CategoryID)
	fillString(&base.CategoryTitle, incoming.CategoryTitle)
	fillString(&base.IconURL, incoming.IconURL)
	fillString(&base.Setup, incoming.Setup)
	fillString(&base.QuantityInStock, incoming.QuantityInStock)
	if len(base.Addons) == 0 {
		base.Addons = incoming.Addons
	}
	if base.Pricing == nil {
		base.Pricing = models.Pricing{}
	}
	for currency, model := range incoming.Pricing {
		if _, exists := base.Pricing[currency]; !exists {
			base.Pricing[currency] = model.Clone()
		}
	}
	base.Config = MergeNonEmpty(base.Config, incoming.Config)
	base.Limitations = MergeNonEmpty(base.Limitations, incoming.Limitations)
	if base.HostingPlan == nil {
		base.HostingPlan = incoming.HostingPlan
	}
}

// FillHostingPlan fills base's gaps from incoming and returns it.
func FillHostingPlan(base, incoming models.HostingPlan) models.HostingPlan {
	fillString(&base.ID, incoming.ID)
	fillString(&base.Name, incoming.Name)
	fillString(&base.Status, incoming.Status)
	base.Config = MergeNonEmpty(base.Config, incoming.Config)
	base.Limitations = MergeNonEmpty(base.Limitations, incoming.Limitations)
	return base
}
