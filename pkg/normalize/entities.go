package normalize

import (
	"net/url"
	"strings"

	"sitegen-base/pkg/models"
)

// CategoryItem maps a raw category row to the canonical record.
func CategoryItem(row map[string]any) models.Category {
	return models.Category{
		ID:          Text(PickFirst(row, []string{"id", "category_id"}, "")),
		Title:       Text(PickFirst(row, []string{"title", "name", "label"}, "")),
		Slug:        Text(PickFirst(row, []string{"slug"}, "")),
		Description: Text(PickFirst(row, []string{"description"}, "")),
		IconURL:     Text(PickFirst(row, []string{"icon_url", "icon"}, "")),
		Products:    []string{},
	}
}

// ProductItem maps a raw product or addon row to the canonical record.
// billingBaseURL is used to build an order URL when the row has none.
func ProductItem(row map[string]any, billingBaseURL string) *models.Product {
	id := Text(PickFirst(row, []string{"id", "product_id"}, ""))
	slug := Text(PickFirst(row, []string{"slug"}, ""))

	orderURL := Text(PickFirst(row, []string{"order_url", "url"}, ""))
	if orderURL == "" {
		base := strings.TrimRight(billingBaseURL, "/")
		if slug != "" {
			orderURL = base + "/order/" + url.PathEscape(slug)
		} else {
			orderURL = base + "/order?product_id=" + url.QueryEscape(id)
		}
	}

	config := AsMap(PickFirst(row, []string{"config"}, nil))

	addons := []string{}
	if rawAddons, ok := PickFirst(row, []string{"addons", "addon_ids"}, nil).([]any); ok {
		for _, ref := range rawAddons {
			if ref == nil {
				continue
			}
			addons = append(addons, Text(ref))
		}
	}

	return &models.Product{
		ID:                  id,
		Title:               Text(PickFirst(row, []string{"title", "name"}, "")),
		Description:         Text(PickFirst(row, []string{"description"}, "")),
		Type:                Text(PickFirst(row, []string{"type"}, "")),
		Status:              Text(PickFirst(row, []string{"status"}, "")),
		Slug:                slug,
		OrderURL:            orderURL,
		CategoryID:          Text(PickFirst(row, []string{"product_category_id", "category_id"}, "")),
		IconURL:             Text(PickFirst(row, []string{"icon_url", "icon"}, "")),
		Hidden:              BoolLike(PickFirst(row, []string{"hidden"}, false), false),
		Setup:               Text(PickFirst(row, []string{"setup"}, "")),
		StockControl:        BoolLike(PickFirst(row, []string{"stock_control"}, false), false),
		QuantityInStock:     Text(PickFirst(row, []string{"quantity_in_stock"}, "")),
		AllowQuantitySelect: BoolLike(PickFirst(row, []string{"allow_quantity_select"}, false), false),
		Pricing:             PricingShapes(PickFirst(row, []string{"pricing"}, nil)),
		Addons:              addons,
		Config:              config,
		Limitations:         ExtractLimitations(config),
	}
}

// CurrencyItem maps a raw currency row. defaultCode marks the platform
// default when the row itself carries no flag.
func CurrencyItem(row map[string]any, defaultCode string) models.Currency {
	code := strings.ToUpper(Text(PickFirst(row, []string{"code", "currency", "currency_code"}, "")))
	apiDefault := BoolLike(PickFirst(row, []string{"default", "is_default"}, false), false)

	decimals := 2
	if parsed, ok := Float(PickFirst(row, []string{"price_format", "decimals", "precision"}, "2")); ok {
		decimals = int(parsed)
	}
	if decimals < 0 {
		decimals = 0
	}
	if decimals > 6 {
		decimals = 6
	}

	return models.Currency{
		Code:           code,
		Title:          Text(PickFirst(row, []string{"title", "name"}, code)),
		Sign:           Text(PickFirst(row, []string{"sign", "symbol"}, "")),
		Format:         Text(PickFirst(row, []string{"format"}, "")),
		ConversionRate: Text(PickFirst(row, []string{"conversion_rate", "rate"}, "")),
		PriceDecimals:  decimals,
		Enabled:        BoolLike(PickFirst(row, []string{"enabled", "active", "status"}, true), true),
		IsDefault:      apiDefault || (code != "" && strings.ToUpper(defaultCode) == code),
	}
}

// GatewayItem maps a raw payment gateway row.
func GatewayItem(row map[string]any) models.Gateway {
	accepted := []string{}
	if raw, ok := PickFirst(row, []string{"accepted_currencies"}, nil).([]any); ok {
		for _, code := range raw {
			accepted = append(accepted, Text(code))
		}
	}
	config := AsMap(PickFirst(row, []string{"config"}, nil))
	if config == nil {
		config = map[string]any{}
	}
	return models.Gateway{
		ID:                 Text(PickFirst(row, []string{"id", "gateway_id"}, "")),
		Code:               Text(PickFirst(row, []string{"gateway", "code"}, "")),
		Title:              Text(PickFirst(row, []string{"title", "name"}, "")),
		Enabled:            BoolLike(PickFirst(row, []string{"enabled", "active"}, true), true),
		AllowSingle:        BoolLike(PickFirst(row, []string{"allow_single"}, true), true),
		AllowRecurrent:     BoolLike(PickFirst(row, []string{"allow_recurrent"}, true), true),
		AcceptedCurrencies: accepted,
		Config:             config,
	}
}

// DomainTldItem maps a raw TLD row; the tld key is lowercased by the
// caller's collection, prices stay in the upstream default currency.
func DomainTldItem(row map[string]any) models.DomainTld {
	return models.DomainTld{
		ID:            Text(PickFirst(row, []string{"id"}, "")),
		Tld:           Text(PickFirst(row, []string{"tld", "extension"}, "")),
		Enabled:       BoolLike(PickFirst(row, []string{"active", "enabled", "status"}, true), true),
		AllowRegister: BoolLike(PickFirst(row, []string{"allow_register", "allow_registration", "registration_enabled"}, true), true),
		AllowTransfer: BoolLike(PickFirst(row, []string{"allow_transfer", "transfer_enabled"}, true), true),
		MinYears:      Text(PickFirst(row, []string{"min_years"}, "1")),
		Pricing: models.DomainPricing{
			Register: Text(PickFirst(row, []string{"price_registration", "register_price"}, "")),
			Renew:    Text(PickFirst(row, []string{"price_renew", "renew_price"}, "")),
			Transfer: Text(PickFirst(row, []string{"price_transfer", "transfer_price"}, "")),
		},
	}
}

// Top-level hosting plan feature fields and the limitation keys they
// promote to. Only non-zero values survive.
var hostingPlanFeatureKeys = []struct {
	apiKey        string
	limitationKey string
}{
	{"bandwidth", "bandwidth"},
	{"quota", "disk"},
	{"max_ftp", "ftp"},
	{"max_sql", "database"},
	{"max_pop", "email"},
	{"max_sub", "subdomain"},
	{"max_park", "addon"},
	{"max_addon", "addon"},
}

// HostingPlanItem maps a raw hosting plan row. Limitations come from
// the flattened config plus the promoted top-level feature fields;
// top-level fields win when both are present and non-zero.
func HostingPlanItem(row map[string]any) models.HostingPlan {
	config := AsMap(PickFirst(row, []string{"config"}, nil))

	limitations := ExtractLimitations(config)
	for _, feature := range hostingPlanFeatureKeys {
		value := Text(PickFirst(row, []string{feature.apiKey}, ""))
		if value == "" || value == "0" {
			continue
		}
		limitations[feature.limitationKey] = value
	}

	return models.HostingPlan{
		ID:          Text(PickFirst(row, []string{"id"}, "")),
		Name:        Text(PickFirst(row, []string{"name", "title"}, "")),
		Status:      Text(PickFirst(row, []string{"status"}, "")),
		Config:      config,
		Limitations: limitations,
	}
}
