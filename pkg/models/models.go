package models

// DefaultPricingKey marks a pricing model that the upstream returned
// without a currency code. It is resolved to real currencies before
// publication.
const DefaultPricingKey = "__DEFAULT"

// PricingEntry is one billing-period price. Price and Setup are decimal
// strings; nil means the upstream did not report a value.
type PricingEntry struct {
	Price   *string `json:"price"`
	Setup   *string `json:"setup"`
	Enabled bool    `json:"enabled"`
}

// PricingModel describes one entity's price across billing periods for
// a single currency. Recurrent is keyed by period code (1M, 1Y, ...).
type PricingModel struct {
	Type      string                  `json:"type"`
	Free      *PricingEntry           `json:"free"`
	Once      *PricingEntry           `json:"once"`
	Recurrent map[string]PricingEntry `json:"recurrent"`
}

// Clone returns a deep copy, so conversions never alias the base model.
func (m *PricingModel) Clone() *PricingModel {
	if m == nil {
		return nil
	}
	out := &PricingModel{Type: m.Type}
	out.Free = m.Free.clone()
	out.Once = m.Once.clone()
	if m.Recurrent != nil {
		out.Recurrent = make(map[string]PricingEntry, len(m.Recurrent))
		for period, entry := range m.Recurrent {
			out.Recurrent[period] = *entry.clone()
		}
	}
	return out
}

func (e *PricingEntry) clone() *PricingEntry {
	if e == nil {
		return nil
	}
	out := &PricingEntry{Enabled: e.Enabled}
	if e.Price != nil {
		price := *e.Price
		out.Price = &price
	}
	if e.Setup != nil {
		setup := *e.Setup
		out.Setup = &setup
	}
	return out
}

// Pricing maps currency code (or DefaultPricingKey) to a model.
type Pricing map[string]*PricingModel

type Category struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	IconURL     string   `json:"icon_url"`
	Products    []string `json:"products"`
}

// Product is the canonical record for both products and addons; the
// upstream serves them through near-identical payloads.
type Product struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Type                string          `json:"type"`
	Status              string          `json:"status"`
	Slug                string          `json:"slug"`
	OrderURL            string          `json:"order_url"`
	CategoryID          string          `json:"category_id"`
	CategoryTitle       string          `json:"category_title"`
	IconURL             string          `json:"icon_url"`
	Hidden              bool            `json:"hidden"`
	Setup               string          `json:"setup"`
	StockControl        bool            `json:"stock_control"`
	QuantityInStock     string          `json:"quantity_in_stock"`
	AllowQuantitySelect bool            `json:"allow_quantity_select"`
	Pricing             Pricing         `json:"pricing"`
	Addons              []string        `json:"addons"`
	Config              map[string]any  `json:"config"`
	Limitations         map[string]any  `json:"limitations"`
	HostingPlan         *HostingPlanRef `json:"hosting_plan,omitempty"`
}

type HostingPlanRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type HostingPlan struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Status      string         `json:"status"`
	Config      map[string]any `json:"config"`
	Limitations map[string]any `json:"limitations"`
}

type Currency struct {
	Code           string `json:"code"`
	Title          string `json:"title"`
	Sign           string `json:"sign"`
	Format         string `json:"format"`
	ConversionRate string `json:"conversion_rate"`
	PriceDecimals  int    `json:"price_decimals"`
	Enabled        bool   `json:"enabled"`
	IsDefault      bool   `json:"is_default"`
}

type Gateway struct {
	ID                 string         `json:"id"`
	Code               string         `json:"code"`
	Title              string         `json:"title"`
	Enabled            bool           `json:"enabled"`
	AllowSingle        bool           `json:"allow_single"`
	AllowRecurrent     bool           `json:"allow_recurrent"`
	AcceptedCurrencies []string       `json:"accepted_currencies"`
	Config             map[string]any `json:"config"`
}

// DomainPricing carries register/renew/transfer prices as decimal
// strings for one currency.
type DomainPricing struct {
	Register string `json:"register"`
	Renew    string `json:"renew"`
	Transfer string `json:"transfer"`
}

type DomainTld struct {
	ID            string        `json:"id"`
	Tld           string        `json:"tld"`
	Enabled       bool          `json:"enabled"`
	AllowRegister bool          `json:"allow_register"`
	AllowTransfer bool          `json:"allow_transfer"`
	MinYears      string        `json:"min_years"`
	Pricing       DomainPricing `json:"pricing"`
}

// Feature is a user-facing quota derived from limitations.
type Feature struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
