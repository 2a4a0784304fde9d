package models

// Document is the single JSON payload the static front end consumes.
// All list members are sorted by their canonical key before encoding.
type Document struct {
	Meta                   Meta             `json:"meta"`
	Branding               Branding         `json:"branding"`
	Categories             []PublicCategory `json:"categories"`
	Products               []PublicProduct  `json:"products"`
	Addons                 []PublicAddon    `json:"addons"`
	Currencies             []PublicCurrency `json:"currencies"`
	Domains                []PublicDomain   `json:"domains"`
	CurrencyRates          CurrencyRates    `json:"currency_rates"`
	Gateways               []PublicGateway  `json:"gateways"`
	DomainRegistrationSlug string           `json:"domain_registration_slug"`
}

type Meta struct {
	GeneratedAt     string            `json:"generated_at"`
	Generator       string            `json:"generator"`
	PublicSiteURL   string            `json:"public_site_url"`
	BillingBaseURL  string            `json:"billing_base_url"`
	DefaultCurrency string            `json:"default_currency"`
	CustomAssets    map[string]string `json:"custom_assets"`
	Counts          Counts            `json:"counts"`
}

type Counts struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Addons     int `json:"addons"`
	Currencies int `json:"currencies"`
	Domains    int `json:"domains"`
	Gateways   int `json:"gateways"`
}

type Branding struct {
	Company       Company     `json:"company"`
	Motto         string      `json:"motto"`
	BrandMark     string      `json:"brand_mark"`
	ClientAreaURL string      `json:"clientarea_url"`
	Theme         Theme       `json:"theme"`
	Assets        BrandAssets `json:"assets"`
	FooterContent string      `json:"footer_content"`
}

type Company struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	WWW     string `json:"www"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Theme struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

type BrandAssets struct {
	LogoURL     string `json:"logo_url"`
	LogoDarkURL string `json:"logo_dark_url"`
	FaviconURL  string `json:"favicon_url"`
	HeaderBgURL string `json:"header_bg_url"`
	FooterBgURL string `json:"footer_bg_url"`
}

type PublicCategory struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	IconURL     string   `json:"icon_url"`
	Products    []string `json:"products"`
}

type PublicProduct struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Slug          string    `json:"slug"`
	Type          string    `json:"type"`
	OrderURL      string    `json:"order_url"`
	IconURL       string    `json:"icon_url"`
	CategoryID    string    `json:"category_id"`
	CategoryTitle string    `json:"category_title"`
	Pricing       Pricing   `json:"pricing"`
	Features      []Feature `json:"features"`
	Addons        []string  `json:"addons"`
}

type PublicAddon struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Slug        string         `json:"slug"`
	OrderURL    string         `json:"order_url"`
	IconURL     string         `json:"icon_url"`
	Pricing     Pricing        `json:"pricing"`
	Limitations map[string]any `json:"limitations"`
}

type PublicCurrency struct {
	Code           string `json:"code"`
	Title          string `json:"title"`
	Sign           string `json:"sign"`
	Format         string `json:"format"`
	ConversionRate string `json:"conversion_rate"`
	IsDefault      bool   `json:"is_default"`
}

type PublicDomain struct {
	ID            string                   `json:"id"`
	Tld           string                   `json:"tld"`
	Enabled       bool                     `json:"enabled"`
	AllowRegister bool                     `json:"allow_register"`
	AllowTransfer bool                     `json:"allow_transfer"`
	MinYears      string                   `json:"min_years"`
	Pricing       map[string]DomainPricing `json:"pricing"`
}

type PublicGateway struct {
	ID                 string   `json:"id"`
	Code               string   `json:"code"`
	Title              string   `json:"title"`
	AllowSingle        bool     `json:"allow_single"`
	AllowRecurrent     bool     `json:"allow_recurrent"`
	AcceptedCurrencies []string `json:"accepted_currencies"`
}

// CurrencyRates exposes conversion data relative to the base currency.
// Relations[from][to] is rate(to)/rate(from) as an 8-digit trimmed
// decimal string.
type CurrencyRates struct {
	BaseCurrency string                       `json:"base_currency"`
	RatesToBase  map[string]string            `json:"rates_to_base"`
	Relations    map[string]map[string]string `json:"relations"`
}
