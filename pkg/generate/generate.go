// Package generate runs the whole pipeline: fetch every collection from
// the billing API, reconcile and enrich the records, refresh pricing
// per currency, and assemble the public document. Failures inside a
// collection become warnings; the run always produces a best-effort
// document.
package generate

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"sitegen-base/pkg/billing"
	"sitegen-base/pkg/brandassets"
	"sitegen-base/pkg/config"
	"sitegen-base/pkg/models"
	"sitegen-base/pkg/pricing"
)

// GeneratorName is published in meta.generator.
const GeneratorName = "sitegen-base"

// AssetProber discovers brand assets from a public HTML page.
type AssetProber interface {
	Probe(pageURL string) (models.BrandAssets, error)
}

type Generator struct {
	cfg *config.Config
	api *billing.Client
	log *zap.SugaredLogger

	// Prober may be replaced or set to nil to skip HTML asset discovery.
	Prober AssetProber

	mu       sync.Mutex
	warnings []string
}

func New(cfg *config.Config, api *billing.Client, log *zap.SugaredLogger) *Generator {
	return &Generator{
		cfg:    cfg,
		api:    api,
		log:    log,
		Prober: brandassets.NewProber(cfg.Timeout),
	}
}

// Warnings returns a copy of the warnings accumulated so far.
func (g *Generator) Warnings() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.warnings))
	copy(out, g.warnings)
	return out
}

func (g *Generator) warn(context string, err error) {
	message := fmt.Sprintf("%s: %v", context, err)
	g.mu.Lock()
	g.warnings = append(g.warnings, message)
	g.mu.Unlock()
	g.log.Debug(message)
}

// Run executes one full generation pass.
func (g *Generator) Run() *models.Document {
	company, themeInfo, themeSettings := g.fetchBranding()
	categories := g.fetchCategories()
	products := g.fetchProducts()
	addons := g.fetchAddons()

	plans := g.fetchHostingPlans()
	g.attachHostingPlans(products, plans)

	currencies, defaultCode := g.fetchCurrencies()
	table := pricing.BuildTable(currencies, defaultCode)

	// The registration product must be found before domain/tld products
	// are filtered out of the public set.
	domainSlug := domainRegistrationSlug(products)
	tlds := g.fetchDomainTlds()

	g.refreshPricing(products, addons, table)
	gateways := g.fetchGateways()

	g.log.Infof("fetched %d categories, %d products, %d addons, %d currencies, %d tlds, %d gateways",
		len(categories), len(products), len(addons), len(currencies), len(tlds), len(gateways))

	doc := &models.Document{
		Branding:               g.assembleBranding(company, themeInfo, themeSettings),
		Currencies:             g.publicCurrencies(currencies, table),
		Domains:                g.publicDomains(tlds, table),
		Gateways:               g.publicGateways(gateways, table),
		DomainRegistrationSlug: domainSlug,
		CurrencyRates: models.CurrencyRates{
			BaseCurrency: table.Base,
			RatesToBase:  table.RatesToBase(),
			Relations:    table.Relations(),
		},
	}

	enabled := enabledSet(table)
	doc.Addons = g.publicAddons(addons, enabled)
	doc.Products, doc.Categories = g.publicProductsAndCategories(products, categories, doc.Addons, enabled)

	doc.Meta = models.Meta{
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Generator:       GeneratorName,
		PublicSiteURL:   g.cfg.PublicURL,
		BillingBaseURL:  g.cfg.BaseURL,
		DefaultCurrency: table.Base,
		CustomAssets:    customAssets(g.cfg.Branding),
		Counts: models.Counts{
			Categories: len(doc.Categories),
			Products:   len(doc.Products),
			Addons:     len(doc.Addons),
			Currencies: len(doc.Currencies),
			Domains:    len(doc.Domains),
			Gateways:   len(doc.Gateways),
		},
	}
	return doc
}

func enabledSet(table *pricing.Table) map[string]bool {
	enabled := map[string]bool{}
	for _, code := range table.Codes() {
		enabled[code] = true
	}
	return enabled
}

// customAssets keeps only the env overrides actually set; an empty map
// is published as null.
func customAssets(branding config.BrandingOverrides) map[string]string {
	assets := map[string]string{}
	for key, value := range map[string]string{
		"logo_url":      branding.LogoURL,
		"logo_dark_url": branding.LogoDarkURL,
		"favicon_url":   branding.FaviconURL,
		"header_bg_url": branding.HeaderBgURL,
		"footer_bg_url": branding.FooterBgURL,
	} {
		if value != "" {
			assets[key] = value
		}
	}
	if len(assets) == 0 {
		return nil
	}
	return assets
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
