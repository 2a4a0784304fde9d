package generate

import (
	"strings"

	"sitegen-base/pkg/models"
	"sitegen-base/pkg/normalize"
	"sitegen-base/pkg/pricing"
	"sitegen-base/pkg/sanitize"
)

// assembleBranding resolves every branding field through its fallback
// chain: company record, theme customizations, conventional theme asset
// paths, and finally the HTML probe when the theme exposes no URL.
func (g *Generator) assembleBranding(company, themeInfo, themeSettings map[string]any) models.Branding {
	themeURL := normalize.Text(normalize.PickFirst(themeInfo, []string{"url"}, ""))

	assets := models.BrandAssets{
		LogoURL: firstNonEmpty(
			normalize.Text(normalize.PickFirst(company, []string{"logo_url"}, "")),
			normalize.Text(normalize.PickFirst(themeSettings, []string{"login_page_logo_url", "logo_url"}, "")),
			themeAssetURL(themeURL, "assets/logo.svg")),
		LogoDarkURL: firstNonEmpty(
			normalize.Text(normalize.PickFirst(company, []string{"logo_url_dark"}, "")),
			normalize.Text(normalize.PickFirst(themeSettings, []string{"logo_dark_url"}, "")),
			themeAssetURL(themeURL, "assets/logo-dark.svg")),
		FaviconURL: firstNonEmpty(
			normalize.Text(normalize.PickFirst(company, []string{"favicon_url"}, "")),
			normalize.Text(normalize.PickFirst(themeSettings, []string{"favicon_url"}, "")),
			themeAssetURL(themeURL, "assets/favicon.svg")),
		HeaderBgURL: firstNonEmpty(
			normalize.Text(normalize.PickFirst(themeSettings, []string{"header_bg_url", "header_background"}, "")),
			themeAssetURL(themeURL, "assets/header-bg.jpg")),
		FooterBgURL: firstNonEmpty(
			normalize.Text(normalize.PickFirst(themeSettings, []string{"footer_bg_url", "footer_background"}, "")),
			themeAssetURL(themeURL, "assets/footer-bg.jpg")),
	}

	if g.Prober != nil && (assets.LogoURL == "" || assets.FaviconURL == "") {
		probed, err := g.Prober.Probe(strings.TrimRight(g.cfg.BaseURL, "/"))
		if err != nil {
			g.log.Debugf("brand asset probe: %v", err)
		} else {
			if assets.LogoURL == "" {
				assets.LogoURL = probed.LogoURL
			}
			if assets.FaviconURL == "" {
				assets.FaviconURL = probed.FaviconURL
			}
		}
	}

	motto := g.cfg.Branding.Motto
	if motto == "" {
		motto = normalize.Text(normalize.PickFirst(company, []string{"signature"}, ""))
	}

	return models.Branding{
		Company: models.Company{
			Name:    normalize.Text(normalize.PickFirst(company, []string{"name"}, "")),
			Email:   normalize.Text(normalize.PickFirst(company, []string{"email"}, "")),
			Phone:   normalize.Text(normalize.PickFirst(company, []string{"tel", "phone"}, "")),
			WWW:     normalize.Text(normalize.PickFirst(company, []string{"www", "website"}, "")),
			Address: normalize.Text(normalize.PickFirst(company, []string{"address_1", "address"}, "")),
			City:    normalize.Text(normalize.PickFirst(company, []string{"city"}, "")),
			Country: normalize.Text(normalize.PickFirst(company, []string{"country"}, "")),
		},
		Motto:         motto,
		BrandMark:     g.cfg.Branding.BrandMark,
		ClientAreaURL: strings.TrimRight(g.cfg.BaseURL, "/"),
		Theme: models.Theme{
			Name:    normalize.Text(normalize.PickFirst(themeInfo, []string{"name"}, "")),
			Code:    normalize.Text(normalize.PickFirst(themeInfo, []string{"code"}, "")),
			Version: normalize.Text(normalize.PickFirst(themeInfo, []string{"version"}, "")),
			URL:     themeURL,
		},
		Assets:        assets,
		FooterContent: normalize.Text(normalize.PickFirst(themeSettings, []string{"footer_content", "footer_html"}, "")),
	}
}

func themeAssetURL(themeBaseURL, assetPath string) string {
	base := strings.TrimRight(strings.TrimSpace(themeBaseURL), "/")
	if base == "" {
		return ""
	}
	return base + "/" + strings.TrimLeft(assetPath, "/")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// publicCurrencies renders the enabled currency set; the elected base
// currency is always flagged default and granted rate 1 when it has
// none of its own.
func (g *Generator) publicCurrencies(currencies map[string]models.Currency, table *pricing.Table) []models.PublicCurrency {
	out := []models.PublicCurrency{}
	for _, code := range sortedKeys(currencies) {
		currency := currencies[code]
		if !currency.Enabled {
			continue
		}
		rate := strings.TrimSpace(currency.ConversionRate)
		isDefault := currency.IsDefault
		if code == table.Base {
			isDefault = true
			if rate == "" {
				rate = "1"
			}
		}
		out = append(out, models.PublicCurrency{
			Code:           code,
			Title:          firstNonEmpty(currency.Title, code),
			Sign:           currency.Sign,
			Format:         currency.Format,
			ConversionRate: rate,
			IsDefault:      isDefault,
		})
	}
	return out
}

// publicDomains converts every TLD's register/renew/transfer prices
// into each enabled currency. Currencies without a usable rate keep the
// base-currency prices untouched.
func (g *Generator) publicDomains(tlds map[string]models.DomainTld, table *pricing.Table) []models.PublicDomain {
	out := []models.PublicDomain{}
	for _, key := range sortedKeys(tlds) {
		tld := tlds[key]
		byCurrency := map[string]models.DomainPricing{}
		for _, code := range table.Codes() {
			if multiplier, ok := table.Multiplier(code); ok {
				byCurrency[code] = pricing.ConvertDomainPricing(tld.Pricing, multiplier, table.Decimals(code))
			} else {
				byCurrency[code] = tld.Pricing
			}
		}
		out = append(out, models.PublicDomain{
			ID:            tld.ID,
			Tld:           tld.Tld,
			Enabled:       tld.Enabled,
			AllowRegister: tld.AllowRegister,
			AllowTransfer: tld.AllowTransfer,
			MinYears:      tld.MinYears,
			Pricing:       byCurrency,
		})
	}
	return out
}

func (g *Generator) publicGateways(gateways map[string]models.Gateway, table *pricing.Table) []models.PublicGateway {
	enabled := enabledSet(table)
	out := []models.PublicGateway{}
	for _, id := range sortedKeys(gateways) {
		gateway := gateways[id]
		if !gateway.Enabled {
			continue
		}
		accepted := []string{}
		seen := map[string]bool{}
		for _, raw := range gateway.AcceptedCurrencies {
			code := strings.ToUpper(strings.TrimSpace(raw))
			if code == "" || seen[code] || !enabled[code] {
				continue
			}
			seen[code] = true
			accepted = append(accepted, code)
		}
		out = append(out, models.PublicGateway{
			ID:                 firstNonEmpty(gateway.ID, id),
			Code:               gateway.Code,
			Title:              gateway.Title,
			AllowSingle:        gateway.AllowSingle,
			AllowRecurrent:     gateway.AllowRecurrent,
			AcceptedCurrencies: accepted,
		})
	}
	return out
}

func (g *Generator) publicAddons(addons map[string]*models.Product, enabled map[string]bool) []models.PublicAddon {
	out := []models.PublicAddon{}
	for _, id := range sortedKeys(addons) {
		addon := addons[id]
		if !sanitize.IsPublicAddon(addon, g.cfg.ExcludePatterns) {
			continue
		}
		sanitized := sanitize.Addon(addon, enabled)
		if sanitized.ID == "" || sanitized.Title == "" {
			continue
		}
		out = append(out, sanitized)
	}
	return out
}

// publicProductsAndCategories filters products, resolves their addon
// references against the published addon set, and keeps only categories
// that end up with at least one public product. Category titles are
// annotated onto products before visibility runs, so exclude patterns
// see them.
func (g *Generator) publicProductsAndCategories(
	products map[string]*models.Product,
	categories map[string]models.Category,
	publishedAddons []models.PublicAddon,
	enabled map[string]bool,
) ([]models.PublicProduct, []models.PublicCategory) {
	for _, id := range sortedKeys(products) {
		product := products[id]
		category, ok := categories[product.CategoryID]
		if product.CategoryID == "" || !ok {
			product.CategoryTitle = ""
			continue
		}
		category.Products = append(category.Products, id)
		categories[product.CategoryID] = category
		product.CategoryTitle = category.Title
	}

	addonSet := map[string]bool{}
	for _, addon := range publishedAddons {
		addonSet[addon.ID] = true
	}

	publicProducts := []models.PublicProduct{}
	productSet := map[string]bool{}
	for _, id := range sortedKeys(products) {
		product := products[id]
		if !sanitize.IsPublicProduct(product, g.cfg.ExcludePatterns) {
			continue
		}
		sanitized := sanitize.Product(product, enabled)
		if sanitized.ID == "" || sanitized.Title == "" {
			continue
		}
		refs := []string{}
		seen := map[string]bool{}
		for _, ref := range product.Addons {
			if ref == "" || seen[ref] || !addonSet[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
		}
		sanitized.Addons = refs
		publicProducts = append(publicProducts, sanitized)
		productSet[id] = true
	}

	publicCategories := []models.PublicCategory{}
	for _, id := range sortedKeys(categories) {
		category := categories[id]
		refs := []string{}
		seen := map[string]bool{}
		for _, ref := range category.Products {
			if seen[ref] || !productSet[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
		}
		if len(refs) == 0 {
			continue
		}
		publicCategories = append(publicCategories, models.PublicCategory{
			ID:          firstNonEmpty(category.ID, id),
			Title:       strings.TrimSpace(category.Title),
			Slug:        strings.TrimSpace(category.Slug),
			Description: strings.TrimSpace(category.Description),
			IconURL:     strings.TrimSpace(category.IconURL),
			Products:    refs,
		})
	}
	return publicProducts, publicCategories
}
