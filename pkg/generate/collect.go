package generate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sitegen-base/pkg/billing"
	"sitegen-base/pkg/logger"
	"sitegen-base/pkg/models"
	"sitegen-base/pkg/normalize"
	"sitegen-base/pkg/sanitize"
)

func (g *Generator) fetchBranding() (company, themeInfo, themeSettings map[string]any) {
	result, err := g.api.CallWithFallback(billing.ScopeGuest, []string{"system/company"}, nil)
	if err != nil {
		g.warn("company_info", err)
	} else {
		company = normalize.AsMap(result)
	}

	themeResult, err := g.api.CallWithFallback(billing.ScopeGuest, []string{"extension/theme"}, map[string]any{"client": 1})
	if err != nil {
		g.warn("theme_info", err)
		return company, themeInfo, themeSettings
	}
	themeInfo = normalize.AsMap(themeResult)

	// Theme customizations live in the extension metadata, keyed by the
	// theme code.
	themeCode := normalize.Text(normalize.PickFirst(themeInfo, []string{"code", "name"}, ""))
	if themeCode != "" {
		configResult, err := g.api.CallWithFallback(billing.ScopeAdmin, []string{"extension/config_get"},
			map[string]any{"ext": "theme_" + themeCode})
		if err != nil {
			g.warn("theme_config_get", err)
		} else {
			themeSettings = normalize.AsMap(configResult)
		}
	}
	return company, themeInfo, themeSettings
}

// fetchCategories seeds categories from the id→title pairs endpoint and
// fills their gaps from the paginated guest listing.
func (g *Generator) fetchCategories() map[string]models.Category {
	categories := map[string]models.Category{}

	pairsRaw, err := g.api.CallWithFallback(billing.ScopeAdmin, []string{"product/category_get_pairs"}, nil)
	if err != nil {
		g.warn("category_pairs", err)
	} else {
		for id, title := range normalize.FlattenPairs(pairsRaw) {
			categories[id] = models.Category{ID: id, Title: title, Products: []string{}}
		}
	}

	list, err := g.api.FetchPaginated(billing.ScopeGuest, []string{"product/category_get_list"}, nil, g.cfg.PerPage, g.cfg.MaxPages)
	if err != nil {
		g.warn("category_list", err)
		return categories
	}
	for _, raw := range list {
		row := normalize.AsMap(raw)
		if row == nil {
			continue
		}
		incoming := normalize.CategoryItem(row)
		if incoming.ID == "" {
			continue
		}
		categories[incoming.ID] = normalize.FillCategory(categories[incoming.ID], incoming)
	}
	return categories
}

// fetchProducts harvests the admin product listing (guest fallback) and
// enriches every product through the detail endpoint. The detail record
// is the merge base; the listing fills its gaps.
func (g *Generator) fetchProducts() map[string]*models.Product {
	products := map[string]*models.Product{}

	list, err := g.api.FetchPaginated(billing.ScopeAdmin, []string{"product/get_list"},
		map[string]any{"show_hidden": true}, g.cfg.PerPage, g.cfg.MaxPages)
	if err != nil || len(list) == 0 {
		guestList, guestErr := g.api.FetchPaginated(billing.ScopeGuest, []string{"product/get_list"},
			map[string]any{"show_hidden": true}, g.cfg.PerPage, g.cfg.MaxPages)
		if guestErr != nil {
			if err == nil {
				err = guestErr
			}
			g.warn("products", err)
			return products
		}
		list = guestList
	}

	for _, raw := range list {
		row := normalize.AsMap(raw)
		if row == nil {
			continue
		}
		product := normalize.ProductItem(row, g.cfg.BaseURL)
		if product.ID == "" {
			continue
		}
		products[product.ID] = product
	}

	for _, id := range sortedKeys(products) {
		logger.Dedup(g.log, "fetching product details")
		details, err := g.api.CallWithFallback(billing.ScopeAdmin, []string{"product/get"}, map[string]any{"id": id})
		if err != nil {
			details, err = g.api.CallWithFallback(billing.ScopeGuest, []string{"product/get"}, map[string]any{"id": id})
		}
		if err != nil {
			g.warn(fmt.Sprintf("product_%s_details", id), err)
			continue
		}
		row := normalize.AsMap(details)
		if row == nil {
			continue
		}
		detailed := normalize.ProductItem(row, g.cfg.BaseURL)
		normalize.FillProduct(detailed, products[id])
		products[id] = detailed
	}
	return products
}

// fetchAddons seeds addons from the pairs endpoint and enriches each
// through the addon detail call. Addon order URLs point at the public
// site, not the billing install.
func (g *Generator) fetchAddons() map[string]*models.Product {
	addons := map[string]*models.Product{}

	pairsRaw, err := g.api.CallWithFallback(billing.ScopeAdmin, []string{"product/addon_get_pairs"}, nil)
	if err != nil {
		g.warn("addons", err)
		return addons
	}
	for id, title := range normalize.FlattenPairs(pairsRaw) {
		addons[id] = &models.Product{ID: id, Title: title, Pricing: models.Pricing{}, Addons: []string{}}
	}

	for _, id := range sortedKeys(addons) {
		logger.Dedup(g.log, "fetching addon details")
		details, err := g.api.CallWithFallback(billing.ScopeAdmin, []string{"product/addon_get"}, map[string]any{"id": id})
		if err != nil {
			g.warn(fmt.Sprintf("addon_%s", id), err)
			continue
		}
		row := normalize.AsMap(details)
		if row == nil {
			continue
		}
		normalize.FillProduct(addons[id], normalize.ProductItem(row, g.cfg.PublicURL))
	}
	return addons
}

func (g *Generator) fetchHostingPlans() map[string]models.HostingPlan {
	plans := map[string]models.HostingPlan{}

	list, err := g.api.FetchPaginated(billing.ScopeAdmin, []string{"servicehosting/hp_get_list"}, nil, g.cfg.PerPage, g.cfg.MaxPages)
	if err != nil {
		g.warn("hosting_plans", err)
		return plans
	}
	for _, raw := range list {
		row := normalize.AsMap(raw)
		if row == nil {
			continue
		}
		plan := normalize.HostingPlanItem(row)
		if plan.ID == "" {
			continue
		}
		plans[plan.ID] = plan
	}

	for _, id := range sortedKeys(plans) {
		details, err := g.api.CallWithFallback(billing.ScopeAdmin, []string{"servicehosting/hp_get"}, map[string]any{"id": id})
		if err != nil {
			g.warn(fmt.Sprintf("hosting_plan_%s", id), err)
			continue
		}
		row := normalize.AsMap(details)
		if row == nil {
			continue
		}
		plans[id] = normalize.FillHostingPlan(plans[id], normalize.HostingPlanItem(row))
	}
	return plans
}

// attachHostingPlans links each product to its plan by config id
// reference, falling back to a case-insensitive name match. Plan
// limitations fill in under the product's own non-zero values.
func (g *Generator) attachHostingPlans(products map[string]*models.Product, plans map[string]models.HostingPlan) {
	byName := map[string]models.HostingPlan{}
	for _, plan := range plans {
		if plan.Name != "" {
			byName[strings.ToLower(plan.Name)] = plan
		}
	}

	for _, id := range sortedKeys(products) {
		product := products[id]
		idRef := normalize.Text(normalize.PickFirst(product.Config,
			[]string{"plan_id", "hosting_plan_id", "hp_id", "service_hosting_hp_id"}, ""))
		nameRef := normalize.Lower(normalize.PickFirst(product.Config, []string{"plan", "hosting_plan", "name"}, ""))

		var plan models.HostingPlan
		found := false
		if idRef != "" {
			plan, found = plans[idRef]
		}
		if !found && nameRef != "" {
			plan, found = byName[nameRef]
		}
		if !found {
			continue
		}

		product.HostingPlan = &models.HostingPlanRef{ID: plan.ID, Name: plan.Name}
		merged := map[string]any{}
		for key, value := range plan.Limitations {
			merged[key] = value
		}
		for key, value := range product.Limitations {
			if text := normalize.Text(value); text != "" && text != "0" {
				merged[key] = value
			}
		}
		product.Limitations = merged
	}
}

func (g *Generator) fetchCurrencies() (map[string]models.Currency, string) {
	defaultCode := ""
	defaultRaw, err := g.api.CallWithFallback(billing.ScopeAdmin, []string{"currency/get_default"}, nil)
	if err != nil {
		g.warn("currency_default", err)
	} else {
		defaultCode = strings.ToUpper(normalize.Text(
			normalize.PickFirst(normalize.AsMap(defaultRaw), []string{"code", "currency", "currency_code"}, "")))
	}

	currencies := map[string]models.Currency{}
	list, err := g.api.FetchPaginated(billing.ScopeAdmin, []string{"currency/get_list"}, nil, g.cfg.PerPage, g.cfg.MaxPages)
	if err != nil {
		g.warn("currency_list", err)
	}
	for _, raw := range list {
		row := normalize.AsMap(raw)
		if row == nil {
			continue
		}
		currency := normalize.CurrencyItem(row, defaultCode)
		if currency.Code == "" {
			continue
		}
		currencies[currency.Code] = currency
	}

	if len(currencies) == 0 {
		pairs, err := g.api.CallWithFallback(billing.ScopeGuest, []string{"currency/get_pairs"}, nil)
		if err != nil {
			g.warn("currency_pairs", err)
			return currencies, defaultCode
		}
		for code, title := range normalize.FlattenPairs(pairs) {
			upper := strings.ToUpper(code)
			rate := ""
			if upper == defaultCode {
				rate = "1"
			}
			currencies[upper] = models.Currency{
				Code:           upper,
				Title:          title,
				ConversionRate: rate,
				PriceDecimals:  2,
				Enabled:        true,
				IsDefault:      upper == defaultCode,
			}
		}
	}
	return currencies, defaultCode
}

// fetchDomainTlds harvests the TLD catalog, keyed by lowercased tld.
// The guest listing is consulted only when the admin one fails, not
// when it is merely empty. Disabled TLDs are dropped here.
func (g *Generator) fetchDomainTlds() map[string]models.DomainTld {
	tlds := map[string]models.DomainTld{}

	collect := func(list []any) {
		for _, raw := range list {
			row := normalize.AsMap(raw)
			if row == nil {
				continue
			}
			tld := normalize.DomainTldItem(row)
			key := strings.ToLower(tld.Tld)
			if key == "" || !tld.Enabled {
				continue
			}
			tld.Tld = key
			tlds[key] = tld
		}
	}

	list, err := g.api.FetchPaginated(billing.ScopeAdmin, []string{"servicedomain/tld_get_list"}, nil, g.cfg.PerPage, g.cfg.MaxPages)
	if err == nil {
		collect(list)
		return tlds
	}
	g.warn("domain_tlds_admin", err)

	list, err = g.api.FetchPaginated(billing.ScopeGuest, []string{"servicedomain/tld_get_list"}, nil, g.cfg.PerPage, g.cfg.MaxPages)
	if err != nil {
		g.warn("domain_tlds_guest", err)
		return tlds
	}
	collect(list)
	return tlds
}

// fetchGateways walks three progressively weaker sources: the admin
// listing, the admin pairs endpoint, the guest gateway list. Rows with
// neither id nor code get a synthetic one.
func (g *Generator) fetchGateways() map[string]models.Gateway {
	gateways := map[string]models.Gateway{}

	keyFor := func(gateway models.Gateway) string {
		if gateway.ID != "" {
			return gateway.ID
		}
		if gateway.Code != "" {
			return gateway.Code
		}
		return "gw_" + uuid.NewString()
	}

	list, err := g.api.FetchPaginated(billing.ScopeAdmin, []string{"invoice/gateway_get_list"}, nil, g.cfg.PerPage, g.cfg.MaxPages)
	if err != nil {
		g.warn("gateway_list", err)
	}
	for _, raw := range list {
		row := normalize.AsMap(raw)
		if row == nil {
			continue
		}
		gateway := normalize.GatewayItem(row)
		gateways[keyFor(gateway)] = gateway
	}
	if len(gateways) > 0 {
		return gateways
	}

	pairs, err := g.api.CallWithFallback(billing.ScopeAdmin, []string{"invoice/gateway_get_pairs"}, nil)
	if err != nil {
		g.warn("gateway_pairs", err)
	} else {
		for id, title := range normalize.FlattenPairs(pairs) {
			gateways[id] = models.Gateway{
				ID: id, Title: title,
				Enabled: true, AllowSingle: true, AllowRecurrent: true,
				AcceptedCurrencies: []string{}, Config: map[string]any{},
			}
		}
	}
	if len(gateways) > 0 {
		return gateways
	}

	guestRaw, err := g.api.CallWithFallback(billing.ScopeGuest, []string{"invoice/gateways"}, nil)
	if err != nil {
		g.warn("guest_gateways", err)
		return gateways
	}
	for _, raw := range billing.AsItemList(guestRaw) {
		row := normalize.AsMap(raw)
		if row == nil {
			continue
		}
		gateway := normalize.GatewayItem(row)
		gateways[keyFor(gateway)] = gateway
	}
	return gateways
}

// domainRegistrationSlug returns the slug of the first public product
// of type domain/tld, in id order.
func domainRegistrationSlug(products map[string]*models.Product) string {
	for _, id := range sortedKeys(products) {
		product := products[id]
		productType := strings.ToLower(product.Type)
		if productType != "domain" && productType != "tld" {
			continue
		}
		if !sanitize.StatusIsPublic(product.Status, true) {
			continue
		}
		if slug := strings.TrimSpace(product.Slug); slug != "" {
			return slug
		}
	}
	return ""
}
