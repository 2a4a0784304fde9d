package generate

import (
	"fmt"
	"sync"

	"sitegen-base/pkg/billing"
	"sitegen-base/pkg/logger"
	"sitegen-base/pkg/models"
	"sitegen-base/pkg/normalize"
	"sitegen-base/pkg/pricing"
)

// refreshPricing re-fetches every product's and addon's pricing once
// per enabled currency and synthesizes the currencies the upstream
// never priced explicitly. Entities are refreshed on a bounded worker
// pool; each worker owns its record, warnings go through the shared
// lock, and one entity's failure never stops the others.
func (g *Generator) refreshPricing(products, addons map[string]*models.Product, table *pricing.Table) {
	if len(table.Codes()) == 0 || table.Base == "" {
		return
	}

	sem := make(chan struct{}, g.cfg.Concurrency)
	var wg sync.WaitGroup

	run := func(kind string, id string, record *models.Product, methods []string) {
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			g.refreshEntity(kind, id, record, methods, table)
		}()
	}

	for _, id := range sortedKeys(products) {
		run("product", id, products[id], []string{"product/get"})
	}
	for _, id := range sortedKeys(addons) {
		run("addon", id, addons[id], []string{"product/addon_get"})
	}
	wg.Wait()
}

func (g *Generator) refreshEntity(kind, id string, record *models.Product, methods []string, table *pricing.Table) {
	byCurrency := models.Pricing{}

	for _, code := range table.Codes() {
		logger.Dedup(g.log, "refreshing %s pricing", kind)
		details, err := g.api.CallWithFallback(billing.ScopeAdmin, methods,
			map[string]any{"id": id, "currency": code})
		if err != nil {
			g.warn(fmt.Sprintf("%s_%s_pricing_%s", kind, id, code), err)
			continue
		}
		row := normalize.AsMap(details)
		if row == nil {
			continue
		}
		normalized := normalize.PricingShapes(normalize.PickFirst(row, []string{"pricing"}, nil))
		if picked := pickModelForCurrency(normalized, code); picked != nil {
			byCurrency[code] = picked
		}
	}

	base := byCurrency[table.Base]
	if base == nil {
		base = pickModelForCurrency(record.Pricing, table.Base)
	}
	if base != nil {
		table.Synthesize(byCurrency, base)
	}
	if len(byCurrency) > 0 {
		record.Pricing = byCurrency
	}
}

// pickModelForCurrency resolves the model to use for a currency: the
// exact code, then the currency-agnostic default, then the lexically
// first model.
func pickModelForCurrency(pricing models.Pricing, code string) *models.PricingModel {
	if model := pricing[code]; model != nil {
		return model
	}
	if model := pricing[models.DefaultPricingKey]; model != nil {
		return model
	}
	for _, key := range sortedKeys(pricing) {
		if pricing[key] != nil {
			return pricing[key]
		}
	}
	return nil
}
