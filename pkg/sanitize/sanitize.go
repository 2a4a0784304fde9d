// Package sanitize decides which records may leave the system boundary
// and strips them down to the public document shape.
package sanitize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"sitegen-base/pkg/models"
)

var nonPublicTokens = []string{
	"disabled", "disable", "hidden", "inactive", "draft", "private", "internal",
	"archived", "deleted", "closed", "off",
}

var publicTokens = []string{"active", "enabled", "public", "visible", "live", "on"}

// StatusIsPublic classifies a free-form status string by substring
// match against curated vocabularies; ambiguous statuses fall back to
// the given default.
func StatusIsPublic(status string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(status))
	if value == "" {
		return fallback
	}
	for _, token := range nonPublicTokens {
		if strings.Contains(value, token) {
			return false
		}
	}
	for _, token := range publicTokens {
		if strings.Contains(value, token) {
			return true
		}
	}
	return fallback
}

// ContainsAny reports whether any exclude pattern occurs in the joined,
// lowercased haystack of values.
func ContainsAny(values []string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	haystack := strings.ToLower(strings.TrimSpace(strings.Join(values, " ")))
	if haystack == "" {
		return false
	}
	for _, pattern := range patterns {
		needle := strings.ToLower(strings.TrimSpace(pattern))
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// IsPublicProduct applies the product visibility chain: not hidden,
// status public, titled, not a domain/tld product, and not matching any
// configured exclude pattern.
func IsPublicProduct(product *models.Product, excludePatterns []string) bool {
	if product == nil || product.Hidden {
		return false
	}
	if !StatusIsPublic(product.Status, true) {
		return false
	}
	if strings.TrimSpace(product.Title) == "" {
		return false
	}
	productType := strings.ToLower(product.Type)
	if productType == "domain" || productType == "tld" {
		return false
	}
	return !ContainsAny(
		[]string{product.Type, product.Slug, product.Title, product.Description, product.CategoryTitle},
		excludePatterns,
	)
}

// IsPublicAddon applies the addon visibility chain; addons have no
// hidden flag or type restriction.
func IsPublicAddon(addon *models.Product, excludePatterns []string) bool {
	if addon == nil {
		return false
	}
	if !StatusIsPublic(addon.Status, true) {
		return false
	}
	if strings.TrimSpace(addon.Title) == "" {
		return false
	}
	return !ContainsAny(
		[]string{addon.Type, addon.Slug, addon.Title, addon.Description},
		excludePatterns,
	)
}

var publicLimitationKeys = []struct {
	key      string
	patterns []string
}{
	{"addons", []string{"addon"}},
	{"databases", []string{"database", "db"}},
	{"domains", []string{"domain"}},
	{"subdomains", []string{"subdomain"}},
	{"email_accounts", []string{"email", "mailbox"}},
	{"ftp_accounts", []string{"ftp"}},
	{"cron_jobs", []string{"cron"}},
	{"disk", []string{"disk"}},
	{"inodes", []string{"inode"}},
	{"bandwidth", []string{"bandwidth", "traffic"}},
	{"ram", []string{"ram", "memory"}},
	{"cpu", []string{"cpu"}},
	{"websites", []string{"site", "website"}},
	{"accounts", []string{"account"}},
}

var numericValuePattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Limitations reduces raw limitation entries to the curated public
// vocabulary. Values must be booleans, numbers, or numeric/unlimited
// strings; the first matching raw key wins per public key.
func Limitations(limits map[string]any) map[string]any {
	public := map[string]any{}
	for _, rawKey := range sortedKeys(limits) {
		value := limits[rawKey]
		lowered := strings.ToLower(rawKey)
		for _, candidate := range publicLimitationKeys {
			if _, taken := public[candidate.key]; taken {
				continue
			}
			if !matchesAny(lowered, candidate.patterns) {
				continue
			}
			switch v := value.(type) {
			case bool:
				public[candidate.key] = v
			case float64:
				public[candidate.key] = trimFloat(v)
			case int:
				public[candidate.key] = trimFloat(float64(v))
			case string:
				trimmed := strings.TrimSpace(v)
				if trimmed == "" {
					break
				}
				normalized := strings.ToLower(trimmed)
				if numericValuePattern.MatchString(trimmed) ||
					normalized == "unlimited" || normalized == "unmetered" || normalized == "infinite" {
					public[candidate.key] = trimmed
				}
			}
			break
		}
	}
	return public
}

func matchesAny(key string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(key, pattern) {
			return true
		}
	}
	return false
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Pricing restricts a pricing map to the enabled currency set and
// re-normalizes every entry. When no per-currency model survives, the
// currency-agnostic default model is broadcast to every enabled
// currency. Running the result through Pricing again is a no-op.
func Pricing(pricing models.Pricing, enabledCurrencies map[string]bool) models.Pricing {
	public := models.Pricing{}
	var defaultModel *models.PricingModel

	for currency, model := range pricing {
		if model == nil {
			continue
		}
		code := strings.ToUpper(currency)
		if code == models.DefaultPricingKey {
			defaultModel = sanitizeModel(model)
			continue
		}
		if !enabledCurrencies[code] {
			continue
		}
		if sanitized := sanitizeModel(model); sanitized != nil {
			public[code] = sanitized
		}
	}

	if len(public) == 0 && defaultModel != nil {
		for code := range enabledCurrencies {
			public[strings.ToUpper(code)] = defaultModel.Clone()
		}
	}
	return public
}

func sanitizeModel(model *models.PricingModel) *models.PricingModel {
	out := &models.PricingModel{
		Type:      strings.TrimSpace(model.Type),
		Recurrent: map[string]models.PricingEntry{},
	}

	if free := sanitizeEntry(model.Free); free != nil {
		free.Enabled = true
		out.Free = free
	}
	out.Once = sanitizeEntry(model.Once)

	for period, entry := range model.Recurrent {
		sanitized := sanitizeEntry(&entry)
		if sanitized == nil || !sanitized.Enabled {
			continue
		}
		out.Recurrent[strings.ToUpper(period)] = *sanitized
	}

	if out.Type == "" && len(out.Recurrent) > 0 {
		out.Type = "recurrent"
	}
	if out.Type == "" && out.Once != nil {
		out.Type = "once"
	}

	if out.Free == nil && out.Once == nil && len(out.Recurrent) == 0 {
		return nil
	}
	return out
}

func sanitizeEntry(entry *models.PricingEntry) *models.PricingEntry {
	if entry == nil {
		return nil
	}
	price := ""
	if entry.Price != nil {
		price = strings.TrimSpace(*entry.Price)
	}
	setup := "0"
	if entry.Setup != nil && strings.TrimSpace(*entry.Setup) != "" {
		setup = strings.TrimSpace(*entry.Setup)
	}
	if price == "" {
		if !entry.Enabled {
			return nil
		}
		price = "0"
	}
	return &models.PricingEntry{Price: &price, Setup: &setup, Enabled: entry.Enabled}
}

// Feature keys mapped from raw limitation keys; slice order decides
// which pattern wins on substring collisions.
var featureKeyMap = []struct {
	pattern string
	key     string
}{
	{"addon", "addon_domains"},
	{"addons", "addon_domains"},
	{"database", "databases"},
	{"databases", "databases"},
	{"db", "databases"},
	{"email", "email_accounts"},
	{"email_accounts", "email_accounts"},
	{"mailbox", "email_accounts"},
	{"ftp", "ftp_accounts"},
	{"ftp_accounts", "ftp_accounts"},
	{"cron", "cron_jobs"},
	{"cron_jobs", "cron_jobs"},
	{"subdomain", "subdomains"},
	{"subdomains", "subdomains"},
	{"disk", "disk"},
	{"inode", "inodes"},
	{"bandwidth", "bandwidth"},
	{"traffic", "bandwidth"},
	{"websites", "websites"},
	{"ram", "ram"},
	{"cpu", "cpu_cores"},
}

var featureOrder = []string{
	"disk", "bandwidth", "addon_domains", "databases", "email_accounts",
	"ftp_accounts", "subdomains", "cron_jobs", "inodes", "websites",
	"ram", "cpu_cores",
}

// Features derives the ordered public feature list from limitations.
// Unset markers (zero, empty, booleans) never become features.
func Features(limitations map[string]any) []models.Feature {
	features := []models.Feature{}
	for _, rawKey := range sortedKeys(limitations) {
		value := limitations[rawKey]
		switch v := value.(type) {
		case bool:
			continue
		case string:
			if v == "" || v == "0" {
				continue
			}
		case float64:
			if v == 0 || v == -1 {
				continue
			}
		case int:
			if v == 0 || v == -1 {
				continue
			}
		}

		lowered := strings.ToLower(rawKey)
		standardKey := ""
		for _, mapping := range featureKeyMap {
			if strings.Contains(lowered, mapping.pattern) {
				standardKey = mapping.key
				break
			}
		}
		if standardKey == "" {
			continue
		}
		features = append(features, models.Feature{Key: standardKey, Value: featureValue(value)})
	}

	byKey := map[string][]models.Feature{}
	for _, feature := range features {
		byKey[feature.Key] = append(byKey[feature.Key], feature)
	}

	ordered := []models.Feature{}
	seen := map[string]bool{}
	for _, key := range featureOrder {
		ordered = append(ordered, byKey[key]...)
		seen[key] = true
	}
	for _, key := range sortedKeys(byKey) {
		if !seen[key] {
			ordered = append(ordered, byKey[key]...)
		}
	}
	return ordered
}

func featureValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return trimFloat(v)
	case int:
		return trimFloat(float64(v))
	}
	return ""
}

// Product builds the minimal public product shape.
func Product(product *models.Product, enabledCurrencies map[string]bool) models.PublicProduct {
	return models.PublicProduct{
		ID:            product.ID,
		Title:         strings.TrimSpace(product.Title),
		Description:   strings.TrimSpace(product.Description),
		Slug:          strings.TrimSpace(product.Slug),
		Type:          strings.TrimSpace(product.Type),
		OrderURL:      strings.TrimSpace(product.OrderURL),
		IconURL:       strings.TrimSpace(product.IconURL),
		CategoryID:    product.CategoryID,
		CategoryTitle: strings.TrimSpace(product.CategoryTitle),
		Pricing:       Pricing(product.Pricing, enabledCurrencies),
		Features:      Features(product.Limitations),
		Addons:        []string{},
	}
}

// Addon builds the minimal public addon shape.
func Addon(addon *models.Product, enabledCurrencies map[string]bool) models.PublicAddon {
	return models.PublicAddon{
		ID:          addon.ID,
		Title:       strings.TrimSpace(addon.Title),
		Description: strings.TrimSpace(addon.Description),
		Slug:        strings.TrimSpace(addon.Slug),
		OrderURL:    strings.TrimSpace(addon.OrderURL),
		IconURL:     strings.TrimSpace(addon.IconURL),
		Pricing:     Pricing(addon.Pricing, enabledCurrencies),
		Limitations: Limitations(addon.Limitations),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
