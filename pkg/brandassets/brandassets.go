// Package brandassets probes the billing client area's public page for
// logo and favicon URLs when the theme settings report none.
package brandassets

import (
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"sitegen-base/pkg/models"
)

type Prober struct {
	Collector *colly.Collector
}

func NewProber(timeout time.Duration) *Prober {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
	)
	if timeout > 0 {
		c.SetRequestTimeout(timeout)
	}
	return &Prober{Collector: c}
}

// Probe fetches pageURL and extracts whatever brand assets the markup
// exposes. Fields it cannot find stay empty; callers merge the result
// into theme-provided assets, never over them.
func (p *Prober) Probe(pageURL string) (models.BrandAssets, error) {
	assets := models.BrandAssets{}
	if strings.TrimSpace(pageURL) == "" {
		return assets, fmt.Errorf("no page URL to probe")
	}

	p.Collector.OnHTML("link[rel*='icon']", func(e *colly.HTMLElement) {
		if assets.FaviconURL == "" {
			assets.FaviconURL = e.Request.AbsoluteURL(e.Attr("href"))
		}
	})
	p.Collector.OnHTML("meta[property='og:image']", func(e *colly.HTMLElement) {
		if assets.LogoURL == "" {
			assets.LogoURL = e.Request.AbsoluteURL(e.Attr("content"))
		}
	})
	p.Collector.OnHTML("img", func(e *colly.HTMLElement) {
		if assets.LogoURL != "" {
			return
		}
		haystack := strings.ToLower(e.Attr("class") + " " + e.Attr("id") + " " + e.Attr("alt") + " " + e.Attr("src"))
		if strings.Contains(haystack, "logo") {
			assets.LogoURL = e.Request.AbsoluteURL(e.Attr("src"))
		}
	})

	if err := p.Collector.Visit(pageURL); err != nil {
		return models.BrandAssets{}, err
	}
	p.Collector.Wait()

	if assets.LogoURL == "" && assets.FaviconURL == "" {
		return assets, fmt.Errorf("no brand assets found on %s", pageURL)
	}
	return assets, nil
}
