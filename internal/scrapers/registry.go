// Package scrapers holds the adapters that talk to the bank-site automation
// sidecar. The core only sees the ports.Scraper and ports.ScraperRegistry
// interfaces.
package scrapers

import (
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/core/ports"
)

// Registry maps provider tags to scraper implementations.
type Registry struct {
	scrapers map[domain.Provider]ports.Scraper
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{scrapers: make(map[domain.Provider]ports.Scraper)}
}

// Register binds a scraper to a provider tag, replacing any previous binding.
func (r *Registry) Register(provider domain.Provider, scraper ports.Scraper) {
	r.scrapers[provider] = scraper
}

// ScraperFor resolves the scraper for a provider tag.
func (r *Registry) ScraperFor(provider domain.Provider) (ports.Scraper, bool) {
	scraper, ok := r.scrapers[provider]
	return scraper, ok
}

var _ ports.ScraperRegistry = (*Registry)(nil)

// NewDefaultRegistry builds a registry covering every known provider,
// all backed by the HTTP sidecar at baseURL.
func NewDefaultRegistry(baseURL string) *Registry {
	registry := NewRegistry()
	for _, provider := range []domain.Provider{
		domain.ProviderHapoalim,
		domain.ProviderLeumi,
		domain.ProviderDiscount,
		domain.ProviderIsracard,
		domain.ProviderMax,
		domain.ProviderCalOnline,
	} {
		registry.Register(provider, NewHTTPScraper(baseURL, provider))
	}
	return registry
}
