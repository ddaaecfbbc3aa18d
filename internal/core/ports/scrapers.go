// Package ports holds the boundary interfaces to external collaborators.
package ports

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// Scraper is the opaque capability that talks to a bank website. Its retry
// and 2FA handling are out of scope here; it either returns the raw records
// grouped by provider account or fails. Credentials are the decrypted
// payload for one connection and must not outlive the call.
type Scraper interface {
	Fetch(ctx context.Context, credentials domain.ConnectionCredentials) ([]domain.ScrapedAccount, error)
}

// ScraperRegistry resolves the scraper implementation for a provider tag.
type ScraperRegistry interface {
	ScraperFor(provider domain.Provider) (Scraper, bool)
}
