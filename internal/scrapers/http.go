package scrapers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/core/ports"
)

// HTTPScraper invokes the scraping sidecar over HTTP. The sidecar drives the
// actual bank-site automation; this adapter only ships credentials in and
// raw records out. Credentials travel in the request body and are never
// logged.
type HTTPScraper struct {
	baseURL  string
	provider domain.Provider
	client   *http.Client
}

// NewHTTPScraper creates a sidecar-backed scraper for one provider.
// Timeouts are governed by the caller's context, not a client deadline, so
// the sync cycle's budget applies uniformly.
func NewHTTPScraper(baseURL string, provider domain.Provider) *HTTPScraper {
	return &HTTPScraper{
		baseURL:  baseURL,
		provider: provider,
		client:   &http.Client{},
	}
}

var _ ports.Scraper = (*HTTPScraper)(nil)

type scrapeRequest struct {
	Provider    string                       `json:"provider"`
	Credentials domain.ConnectionCredentials `json:"credentials"`
}

type scrapeResponse struct {
	Success  bool                    `json:"success"`
	Accounts []domain.ScrapedAccount `json:"accounts"`
	Error    string                  `json:"errorMessage"`
}

// Fetch posts the credentials to the sidecar and decodes the scraped
// accounts. Any transport or sidecar-reported failure wraps
// apperrors.ErrScraper.
func (s *HTTPScraper) Fetch(ctx context.Context, credentials domain.ConnectionCredentials) ([]domain.ScrapedAccount, error) {
	body, err := json.Marshal(scrapeRequest{Provider: string(s.provider), Credentials: credentials})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build scrape request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scraper sidecar unreachable: %v: %w", err, apperrors.ErrScraper)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("scraper sidecar returned %d: %s: %w", resp.StatusCode, string(snippet), apperrors.ErrScraper)
	}

	var decoded scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("malformed scraper response: %w", apperrors.ErrFormat)
	}
	if !decoded.Success {
		message := decoded.Error
		if message == "" {
			message = "scrape failed"
		}
		return nil, fmt.Errorf("%s: %w", message, apperrors.ErrScraper)
	}
	return decoded.Accounts, nil
}
