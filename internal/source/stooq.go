package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StooqFetcher downloads daily closing history from the Stooq CSV endpoint.
type StooqFetcher struct {
	BaseURL      string
	MarketSuffix string
	Client       *http.Client
}

// NewStooqFetcher creates a fetcher with optional proxy support.
func NewStooqFetcher(baseURL, marketSuffix, proxyURL string, timeout time.Duration) *StooqFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StooqFetcher{
		BaseURL:      baseURL,
		MarketSuffix: marketSuffix,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

// marketSymbol appends the market suffix unless the symbol already carries it.
func (f *StooqFetcher) marketSymbol(symbol string) string {
	if f.MarketSuffix == "" || strings.HasSuffix(symbol, f.MarketSuffix) {
		return symbol
	}
	return symbol + f.MarketSuffix
}

// FetchDailyHistory returns the raw CSV payload for one symbol. There is
// no retry: a failed download is the caller's problem for this run.
func (f *StooqFetcher) FetchDailyHistory(ctx context.Context, symbol string) (string, error) {
	endpoint := fmt.Sprintf("%s/q/d/l/?s=%s&i=d",
		f.BaseURL, url.QueryEscape(strings.ToLower(f.marketSymbol(symbol))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch history for %s: status %d", symbol, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read history for %s: %w", symbol, err)
	}
	return string(body), nil
}
