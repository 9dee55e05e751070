package source

import "context"

// Fetcher retrieves raw daily-history CSV text for one symbol.
type Fetcher interface {
	FetchDailyHistory(ctx context.Context, symbol string) (string, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Payloads map[string]string
	Errs     map[string]error
	Err      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(_ context.Context, symbol string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if err, ok := m.Errs[symbol]; ok {
		return "", err
	}
	return m.Payloads[symbol], nil
}
