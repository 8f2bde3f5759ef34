package services_test

import (
	"context"
	"time"

	"github.com/judeotine/SpendWise/internal/core/domain"
	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExchangeRateFetcher ---
type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

// --- Mock KeyValueStore ---
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// --- Mock ActiveCurrencySvc ---
type MockActiveCurrency struct {
	mock.Mock
}

func (m *MockActiveCurrency) Get(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockActiveCurrency) Set(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockActiveCurrency) Preference(ctx context.Context) domain.ActiveCurrencyPreference {
	args := m.Called(ctx)
	return args.Get(0).(domain.ActiveCurrencyPreference)
}

// --- Mock CurrencyConverterSvc ---
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, amount float64, from, to string) float64 {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(float64)
}

func (m *MockConverter) Resolve(ctx context.Context, amount float64, from, to string) domain.Conversion {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(domain.Conversion)
}

// --- Mock RateCacheSvc ---
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) GetRates(ctx context.Context, base string) map[string]float64 {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]float64)
}

func (m *MockRateCache) Lookup(ctx context.Context, base string) domain.RateTable {
	args := m.Called(ctx, base)
	return args.Get(0).(domain.RateTable)
}

func (m *MockRateCache) DurableSnapshot(ctx context.Context) (*domain.RateSnapshot, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Bool(1)
}

var (
	_ portsrepo.ExchangeRateFetcher = (*MockRateFetcher)(nil)
	_ portsrepo.KeyValueStoreFacade = (*MockKeyValueStore)(nil)
	_ portssvc.ActiveCurrencySvc    = (*MockActiveCurrency)(nil)
	_ portssvc.CurrencyConverterSvc = (*MockConverter)(nil)
	_ portssvc.RateCacheSvc         = (*MockRateCache)(nil)
)

// fakeClock is a settable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
