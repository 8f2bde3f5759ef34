package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/judeotine/SpendWise/internal/apperrors"
	"github.com/judeotine/SpendWise/internal/core/domain"
	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
	"github.com/judeotine/SpendWise/internal/platform/metrics"
)

const (
	// RatesStorageKey holds the single durable rate snapshot.
	RatesStorageKey = "spendwise-exchange-rates"

	// DefaultRateTTL is how long a fetched snapshot is served from memory.
	DefaultRateTTL = 6 * time.Hour
)

type rateCache struct {
	BaseService
	store   portsrepo.KeyValueStoreFacade
	fetcher portsrepo.ExchangeRateFetcher
	ttl     time.Duration
	now     func() time.Time
	metrics *metrics.Recorder

	// snapshot is the only in-memory slot. Concurrent fetches race for it and the last store wins.
	snapshot atomic.Pointer[domain.RateSnapshot]
}

// RateCacheOption is a functional option for configuring the rate cache
type RateCacheOption func(*rateCache)

// WithRateTTL overrides DefaultRateTTL.
func WithRateTTL(ttl time.Duration) RateCacheOption {
	return func(c *rateCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) RateCacheOption {
	return func(c *rateCache) {
		c.now = now
	}
}

// WithRateMetrics records lookup sources and fetch failures on rec.
func WithRateMetrics(rec *metrics.Recorder) RateCacheOption {
	return func(c *rateCache) {
		c.metrics = rec
	}
}

// NewRateCache creates the single-slot rate cache backed by store and fetcher.
func NewRateCache(store portsrepo.KeyValueStoreFacade, fetcher portsrepo.ExchangeRateFetcher, options ...RateCacheOption) portssvc.RateCacheSvc {
	c := &rateCache{
		store:   store,
		fetcher: fetcher,
		ttl:     DefaultRateTTL,
		now:     time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *rateCache) GetRates(ctx context.Context, base string) map[string]float64 {
	return c.Lookup(ctx, base).Rates
}

func (c *rateCache) Lookup(ctx context.Context, base string) domain.RateTable {
	table := c.lookup(ctx, base)
	c.metrics.RateLookup(string(table.Source))
	return table
}

func (c *rateCache) lookup(ctx context.Context, base string) domain.RateTable {
	if snap := c.snapshot.Load(); snap != nil && snap.Base == base && snap.IsFresh(c.now()) {
		return domain.RateTable{Base: base, Rates: snap.Rates, Source: domain.RateSourceMemory}
	}

	rates, err := c.fetcher.FetchRates(ctx, base)
	if err == nil {
		snap := domain.NewRateSnapshot(base, rates, c.now(), c.ttl)
		c.snapshot.Store(snap)
		c.persist(ctx, snap)
		c.LogDebug(ctx, "Fetched fresh exchange rates", slog.String("base", base), slog.Int("count", len(rates)))
		return domain.RateTable{Base: base, Rates: rates, Source: domain.RateSourceRemote}
	}

	c.metrics.FetchFailure(fetchFailureReason(err))
	c.LogWarn(ctx, err, "Exchange rate fetch failed, falling back", slog.String("base", base))

	if snap, ok := c.DurableSnapshot(ctx); ok {
		return domain.RateTable{Base: snap.Base, Rates: snap.Rates, Source: domain.RateSourceDurable}
	}
	if static, ok := StaticRates(base); ok {
		return domain.RateTable{Base: base, Rates: static, Source: domain.RateSourceStatic}
	}
	return domain.RateTable{Base: base, Rates: map[string]float64{base: 1}, Source: domain.RateSourceIdentity}
}

func (c *rateCache) DurableSnapshot(ctx context.Context) (*domain.RateSnapshot, bool) {
	raw, found, err := c.store.Get(ctx, RatesStorageKey)
	if err != nil {
		c.LogError(ctx, err, "Failed to read durable exchange rates", slog.String("key", RatesStorageKey))
		return nil, false
	}
	if !found || raw == "" {
		return nil, false
	}

	var snap domain.RateSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		c.LogWarn(ctx, err, "Ignoring unreadable durable exchange rates", slog.String("key", RatesStorageKey))
		return nil, false
	}
	if snap.Base == "" || snap.Rates == nil {
		return nil, false
	}
	return &snap, true
}

// persist overwrites the durable snapshot regardless of its previous base.
func (c *rateCache) persist(ctx context.Context, snap *domain.RateSnapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		c.LogError(ctx, err, "Failed to encode exchange rate snapshot", slog.String("base", snap.Base))
		return
	}
	if err := c.store.Set(ctx, RatesStorageKey, string(payload)); err != nil {
		c.LogError(ctx, err, "Failed to persist exchange rate snapshot", slog.String("base", snap.Base))
	}
}

func fetchFailureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, apperrors.ErrNetworkFailure):
		return "network"
	default:
		return "other"
	}
}
