package services

import (
	"time"

	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
	"github.com/judeotine/SpendWise/internal/platform/config"
	"github.com/judeotine/SpendWise/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rec *metrics.Recorder) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rate cache first since the converter depends on it
	rateCache := NewRateCache(
		repos.KeyValueStore,
		repos.RateFetcher,
		WithRateTTL(cfg.ExchangeRateTTL),
		WithRateMetrics(rec),
	)
	converter := NewCurrencyConverter(rateCache, WithConversionMetrics(rec))

	active := NewActiveCurrencyService(repos.KeyValueStore, time.Now)
	container.Currency = NewCurrencyService(active, converter, rateCache)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RateCacheSvc         = (*rateCache)(nil)
	_ portssvc.CurrencyConverterSvc = (*currencyConverter)(nil)
	_ portssvc.ActiveCurrencySvc    = (*activeCurrencyService)(nil)
)
