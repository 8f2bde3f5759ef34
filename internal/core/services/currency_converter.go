package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/judeotine/SpendWise/internal/apperrors"
	"github.com/judeotine/SpendWise/internal/core/domain"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
	"github.com/judeotine/SpendWise/internal/platform/metrics"
)

var errTierNotApplicable = errors.New("tier not applicable")

// conversionStrategy is one rung of the fallback ladder.
type conversionStrategy struct {
	tier    domain.ConversionTier
	convert func(ctx context.Context, amount float64, from, to string) (float64, error)
}

type currencyConverter struct {
	BaseService
	rates      portssvc.RateCacheSvc
	metrics    *metrics.Recorder
	strategies []conversionStrategy
}

// ConverterOption is a functional option for configuring the converter
type ConverterOption func(*currencyConverter)

// WithConversionMetrics counts conversions per tier on rec.
func WithConversionMetrics(rec *metrics.Recorder) ConverterOption {
	return func(c *currencyConverter) {
		c.metrics = rec
	}
}

// NewCurrencyConverter builds the converter. Tiers are tried in order and the first success wins;
// when all of them fail the amount is returned unchanged.
func NewCurrencyConverter(rates portssvc.RateCacheSvc, options ...ConverterOption) portssvc.CurrencyConverterSvc {
	c := &currencyConverter{rates: rates}
	c.strategies = []conversionStrategy{
		{tier: domain.TierSameCurrency, convert: c.sameCurrency},
		{tier: domain.TierDirect, convert: c.directRate},
		{tier: domain.TierDurableBridge, convert: c.deriveViaDurableBase},
		{tier: domain.TierUSDBridge, convert: c.deriveViaUSD},
		{tier: domain.TierStaticTable, convert: c.staticTable},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *currencyConverter) Convert(ctx context.Context, amount float64, from, to string) float64 {
	return c.Resolve(ctx, amount, from, to).Result
}

func (c *currencyConverter) Resolve(ctx context.Context, amount float64, from, to string) domain.Conversion {
	conversion := domain.Conversion{Amount: amount, From: from, To: to}

	for _, strategy := range c.strategies {
		result, err := c.attempt(ctx, strategy, amount, from, to)
		if err != nil {
			if !errors.Is(err, errTierNotApplicable) {
				c.LogDebug(ctx, "Conversion tier failed",
					slog.String("tier", string(strategy.tier)),
					slog.String("from", from),
					slog.String("to", to),
					slog.String("error", err.Error()))
			}
			continue
		}
		conversion.Result = result
		conversion.Tier = strategy.tier
		c.metrics.Conversion(string(strategy.tier))
		return conversion
	}

	c.LogWarn(ctx, apperrors.ErrNoDataAvailable, "Returning amount unconverted",
		slog.String("from", from),
		slog.String("to", to))
	conversion.Result = amount
	conversion.Tier = domain.TierIdentity
	c.metrics.Conversion(string(domain.TierIdentity))
	return conversion
}

// attempt runs one tier and turns a panic or a non-finite derived result into an error.
func (c *currencyConverter) attempt(ctx context.Context, strategy conversionStrategy, amount float64, from, to string) (result float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tier %s panicked: %v", strategy.tier, r)
		}
	}()

	result, err = strategy.convert(ctx, amount, from, to)
	if err != nil {
		return 0, err
	}
	// same_currency hands back the caller's amount untouched, finite or not.
	if strategy.tier != domain.TierSameCurrency && (math.IsNaN(result) || math.IsInf(result, 0)) {
		return 0, fmt.Errorf("tier %s produced non-finite result", strategy.tier)
	}
	return result, nil
}

func (c *currencyConverter) sameCurrency(_ context.Context, amount float64, from, to string) (float64, error) {
	if from != to {
		return 0, errTierNotApplicable
	}
	return amount, nil
}

func (c *currencyConverter) directRate(ctx context.Context, amount float64, from, to string) (float64, error) {
	table := c.rates.Lookup(ctx, from)
	if table.Base != from {
		return 0, fmt.Errorf("%w: rates for %s are quoted against %s", apperrors.ErrMissingPair, from, table.Base)
	}
	rate, ok := table.Rate(to)
	if !ok {
		return 0, fmt.Errorf("%w: %s -> %s", apperrors.ErrMissingPair, from, to)
	}
	return amount * rate, nil
}

// deriveViaDurableBase bridges through whatever base the durable snapshot is quoted in.
func (c *currencyConverter) deriveViaDurableBase(ctx context.Context, amount float64, from, to string) (float64, error) {
	snap, ok := c.rates.DurableSnapshot(ctx)
	if !ok {
		return 0, fmt.Errorf("%w: no durable snapshot", apperrors.ErrMissingPair)
	}
	if snap.Base == from {
		return 0, errTierNotApplicable
	}
	return deriveThrough(amount, snap.Rates, from, to)
}

func (c *currencyConverter) deriveViaUSD(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == domain.BridgeCurrency || to == domain.BridgeCurrency {
		return 0, errTierNotApplicable
	}
	table := c.rates.Lookup(ctx, domain.BridgeCurrency)
	if !table.IsObserved() || table.Base != domain.BridgeCurrency {
		return 0, fmt.Errorf("%w: no observed %s rates", apperrors.ErrMissingPair, domain.BridgeCurrency)
	}
	return deriveThrough(amount, table.Rates, from, to)
}

func (c *currencyConverter) staticTable(_ context.Context, amount float64, from, to string) (float64, error) {
	rate, ok := StaticRate(from, to)
	if !ok {
		return 0, fmt.Errorf("%w: no static rate %s -> %s", apperrors.ErrMissingPair, from, to)
	}
	return amount * rate, nil
}

// deriveThrough treats a single table as bidirectional: from -> base by reciprocal, base -> to directly.
func deriveThrough(amount float64, rates map[string]float64, from, to string) (float64, error) {
	table := domain.RateTable{Rates: rates}
	fromRate, ok := table.Rate(from)
	if !ok {
		return 0, fmt.Errorf("%w: bridge table lacks %s", apperrors.ErrMissingPair, from)
	}
	toRate, ok := table.Rate(to)
	if !ok {
		return 0, fmt.Errorf("%w: bridge table lacks %s", apperrors.ErrMissingPair, to)
	}
	return amount * (1 / fromRate) * toRate, nil
}
