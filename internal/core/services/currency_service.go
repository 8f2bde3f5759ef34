package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/judeotine/SpendWise/internal/apperrors"
	"github.com/judeotine/SpendWise/internal/core/domain"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
)

// CurrencyService is the currency context used by the HTTP layer: the active display currency
// plus conversion into it.
type CurrencyService struct {
	BaseService
	active    portssvc.ActiveCurrencySvc
	converter portssvc.CurrencyConverterSvc
	rates     portssvc.RateCacheSvc
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(active portssvc.ActiveCurrencySvc, converter portssvc.CurrencyConverterSvc, rates portssvc.RateCacheSvc) *CurrencyService {
	return &CurrencyService{
		active:    active,
		converter: converter,
		rates:     rates,
	}
}

func (s *CurrencyService) ActiveCurrency(ctx context.Context) string {
	return s.active.Get(ctx)
}

func (s *CurrencyService) ActivePreference(ctx context.Context) domain.ActiveCurrencyPreference {
	return s.active.Preference(ctx)
}

func (s *CurrencyService) ConvertAmount(ctx context.Context, amount float64, from string) float64 {
	target := s.active.Get(ctx)
	if from == "" || from == target || amount == 0 {
		return amount
	}
	return s.converter.Convert(ctx, amount, from, target)
}

func (s *CurrencyService) ConvertBetween(ctx context.Context, amount float64, from, to string) domain.Conversion {
	if to == "" {
		to = s.active.Get(ctx)
	}
	return s.converter.Resolve(ctx, amount, from, to)
}

func (s *CurrencyService) Rates(ctx context.Context, base string) domain.RateTable {
	return s.rates.Lookup(ctx, base)
}

// ChangeCurrency probes 1 unit of the current currency into code before committing.
// If only the identity passthrough could answer, nothing is persisted.
func (s *CurrencyService) ChangeCurrency(ctx context.Context, code string) (*domain.ActiveCurrencyPreference, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: currency code must not be empty", apperrors.ErrValidation)
	}

	current := s.active.Get(ctx)
	if code == current {
		pref := s.active.Preference(ctx)
		return &pref, nil
	}

	probe := s.converter.Resolve(ctx, 1, current, code)
	if probe.Tier == domain.TierIdentity {
		s.LogWarn(ctx, nil, "Currency change rejected, no rates available",
			slog.String("from", current),
			slog.String("to", code))
		return nil, fmt.Errorf("%w: cannot convert %s to %s", apperrors.ErrRatesUnavailable, current, code)
	}

	if err := s.active.Set(ctx, code); err != nil {
		s.LogError(ctx, err, "Failed to change active currency", slog.String("currency_code", code))
		return nil, err
	}

	pref := s.active.Preference(ctx)
	s.LogInfo(ctx, "Currency changed",
		slog.String("from", current),
		slog.String("to", code),
		slog.String("probe_tier", string(probe.Tier)))
	return &pref, nil
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)
