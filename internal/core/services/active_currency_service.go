package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/judeotine/SpendWise/internal/apperrors"
	"github.com/judeotine/SpendWise/internal/core/domain"
	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
)

const (
	CurrencyStorageKey          = "spendwise-currency"
	CurrencyTimestampStorageKey = "spendwise-currency-timestamp"
)

type activeCurrencyService struct {
	BaseService
	store portsrepo.KeyValueStoreFacade
	now   func() time.Time
}

// NewActiveCurrencyService creates the display currency store.
// It never touches the rate cache; the next conversion just targets the new code.
func NewActiveCurrencyService(store portsrepo.KeyValueStoreFacade, now func() time.Time) portssvc.ActiveCurrencySvc {
	if now == nil {
		now = time.Now
	}
	return &activeCurrencyService{store: store, now: now}
}

func (s *activeCurrencyService) Get(ctx context.Context) string {
	code, found, err := s.store.Get(ctx, CurrencyStorageKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to read active currency, using default", slog.String("default", domain.DefaultCurrencyCode))
		return domain.DefaultCurrencyCode
	}
	if !found || strings.TrimSpace(code) == "" {
		return domain.DefaultCurrencyCode
	}
	return code
}

func (s *activeCurrencyService) Set(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: currency code must not be empty", apperrors.ErrValidation)
	}

	if err := s.store.Set(ctx, CurrencyStorageKey, code); err != nil {
		return fmt.Errorf("failed to persist active currency: %w", err)
	}
	changedAt := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.store.Set(ctx, CurrencyTimestampStorageKey, changedAt); err != nil {
		return fmt.Errorf("failed to persist currency change time: %w", err)
	}

	s.LogInfo(ctx, "Active currency updated", slog.String("currency_code", code))
	return nil
}

func (s *activeCurrencyService) Preference(ctx context.Context) domain.ActiveCurrencyPreference {
	pref := domain.ActiveCurrencyPreference{Code: s.Get(ctx), ChangedAt: s.now()}

	raw, found, err := s.store.Get(ctx, CurrencyTimestampStorageKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to read currency change time")
		return pref
	}
	if !found {
		return pref
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.LogWarn(ctx, err, "Ignoring unreadable currency change time", slog.String("value", raw))
		return pref
	}
	pref.ChangedAt = time.UnixMilli(millis)
	return pref
}
