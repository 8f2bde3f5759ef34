package services

import (
	"context"

	"github.com/judeotine/SpendWise/internal/core/domain"
)

// RateCacheSvc answers "give me a rate table based on currency X".
// None of its methods fail; every failure degrades to a weaker source.
type RateCacheSvc interface {
	// GetRates returns the best available rates for base.
	// The map may be quoted against a different base when only the durable snapshot is left.
	GetRates(ctx context.Context, base string) map[string]float64

	// Lookup is GetRates plus the actual base of the table and where it came from.
	Lookup(ctx context.Context, base string) domain.RateTable

	// DurableSnapshot returns the persisted snapshot, if any.
	DurableSnapshot(ctx context.Context) (*domain.RateSnapshot, bool)
}

// CurrencyConverterSvc converts amounts between currencies without ever failing.
type CurrencyConverterSvc interface {
	Convert(ctx context.Context, amount float64, from, to string) float64

	// Resolve is Convert plus the tier of the fallback ladder that produced the result.
	Resolve(ctx context.Context, amount float64, from, to string) domain.Conversion
}

// ActiveCurrencySvc holds the user's display currency.
type ActiveCurrencySvc interface {
	Get(ctx context.Context) string
	Set(ctx context.Context, code string) error
	Preference(ctx context.Context) domain.ActiveCurrencyPreference
}

// CurrencyReaderSvc defines read operations for the currency context.
type CurrencyReaderSvc interface {
	// ActiveCurrency returns the current display currency.
	ActiveCurrency(ctx context.Context) string

	// ActivePreference returns the display currency and when it was last changed.
	ActivePreference(ctx context.Context) domain.ActiveCurrencyPreference

	// ConvertAmount converts amount from the given currency into the active currency.
	// An empty from means the amount is already in the active currency.
	ConvertAmount(ctx context.Context, amount float64, from string) float64

	// ConvertBetween converts between two explicit currencies and reports the tier used.
	ConvertBetween(ctx context.Context, amount float64, from, to string) domain.Conversion

	// Rates returns the table the rate cache would serve for base.
	Rates(ctx context.Context, base string) domain.RateTable
}

// CurrencyWriterSvc defines write operations for the currency context.
type CurrencyWriterSvc interface {
	// ChangeCurrency switches the display currency after probing that it can be converted to.
	// It returns apperrors.ErrRatesUnavailable when no rate source covers the change.
	ChangeCurrency(ctx context.Context, code string) (*domain.ActiveCurrencyPreference, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
