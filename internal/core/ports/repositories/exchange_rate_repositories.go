package repositories

import "context"

// ExchangeRateFetcher retrieves live rates from a remote provider.
type ExchangeRateFetcher interface {
	// FetchRates returns the rates quoted against base: one unit of base equals rates[code] units of code.
	// Failures wrap apperrors.ErrNetworkFailure or apperrors.ErrMalformedResponse.
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}
