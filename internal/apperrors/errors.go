package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNetworkFailure indicates that the remote rate API could not be reached,
// timed out, or answered with a non-success status.
var ErrNetworkFailure = errors.New("exchange rate fetch failed")

// ErrMalformedResponse indicates that the remote rate API answered without a usable rates table.
var ErrMalformedResponse = errors.New("malformed exchange rate response")

// ErrMissingPair indicates that a rate table was available but did not quote the requested pair.
var ErrMissingPair = errors.New("conversion rate not found")

// ErrNoDataAvailable indicates that every conversion tier was exhausted.
var ErrNoDataAvailable = errors.New("no exchange rate data available")

// ErrRatesUnavailable is returned to the user when a currency change cannot be backed by any rate source.
var ErrRatesUnavailable = errors.New("exchange rates unavailable")
