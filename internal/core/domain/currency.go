package domain

import "time"

// DefaultCurrencyCode is the display currency used until the user picks one.
const DefaultCurrencyCode = "USD"

// ActiveCurrencyPreference is the user's chosen display currency.
type ActiveCurrencyPreference struct {
	Code      string    `json:"currencyCode"`
	ChangedAt time.Time `json:"changedAt"` // recorded on every change, not consumed by conversion
}
