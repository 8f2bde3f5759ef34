package dto

import (
	"time"

	"github.com/judeotine/SpendWise/internal/core/domain"
)

// ChangeCurrencyRequest switches the active display currency.
type ChangeCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
}

// ActiveCurrencyResponse defines the data returned for the active display currency.
type ActiveCurrencyResponse struct {
	CurrencyCode string    `json:"currencyCode"`
	Symbol       string    `json:"symbol"`
	ChangedAt    time.Time `json:"changedAt"`
}

// DetectCurrencyRequest carries an optional locale; the Accept-Language header is used when it is empty.
type DetectCurrencyRequest struct {
	Locale string `form:"locale" binding:"omitempty,max=35"`
}

// DetectCurrencyResponse is the currency guessed for a locale.
type DetectCurrencyResponse struct {
	Locale       string `json:"locale"`
	CurrencyCode string `json:"currencyCode"`
}

// ToActiveCurrencyResponse converts a domain.ActiveCurrencyPreference to ActiveCurrencyResponse DTO
func ToActiveCurrencyResponse(pref domain.ActiveCurrencyPreference, symbol string) ActiveCurrencyResponse {
	return ActiveCurrencyResponse{
		CurrencyCode: pref.Code,
		Symbol:       symbol,
		ChangedAt:    pref.ChangedAt,
	}
}
