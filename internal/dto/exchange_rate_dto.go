package dto

import "github.com/judeotine/SpendWise/internal/core/domain"

// ConvertRequest is bound from the query string of GET /convert.
// Amount stays a string so that "0" passes the required check.
type ConvertRequest struct {
	Amount string `form:"amount" binding:"required,numeric"`
	From   string `form:"from" binding:"required,currencycode"`
	To     string `form:"to" binding:"omitempty,currencycode"`
}

// ConversionResponse defines the structure for API responses containing a conversion result.
type ConversionResponse struct {
	Amount          float64 `json:"amount"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	ConvertedAmount float64 `json:"convertedAmount"`
	Tier            string  `json:"tier"`
	Formatted       string  `json:"formatted"`
}

// RatesResponse shows what the rate cache serves for a requested base.
// Base can differ from RequestedBase when only a durable snapshot of another base was available.
type RatesResponse struct {
	Base          string             `json:"base"`
	RequestedBase string             `json:"requestedBase"`
	Source        string             `json:"source"`
	Rates         map[string]float64 `json:"rates"`
}

// ToConversionResponse converts a domain.Conversion to ConversionResponse DTO
func ToConversionResponse(conv domain.Conversion, formatted string) ConversionResponse {
	return ConversionResponse{
		Amount:          conv.Amount,
		From:            conv.From,
		To:              conv.To,
		ConvertedAmount: conv.Result,
		Tier:            string(conv.Tier),
		Formatted:       formatted,
	}
}

// ToRatesResponse converts a domain.RateTable to RatesResponse DTO
func ToRatesResponse(requested string, table domain.RateTable) RatesResponse {
	return RatesResponse{
		Base:          table.Base,
		RequestedBase: requested,
		Source:        string(table.Source),
		Rates:         table.Rates,
	}
}
