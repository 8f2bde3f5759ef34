package services

import "maps"

// staticRates is the last-resort table used when no live or cached rates exist.
// Only USD, EUR and GBP have entries, and inverses are deliberately not derived.
var staticRates = map[string]map[string]float64{
	"USD": {
		"EUR": 0.91, "GBP": 0.79, "JPY": 150.23, "CAD": 1.36, "AUD": 1.51, "NGN": 1504.50,
		"INR": 83.12, "CNY": 7.23, "BRL": 5.09, "ZAR": 18.51, "MXN": 16.79, "TRY": 32.34,
	},
	"EUR": {
		"USD": 1.10, "GBP": 0.86, "JPY": 164.86, "CAD": 1.49, "AUD": 1.66, "NGN": 1654.95,
		"INR": 91.37, "CNY": 7.94, "BRL": 5.60, "ZAR": 20.35, "MXN": 18.46, "TRY": 35.58,
	},
	"GBP": {
		"USD": 1.27, "EUR": 1.16, "JPY": 191.42, "CAD": 1.73, "AUD": 1.92, "NGN": 1915.94,
		"INR": 105.76, "CNY": 9.20, "BRL": 6.49, "ZAR": 23.55, "MXN": 21.39, "TRY": 41.19,
	},
}

// StaticRates returns a copy of the built-in table for base.
func StaticRates(base string) (map[string]float64, bool) {
	rates, ok := staticRates[base]
	if !ok {
		return nil, false
	}
	return maps.Clone(rates), true
}

// StaticRate returns the built-in from -> to multiplier.
func StaticRate(from, to string) (float64, bool) {
	rate, ok := staticRates[from][to]
	return rate, ok
}
