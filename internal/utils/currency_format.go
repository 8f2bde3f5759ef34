package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencySymbols maps ISO 4217 codes to the symbol shown in front of an amount.
// Codes missing here are displayed as "CODE 12.50".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "CN¥",
	"KRW": "₩",
	"INR": "₹",
	"TRY": "₺",
	"RUB": "₽",
	"BRL": "R$",
	"MXN": "MX$",
	"CAD": "CA$",
	"AUD": "A$",
	"NGN": "₦",
	"KES": "KSh",
	"ZAR": "R",
	"EGP": "E£",
	"PKR": "₨",
}

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatAmount rounds half away from zero to two decimals and groups thousands.
// Example: 1234.5 returns "1,234.50". Non-finite values print as "+Inf", "-Inf" or "NaN".
func FormatAmount(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return strconv.FormatFloat(amount, 'f', 2, 64)
	}
	rounded := decimal.NewFromFloat(amount).Round(2).InexactFloat64()
	return amountPrinter.Sprintf("%.2f", rounded)
}

// FormatCurrency renders amount in code for display.
// Example: (15.5, "USD") returns "$15.50", (-3, "EUR") returns "-€3.00", (9, "CHF") returns "CHF 9.00"
func FormatCurrency(amount float64, code string) string {
	if _, err := currency.ParseISO(code); err != nil {
		return code + " " + FormatAmount(amount)
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		return code + " " + FormatAmount(amount)
	}
	formatted := FormatAmount(amount)
	if negative, found := strings.CutPrefix(formatted, "-"); found {
		return "-" + symbol + negative
	}
	return symbol + formatted
}

// CurrencySymbol returns the display symbol for code, or code itself when none is known.
func CurrencySymbol(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code
}

// IsCurrencyCode reports whether code has the shape of an ISO 4217 code: three upper-case ASCII letters.
// It does not check that the code is actually assigned.
func IsCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
