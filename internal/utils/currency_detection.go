package utils

import (
	"strings"

	"github.com/judeotine/SpendWise/internal/core/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// localeCurrencies covers locales the SpendWise client historically special-cased.
// Keys are either full locales or bare language parts.
var localeCurrencies = map[string]string{
	"en-US": "USD",
	"en-GB": "GBP",
	"de":    "EUR",
	"fr":    "EUR",
	"jp":    "JPY",
	"zh-CN": "CNY",
	"ng":    "NGN",
	"in":    "INR",
}

// DetectCurrency guesses a display currency from a BCP 47 locale such as "de-CH" or "pt_BR".
// A full-locale entry in the legacy map wins, then an explicit region, then the legacy
// language map, then the region x/text infers.
// Anything unrecognised yields USD.
func DetectCurrency(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return domain.DefaultCurrencyCode
	}
	if code, ok := localeCurrencies[locale]; ok {
		return code
	}

	tag, err := language.Parse(locale)
	parsed := err == nil
	if parsed {
		if region, conf := tag.Region(); conf == language.Exact {
			if unit, ok := currency.FromRegion(region); ok {
				return unit.String()
			}
		}
	}

	lang, _, _ := strings.Cut(locale, "-")
	if code, ok := localeCurrencies[strings.ToLower(lang)]; ok {
		return code
	}

	if parsed {
		if unit, conf := currency.FromTag(tag); conf != language.No {
			return unit.String()
		}
	}
	return domain.DefaultCurrencyCode
}
