package domain

import (
	"encoding/json"
	"math"
	"time"
)

// RateSource identifies where a rate table came from.
type RateSource string

const (
	RateSourceMemory   RateSource = "memory"   // fresh in-memory snapshot
	RateSourceRemote   RateSource = "remote"   // fetched during this lookup
	RateSourceDurable  RateSource = "durable"  // durable mirror of the last successful fetch
	RateSourceStatic   RateSource = "static"   // built-in fallback table
	RateSourceIdentity RateSource = "identity" // {base: 1}, nothing else known
)

// ConversionTier names the step of the fallback ladder that produced a conversion.
type ConversionTier string

const (
	TierSameCurrency  ConversionTier = "same_currency"
	TierDirect        ConversionTier = "direct"
	TierDurableBridge ConversionTier = "durable_bridge"
	TierUSDBridge     ConversionTier = "usd_bridge"
	TierStaticTable   ConversionTier = "static_table"
	TierIdentity      ConversionTier = "identity"
)

// BridgeCurrency is the pivot used when neither side of a pair has a direct quote.
const BridgeCurrency = "USD"

// RateSnapshot is one fetched rate table plus its fetch time and expiry.
// One unit of Base equals Rates[code] units of code.
type RateSnapshot struct {
	Base      string
	Rates     map[string]float64
	FetchedAt time.Time
	ExpiresAt time.Time
}

// NewRateSnapshot builds a snapshot that expires ttl after fetchedAt.
// A non-positive ttl is bumped to one millisecond so that ExpiresAt is always after FetchedAt.
func NewRateSnapshot(base string, rates map[string]float64, fetchedAt time.Time, ttl time.Duration) *RateSnapshot {
	if ttl <= 0 {
		ttl = time.Millisecond
	}
	return &RateSnapshot{
		Base:      base,
		Rates:     rates,
		FetchedAt: fetchedAt,
		ExpiresAt: fetchedAt.Add(ttl),
	}
}

// IsFresh reports whether the snapshot can still be served without a refetch.
func (s *RateSnapshot) IsFresh(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// RateFor returns the usable rate for code.
func (s *RateSnapshot) RateFor(code string) (float64, bool) {
	return usableRate(s.Rates, code)
}

// durableSnapshot is the persisted layout: epoch milliseconds for both instants.
type durableSnapshot struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
	Expiry    int64              `json:"expiry"`
}

// MarshalJSON encodes the snapshot in its durable storage layout.
func (s RateSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(durableSnapshot{
		Base:      s.Base,
		Rates:     s.Rates,
		Timestamp: s.FetchedAt.UnixMilli(),
		Expiry:    s.ExpiresAt.UnixMilli(),
	})
}

// UnmarshalJSON decodes the durable storage layout.
func (s *RateSnapshot) UnmarshalJSON(data []byte) error {
	var raw durableSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Base = raw.Base
	s.Rates = raw.Rates
	s.FetchedAt = time.UnixMilli(raw.Timestamp)
	s.ExpiresAt = time.UnixMilli(raw.Expiry)
	return nil
}

// RateTable is what the rate cache hands out: a rates map together with the base
// it is actually quoted against, which may differ from the base that was asked for.
type RateTable struct {
	Base   string
	Rates  map[string]float64
	Source RateSource
}

// Rate returns the usable rate for code.
func (t RateTable) Rate(code string) (float64, bool) {
	return usableRate(t.Rates, code)
}

// IsObserved reports whether the table came from a real rate fetch, now or earlier.
func (t RateTable) IsObserved() bool {
	switch t.Source {
	case RateSourceMemory, RateSourceRemote, RateSourceDurable:
		return true
	}
	return false
}

// Conversion is the outcome of a single conversion call.
type Conversion struct {
	Amount float64        `json:"amount"`
	From   string         `json:"from"`
	To     string         `json:"to"`
	Result float64        `json:"result"`
	Tier   ConversionTier `json:"tier"`
}

// usableRate treats zero, negative and non-finite rates as absent.
func usableRate(rates map[string]float64, code string) (float64, bool) {
	rate, ok := rates[code]
	if !ok || rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return 0, false
	}
	return rate, true
}
