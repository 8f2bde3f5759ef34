package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/judeotine/SpendWise/internal/apperrors"
	"github.com/judeotine/SpendWise/internal/core/domain"
	portssvc "github.com/judeotine/SpendWise/internal/core/ports/services"
	"github.com/judeotine/SpendWise/internal/core/services"
	"github.com/judeotine/SpendWise/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var errNetworkDown = fmt.Errorf("%w: dial tcp: connection refused", apperrors.ErrNetworkFailure)

type RateCacheTestSuite struct {
	suite.Suite
	ctx     context.Context
	fetcher *MockRateFetcher
	store   *memory.KeyValueStore
	clock   *fakeClock
	cache   portssvc.RateCacheSvc
}

func (suite *RateCacheTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.fetcher = new(MockRateFetcher)
	suite.store = memory.NewKeyValueStore()
	suite.clock = &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	suite.cache = services.NewRateCache(suite.store, suite.fetcher, services.WithClock(suite.clock.Now))
}

func (suite *RateCacheTestSuite) seedDurable(raw string) {
	suite.Require().NoError(suite.store.Set(suite.ctx, services.RatesStorageKey, raw))
}

func (suite *RateCacheTestSuite) TestFreshHitSkipsNetwork() {
	usd := map[string]float64{"EUR": 0.91, "GBP": 0.79}
	suite.fetcher.On("FetchRates", mock.Anything, "USD").Return(usd, nil).Once()

	first := suite.cache.Lookup(suite.ctx, "USD")
	suite.clock.Advance(5 * time.Hour)
	second := suite.cache.Lookup(suite.ctx, "USD")

	suite.Equal(domain.RateSourceRemote, first.Source)
	suite.Equal(domain.RateSourceMemory, second.Source)
	suite.Equal(usd, second.Rates)
	suite.fetcher.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *RateCacheTestSuite) TestExpiredSnapshotRefetches() {
	suite.fetcher.On("FetchRates", mock.Anything, "USD").Return(map[string]float64{"EUR": 0.91}, nil).Once()
	suite.fetcher.On("FetchRates", mock.Anything, "USD").Return(map[string]float64{"EUR": 0.95}, nil).Once()

	suite.cache.GetRates(suite.ctx, "USD")
	suite.clock.Advance(6 * time.Hour)
	rates := suite.cache.GetRates(suite.ctx, "USD")

	suite.Equal(0.95, rates["EUR"])
	suite.fetcher.AssertNumberOfCalls(suite.T(), "FetchRates", 2)
}

func (suite *RateCacheTestSuite) TestSingleSlotIsReplacedByOtherBase() {
	suite.fetcher.On("FetchRates", mock.Anything, "USD").Return(map[string]float64{"EUR": 0.91}, nil).Twice()
	suite.fetcher.On("FetchRates", mock.Anything, "EUR").Return(map[string]float64{"USD": 1.1}, nil).Once()

	suite.cache.GetRates(suite.ctx, "USD")
	suite.cache.GetRates(suite.ctx, "EUR")
	table := suite.cache.Lookup(suite.ctx, "USD")

	suite.Equal(domain.RateSourceRemote, table.Source)
	suite.fetcher.AssertExpectations(suite.T())
}

func (suite *RateCacheTestSuite) TestSuccessfulFetchPersistsSnapshot() {
	suite.fetcher.On("FetchRates", mock.Anything, "EUR").Return(map[string]float64{"USD": 1.1, "GBP": 0.86}, nil).Once()

	suite.cache.GetRates(suite.ctx, "EUR")

	raw, found, err := suite.store.Get(suite.ctx, services.RatesStorageKey)
	suite.Require().NoError(err)
	suite.Require().True(found)

	var stored struct {
		Base      string             `json:"base"`
		Rates     map[string]float64 `json:"rates"`
		Timestamp int64              `json:"timestamp"`
		Expiry    int64              `json:"expiry"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	suite.Equal("EUR", stored.Base)
	suite.Equal(1.1, stored.Rates["USD"])
	suite.Equal(suite.clock.now.UnixMilli(), stored.Timestamp)
	suite.Equal(suite.clock.now.Add(services.DefaultRateTTL).UnixMilli(), stored.Expiry)

	snap, ok := suite.cache.DurableSnapshot(suite.ctx)
	suite.Require().True(ok)
	suite.Equal("EUR", snap.Base)
}

func (suite *RateCacheTestSuite) TestFetchFailureServesDurableOfAnyBase() {
	suite.seedDurable(`{"base":"USD","rates":{"EUR":0.91,"GBP":0.79},"timestamp":1,"expiry":2}`)
	suite.fetcher.On("FetchRates", mock.Anything, "EUR").Return(nil, errNetworkDown).Once()

	table := suite.cache.Lookup(suite.ctx, "EUR")

	suite.Equal(domain.RateSourceDurable, table.Source)
	suite.Equal("USD", table.Base)
	suite.Equal(map[string]float64{"EUR": 0.91, "GBP": 0.79}, table.Rates)
}

func (suite *RateCacheTestSuite) TestFetchFailureWithoutDurableUsesStaticThenIdentity() {
	suite.fetcher.On("FetchRates", mock.Anything, mock.Anything).Return(nil, errNetworkDown)

	static := suite.cache.Lookup(suite.ctx, "GBP")
	identity := suite.cache.Lookup(suite.ctx, "NGN")

	suite.Equal(domain.RateSourceStatic, static.Source)
	suite.Equal(1.16, static.Rates["EUR"])
	suite.Equal(domain.RateSourceIdentity, identity.Source)
	suite.Equal(map[string]float64{"NGN": 1}, identity.Rates)
}

func (suite *RateCacheTestSuite) TestUnreadableDurableIsIgnored() {
	suite.seedDurable(`{not json`)
	suite.fetcher.On("FetchRates", mock.Anything, "USD").Return(nil, errNetworkDown).Once()

	table := suite.cache.Lookup(suite.ctx, "USD")

	suite.Equal(domain.RateSourceStatic, table.Source)
	_, ok := suite.cache.DurableSnapshot(suite.ctx)
	suite.False(ok)
}

func (suite *RateCacheTestSuite) TestStaleSnapshotIsNeverPurged() {
	suite.fetcher.On("FetchRates", mock.Anything, "USD").Return(map[string]float64{"EUR": 0.91}, nil).Once()
	suite.fetcher.On("FetchRates", mock.Anything, "USD").Return(nil, errNetworkDown).Once()

	suite.cache.GetRates(suite.ctx, "USD")
	suite.clock.Advance(48 * time.Hour)
	table := suite.cache.Lookup(suite.ctx, "USD")

	suite.Equal(domain.RateSourceDurable, table.Source)
	suite.Equal(0.91, table.Rates["EUR"])
}

func (suite *RateCacheTestSuite) TestStoreErrorsDegradeQuietly() {
	store := new(MockKeyValueStore)
	store.On("Get", mock.Anything, services.RatesStorageKey).Return("", false, errors.New("disk gone"))
	store.On("Set", mock.Anything, services.RatesStorageKey, mock.Anything).Return(errors.New("disk gone"))
	cache := services.NewRateCache(store, suite.fetcher)

	suite.fetcher.On("FetchRates", mock.Anything, "USD").Return(map[string]float64{"EUR": 0.9}, nil).Once()
	suite.fetcher.On("FetchRates", mock.Anything, "EUR").Return(nil, errNetworkDown).Once()

	remote := cache.Lookup(suite.ctx, "USD")
	fallback := cache.Lookup(suite.ctx, "EUR")

	suite.Equal(domain.RateSourceRemote, remote.Source)
	suite.Equal(domain.RateSourceStatic, fallback.Source)
	store.AssertExpectations(suite.T())
}

func (suite *RateCacheTestSuite) TestConcurrentBasesEachGetTheirOwnTable() {
	want := map[string]map[string]float64{
		"USD": {"EUR": 0.91, "GBP": 0.79},
		"EUR": {"USD": 1.1, "GBP": 0.86},
	}
	for base, rates := range want {
		suite.fetcher.On("FetchRates", mock.Anything, base).Return(rates, nil)
	}

	const rounds = 100
	tables := make([]domain.RateTable, 2*rounds)
	requested := make([]string, 2*rounds)
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		for j, base := range []string{"USD", "EUR"} {
			idx := 2*i + j
			requested[idx] = base
			wg.Add(1)
			go func() {
				defer wg.Done()
				tables[idx] = suite.cache.Lookup(suite.ctx, base)
			}()
		}
	}
	wg.Wait()

	for i, table := range tables {
		suite.Equal(requested[i], table.Base, "lookup %d", i)
		suite.Equal(want[requested[i]], table.Rates, "lookup %d", i)
		suite.Contains([]domain.RateSource{domain.RateSourceMemory, domain.RateSourceRemote}, table.Source)
	}

	snap, ok := suite.cache.DurableSnapshot(suite.ctx)
	suite.Require().True(ok)
	suite.Contains([]string{"USD", "EUR"}, snap.Base)
	suite.Equal(want[snap.Base], snap.Rates)
}

func TestRateCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RateCacheTestSuite))
}
