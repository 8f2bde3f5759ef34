package services_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/judeotine/SpendWise/internal/apperrors"
	"github.com/judeotine/SpendWise/internal/core/services"
	"github.com/judeotine/SpendWise/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActiveCurrency_DefaultsToUSD(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	svc := services.NewActiveCurrencyService(memory.NewKeyValueStore(), clock.Now)

	assert.Equal(t, "USD", svc.Get(ctx))

	pref := svc.Preference(ctx)
	assert.Equal(t, "USD", pref.Code)
	assert.Equal(t, clock.now, pref.ChangedAt, "unknown change time reads as now")
}

func TestActiveCurrency_SetPersistsCodeAndTimestamp(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKeyValueStore()
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	svc := services.NewActiveCurrencyService(store, clock.Now)

	require.NoError(t, svc.Set(ctx, "NGN"))

	code, _, _ := store.Get(ctx, services.CurrencyStorageKey)
	stamp, _, _ := store.Get(ctx, services.CurrencyTimestampStorageKey)
	assert.Equal(t, "NGN", code)
	assert.Equal(t, strconv.FormatInt(clock.now.UnixMilli(), 10), stamp)

	clock.Advance(time.Hour)
	pref := svc.Preference(ctx)
	assert.Equal(t, "NGN", pref.Code)
	assert.Equal(t, int64(1_700_000_000_000), pref.ChangedAt.UnixMilli())
}

func TestActiveCurrency_RejectsBlankCode(t *testing.T) {
	store := memory.NewKeyValueStore()
	svc := services.NewActiveCurrencyService(store, nil)

	for _, code := range []string{"", "   "} {
		err := svc.Set(context.Background(), code)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
	_, found, _ := store.Get(context.Background(), services.CurrencyStorageKey)
	assert.False(t, found)
}

func TestActiveCurrency_StoreFailures(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("quota exceeded")

	store := new(MockKeyValueStore)
	store.On("Get", mock.Anything, services.CurrencyStorageKey).Return("", false, storeErr)
	store.On("Get", mock.Anything, services.CurrencyTimestampStorageKey).Return("not-a-number", true, nil)
	store.On("Set", mock.Anything, services.CurrencyStorageKey, "EUR").Return(storeErr)
	svc := services.NewActiveCurrencyService(store, nil)

	assert.Equal(t, "USD", svc.Get(ctx))
	assert.ErrorIs(t, svc.Set(ctx, "EUR"), storeErr)

	pref := svc.Preference(ctx)
	assert.Equal(t, "USD", pref.Code)
	assert.WithinDuration(t, time.Now(), pref.ChangedAt, time.Minute)
}
