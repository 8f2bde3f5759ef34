package pgsql_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/judeotine/SpendWise/internal/repositories/database/pgsql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

type fakeDB struct {
	rows      map[string]string
	queryErr  error
	execErr   error
	execCalls int
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execCalls++
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if !strings.Contains(sql, "ON CONFLICT") {
		return pgconn.CommandTag{}, errors.New("expected upsert")
	}
	f.rows[args[0].(string)] = args[1].(string)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if f.queryErr != nil {
		return fakeRow{err: f.queryErr}
	}
	value, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: value}
}

func TestPgxKeyValueRepository_SetThenGet(t *testing.T) {
	db := &fakeDB{rows: map[string]string{}}
	repo := pgsql.NewPgxKeyValueRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "spendwise-currency", "EUR"))
	require.NoError(t, repo.Set(ctx, "spendwise-currency", "GBP"))

	value, found, err := repo.Get(ctx, "spendwise-currency")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "GBP", value)
	assert.Equal(t, 2, db.execCalls)
}

func TestPgxKeyValueRepository_GetMissing(t *testing.T) {
	repo := pgsql.NewPgxKeyValueRepository(&fakeDB{rows: map[string]string{}})

	value, found, err := repo.Get(context.Background(), "nope")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestPgxKeyValueRepository_Errors(t *testing.T) {
	dbErr := errors.New("connection reset")
	repo := pgsql.NewPgxKeyValueRepository(&fakeDB{rows: map[string]string{}, queryErr: dbErr, execErr: dbErr})
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, found)

	err = repo.Set(ctx, "k", "v")
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "failed to write key k")
}
