package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, fetcher portsrepo.ExchangeRateFetcher) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		KeyValueStore: NewPgxKeyValueRepository(dbPool),
		RateFetcher:   fetcher,
	}
}
