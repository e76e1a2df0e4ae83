package pgsql

import (
	portsrepo "bankcore/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Tx:          &BaseRepository{Pool: dbPool},
		AccountRepo: newPgxAccountRepository(dbPool),
		BranchRepo:  newPgxBranchRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
	}
}
