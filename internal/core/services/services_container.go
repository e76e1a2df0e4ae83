package services

import (
	portsrepo "bankcore/internal/core/ports/repositories"
	portssvc "bankcore/internal/core/ports/services"
)

// NewServiceContainer wires all services over the given repositories. The
// user service doubles as the role resolver injected into the ledger and
// branch services.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	roleResolver := container.User.(portssvc.RoleResolverSvc)

	container.Ledger = NewLedgerService(
		repos.Tx,
		repos.AccountRepo,
		repos.BranchRepo,
		repos.JournalRepo,
		roleResolver,
	)
	container.Statement = NewStatementService(repos.AccountRepo, repos.JournalRepo)
	container.Branch = NewBranchService(repos.BranchRepo, roleResolver)

	return container
}
