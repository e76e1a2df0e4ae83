package services

// ServiceContainer holds all service facades for dependency injection into
// the handler layer.
type ServiceContainer struct {
	Ledger    LedgerSvcFacade
	Statement StatementSvcFacade
	Branch    BranchSvcFacade
	User      UserSvcFacade
}
