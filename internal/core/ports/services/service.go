package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Posting PostingSvcFacade
	Credit  CreditSvcFacade
	Due     DueSvcFacade
}
