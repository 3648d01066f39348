package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// One provider is one remote store: the database or the demo store.
type RepositoryProvider struct {
	PropertyRepo PropertyRepositoryFacade
	RoomRepo     RoomRepositoryFacade
	TenantRepo   TenantRepositoryFacade
	PaymentRepo  PaymentRepositoryFacade
	UserRepo     UserRepositoryFacade
}
