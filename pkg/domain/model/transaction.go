package model

import "context"

// RepositoryProvider hands out repositories bound to one storage scope,
// either the shared connection pool or a single open transaction.
type RepositoryProvider interface {
	Orders() OrderRepository
	Products() ProductRepository
	Users() UserRepository
	Categories() CategoryRepository
}

// UnitOfWork runs fn inside a single transaction. Every repository obtained
// from the provider shares that transaction; if fn returns an error the
// transaction is rolled back and none of its writes survive.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(provider RepositoryProvider) error) error
}
