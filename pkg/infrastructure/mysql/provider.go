package mysql

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var _ model.RepositoryProvider = &RepositoryProvider{}

// RepositoryProvider hands out repositories bound to one executor: the
// connection pool, or a single transaction inside UnitOfWork.Execute.
type RepositoryProvider struct {
	ext sqlx.ExtContext
}

func NewRepositoryProvider(db *sqlx.DB) *RepositoryProvider {
	return &RepositoryProvider{ext: db}
}

func (p *RepositoryProvider) Orders() model.OrderRepository {
	return &orderRepository{ext: p.ext}
}

func (p *RepositoryProvider) Products() model.ProductRepository {
	return &productRepository{ext: p.ext}
}

func (p *RepositoryProvider) Users() model.UserRepository {
	return &userRepository{ext: p.ext}
}

func (p *RepositoryProvider) Categories() model.CategoryRepository {
	return &categoryRepository{ext: p.ext}
}

var _ model.UnitOfWork = &UnitOfWork{}

type UnitOfWork struct {
	db *sqlx.DB
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(provider model.RepositoryProvider) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	if err := fn(&RepositoryProvider{ext: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}
