package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var _ model.ProductRepository = &productRepository{}

type productRepository struct {
	ext sqlx.ExtContext
}

type productRow struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	CategoryID  uuid.UUID       `db:"category_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r productRow) toModel() model.Product {
	return model.Product(r)
}

func newProductRow(p *model.Product) productRow {
	return productRow(*p)
}

const productColumns = `id, name, description, price, stock, category_id, created_at, updated_at`

func (r *productRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	const query = `
		INSERT INTO products (id, name, description, price, stock, category_id, created_at, updated_at)
		VALUES (:id, :name, :description, :price, :stock, :category_id, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, newProductRow(product))
	return errors.Wrap(err, "insert product")
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `
		UPDATE products
		SET name = :name, description = :description, price = :price,
		    stock = :stock, category_id = :category_id, updated_at = :updated_at
		WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, newProductRow(product))
	return errors.Wrap(err, "update product")
}

func (r *productRepository) Find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.find(ctx, id, "")
}

// FindForUpdate takes a row lock that lives until the surrounding transaction
// ends, serializing concurrent stock checks on the same product.
func (r *productRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.find(ctx, id, " FOR UPDATE")
}

func (r *productRepository) find(ctx context.Context, id uuid.UUID, suffix string) (*model.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT `+productColumns+` FROM products WHERE id = ?`+suffix, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select product")
	}
	product := row.toModel()
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	return r.selectProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
}

func (r *productRepository) ListPage(ctx context.Context, limit, offset int) ([]model.Product, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.ext, &total, `SELECT COUNT(*) FROM products`); err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	products, err := r.selectProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	return r.selectProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE category_id = ? ORDER BY name`, categoryID)
}

func (r *productRepository) Search(ctx context.Context, term string) ([]model.Product, error) {
	return r.selectProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE LOWER(name) LIKE ? ORDER BY name`,
		likePattern(term))
}

func (r *productRepository) SearchPage(ctx context.Context, term string, limit, offset int) ([]model.Product, int, error) {
	pattern := likePattern(term)

	var total int
	err := sqlx.GetContext(ctx, r.ext, &total,
		`SELECT COUNT(*) FROM products WHERE LOWER(name) LIKE ?`, pattern)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	products, err := r.selectProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE LOWER(name) LIKE ? ORDER BY name LIMIT ? OFFSET ?`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.ext.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) selectProducts(ctx context.Context, query string, args ...interface{}) ([]model.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select products")
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products, nil
}

func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}
