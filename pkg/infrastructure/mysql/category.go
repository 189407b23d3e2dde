package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

var _ model.CategoryRepository = &categoryRepository{}

type categoryRepository struct {
	ext sqlx.ExtContext
}

type categoryRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r categoryRow) toModel() model.Category {
	return model.Category(r)
}

func newCategoryRow(c *model.Category) categoryRow {
	return categoryRow(*c)
}

func (r *categoryRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	const query = `
		INSERT INTO categories (id, name, description, created_at)
		VALUES (:id, :name, :description, :created_at)`
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, newCategoryRow(category))
	return errors.Wrap(err, "insert category")
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	const query = `
		UPDATE categories
		SET name = :name, description = :description
		WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, newCategoryRow(category))
	return errors.Wrap(err, "update category")
}

func (r *categoryRepository) Find(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var row categoryRow
	err := sqlx.GetContext(ctx, r.ext, &row,
		`SELECT id, name, description, created_at FROM categories WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select category")
	}
	category := row.toModel()
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var rows []categoryRow
	err := sqlx.SelectContext(ctx, r.ext, &rows,
		`SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "select categories")
	}

	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.toModel())
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.ext.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	if affected == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}
