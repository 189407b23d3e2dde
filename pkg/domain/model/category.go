package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = errors.New("category not found")

type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// CategoryPatch carries the optional fields of a partial update. Nil fields
// leave the current value untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
}

func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}

type CategoryRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Find(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
