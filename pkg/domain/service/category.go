package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rachelSwimmer/StoreApi/pkg/domain/model"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

func NewCategoryService(repo model.CategoryRepository, dispatcher EventDispatcher) CategoryService {
	return &categoryService{repo: repo, dispatcher: dispatcher}
}

type categoryService struct {
	repo       model.CategoryRepository
	dispatcher EventDispatcher
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.repo.Find(ctx, id)
}

func (s *categoryService) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	categoryID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:          categoryID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.CategoryCreated{CategoryID: categoryID, Name: name})
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, patch model.CategoryPatch) (*model.Category, error) {
	category, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(category)

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
