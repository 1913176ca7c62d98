package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/onenotebe/onenotebe/internal/logging"
	"github.com/onenotebe/onenotebe/internal/models"
	"github.com/onenotebe/onenotebe/internal/repo"
	"github.com/onenotebe/onenotebe/internal/util"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) List(ctx context.Context, page, size int) (int64, []models.Category, error) {
	offset, limit := util.Calculate(page, size)
	return s.Repo.GetCategories(ctx, offset, limit)
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.Repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, name string, actorID uint) (*models.Category, error) {
	l := logging.FromContext(ctx).With("svc", "category.create")

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	category := models.Category{
		Name: name,
		Slug: util.Slugify(name),
	}
	category.CreatedBy = &actorID
	category.UpdatedBy = &actorID

	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	l.Info("category_created", "category_id", category.ID, "slug", category.Slug)
	return &category, nil
}

// Update renames a category; a changed name regenerates the slug with the
// same rules used at creation.
func (s *CategoryService) Update(ctx context.Context, id uint, name string, actorID uint) (*models.Category, error) {
	l := logging.FromContext(ctx).With("svc", "category.update")

	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name != "" && name != category.Name {
		category.Name = name
		category.Slug = util.Slugify(name)
	}
	category.UpdatedBy = &actorID

	if err := s.Repo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}

	l.Info("category_updated", "category_id", category.ID, "slug", category.Slug)
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "category.delete")

	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete category: %w", err)
	}

	l.Info("category_deleted", "category_id", id)
	return nil
}
