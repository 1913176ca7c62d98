package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/onenotebe/onenotebe/internal/events"
	"github.com/onenotebe/onenotebe/internal/logging"
	"github.com/onenotebe/onenotebe/internal/models"
	"github.com/onenotebe/onenotebe/internal/repo"
	"github.com/onenotebe/onenotebe/internal/service/search"
	"github.com/onenotebe/onenotebe/internal/util"
)

type PostService struct {
	Repo   *repo.GormRepo
	ES     *elasticsearch.Client
	Index  string
	Events *events.Producer
}

type PostInput struct {
	Title            string
	Content          string
	FeaturedImageURL string
	CategoryIDs      []uint
}

func (s *PostService) List(ctx context.Context, page, size int) (int64, []models.Post, error) {
	offset, limit := util.Calculate(page, size)
	return s.Repo.GetPosts(ctx, offset, limit)
}

func (s *PostService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.Repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %q", ErrNotFound, slug)
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.Repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, in PostInput, actorID uint) (*models.Post, error) {
	l := logging.FromContext(ctx).With("svc", "post.create")

	if err := validatePost(in); err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Title:            in.Title,
		Slug:             util.Slugify(in.Title),
		Content:          in.Content,
		FeaturedImageURL: in.FeaturedImageURL,
		Categories:       categories,
	}
	post.CreatedBy = &actorID
	post.UpdatedBy = &actorID

	if err := s.Repo.CreatePost(ctx, &post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.indexPost(ctx, &post)
	s.publish(ctx, "post_created", &post)

	l.Info("post_created", "post_id", post.ID, "slug", post.Slug)
	return &post, nil
}

func (s *PostService) Update(ctx context.Context, id uint, in PostInput, actorID uint) (*models.Post, error) {
	l := logging.FromContext(ctx).With("svc", "post.update")

	if err := validatePost(in); err != nil {
		return nil, err
	}
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Slug = util.Slugify(in.Title)
	post.Content = in.Content
	post.FeaturedImageURL = in.FeaturedImageURL
	post.UpdatedBy = &actorID

	if err := s.Repo.ReplacePostCategories(ctx, post, categories); err != nil {
		return nil, fmt.Errorf("replace categories: %w", err)
	}
	post.Categories = categories
	if err := s.Repo.SavePost(ctx, post); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}

	s.indexPost(ctx, post)
	s.publish(ctx, "post_updated", post)

	l.Info("post_updated", "post_id", post.ID, "slug", post.Slug)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "post.delete")

	if err := s.Repo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete post: %w", err)
	}

	if s.ES != nil {
		if err := search.DeletePost(ctx, s.ES, s.Index, id); err != nil {
			l.Error("deindex_post_failed", "post_id", id, "error", err)
		}
	}
	if err := s.Events.Publish(ctx, fmt.Sprint(id), map[string]any{
		"type":    "post_deleted",
		"post_id": id,
	}); err != nil {
		l.Error("event_publish_failed", "error", err)
	}

	l.Info("post_deleted", "post_id", id)
	return nil
}

func (s *PostService) Search(ctx context.Context, query string, page, size int) (int64, []models.Post, error) {
	if s.ES == nil {
		return 0, nil, errors.New("search is not configured")
	}
	from, limit := util.Calculate(page, size)
	return search.Search(ctx, s.ES, s.Index, query, from, limit)
}

func (s *PostService) resolveCategories(ctx context.Context, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	categories, err := s.Repo.GetCategoriesByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}
	if len(categories) != len(unique) {
		found := make(map[uint]struct{}, len(categories))
		for _, c := range categories {
			found[c.ID] = struct{}{}
		}
		missing := make([]uint, 0)
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: category ids %v", ErrNotFound, missing)
	}
	return categories, nil
}

func (s *PostService) indexPost(ctx context.Context, post *models.Post) {
	if s.ES == nil {
		return
	}
	if err := search.IndexPost(ctx, s.ES, s.Index, post); err != nil {
		logging.FromContext(ctx).Error("index_post_failed", "post_id", post.ID, "error", err)
	}
}

func (s *PostService) publish(ctx context.Context, eventType string, post *models.Post) {
	if err := s.Events.Publish(ctx, fmt.Sprint(post.ID), map[string]any{
		"type":    eventType,
		"post_id": post.ID,
		"slug":    post.Slug,
	}); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "error", err)
	}
}

func validatePost(in PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}
