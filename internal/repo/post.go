package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/onenotebe/onenotebe/internal/models"
)

func (r *GormRepo) GetPosts(ctx context.Context, offset, limit int) (int64, []models.Post, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Post
	if err := r.DB.WithContext(ctx).Model(&models.Post{}).
		Preload("Categories").
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.DB.WithContext(ctx).Preload("Categories").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormRepo) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.DB.WithContext(ctx).Preload("Categories").Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormRepo) CreatePost(ctx context.Context, post *models.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *GormRepo) SavePost(ctx context.Context, post *models.Post) error {
	return r.DB.WithContext(ctx).Save(post).Error
}

func (r *GormRepo) ReplacePostCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	return r.DB.WithContext(ctx).Model(post).Association("Categories").Replace(categories)
}

func (r *GormRepo) DeletePost(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetCategoriesByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
