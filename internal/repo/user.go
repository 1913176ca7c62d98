package repo

import (
	"context"

	"github.com/onenotebe/onenotebe/internal/models"
)

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ExistsUserByUsername(ctx context.Context, username string) (bool, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&total).Error
	return total > 0, err
}

func (r *GormRepo) ExistsUserByEmail(ctx context.Context, email string) (bool, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&total).Error
	return total > 0, err
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
