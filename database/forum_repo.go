package database

import (
	"context"
	"errors"

	"github.com/diyhub/backend/models"
	"gorm.io/gorm"
)

type ForumRepo struct {
	db *gorm.DB
}

func NewForumRepo(db *gorm.DB) *ForumRepo {
	return &ForumRepo{db}
}

// Add inserts a new forum
func (r *ForumRepo) Add(ctx context.Context, forum *models.Forum) error {
	return r.db.WithContext(ctx).Omit("User").Create(forum).Error
}

// FindAll returns every forum with its owner loaded, newest first
func (r *ForumRepo) FindAll(ctx context.Context) ([]*models.Forum, error) {
	var forums []*models.Forum
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Order("forum_id DESC").
		Find(&forums).Error
	return forums, err
}

// FindByID returns nil, nil when the forum does not exist
func (r *ForumRepo) FindByID(ctx context.Context, id uint) (*models.Forum, error) {
	var forum models.Forum
	err := r.db.WithContext(ctx).Preload("User").First(&forum, "forum_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &forum, nil
}

// Exists reports whether a forum row with id is present
func (r *ForumRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Forum{}).Where("forum_id = ?", id).Count(&count).Error
	return count > 0, err
}
