package database

import (
	"context"

	"github.com/diyhub/backend/models"
	"gorm.io/gorm"
)

type ProjectTagRepo struct {
	db *gorm.DB
}

func NewProjectTagRepo(db *gorm.DB) *ProjectTagRepo {
	return &ProjectTagRepo{db}
}

// DistinctValues returns every tag in use, alphabetically
func (r *ProjectTagRepo) DistinctValues(ctx context.Context) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&models.ProjectTag{}).
		Distinct("value").
		Order("value").
		Pluck("value", &values).Error
	return values, err
}

// FindByProject returns the tags of one project
func (r *ProjectTagRepo) FindByProject(ctx context.Context, projectID uint) ([]models.ProjectTag, error) {
	var tags []models.ProjectTag
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&tags).Error
	return tags, err
}
