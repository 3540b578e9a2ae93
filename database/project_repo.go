package database

import (
	"context"
	"errors"
	"strings"

	"github.com/diyhub/backend/models"
	"gorm.io/gorm"
)

// ProjectFilter narrows FindAll. Zero values match everything.
type ProjectFilter struct {
	Tag    string
	Level  models.SkillLevel
	Search string
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns projects newest first, with tags and owner loaded
func (r *ProjectRepo) FindAll(ctx context.Context, filter ProjectFilter) ([]*models.Project, error) {
	query := r.db.WithContext(ctx).Preload("Tags").Preload("User")

	if tag := strings.ToLower(strings.TrimSpace(filter.Tag)); tag != "" {
		sub := r.db.Model(&models.ProjectTag{}).Select("project_id").Where("value = ?", tag)
		query = query.Where("id IN (?)", sub)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+search+"%")
	}

	var projects []*models.Project
	err := query.Order("created_at DESC").Order("id DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns nil, nil when the project does not exist
func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Tags").Preload("User").First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists reports whether a project row with id is present
func (r *ProjectRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a new project and its tag set in one statement batch
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("User").Create(project).Error
}

// IncrementViews bumps the view counter of a project
func (r *ProjectRepo) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}
