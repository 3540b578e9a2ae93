package database

import (
	"context"

	"github.com/diyhub/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepo struct {
	db *gorm.DB
}

func NewRatingRepo(db *gorm.DB) *RatingRepo {
	return &RatingRepo{db}
}

// Upsert stores the user's rating for a project, overwriting an earlier one
func (r *RatingRepo) Upsert(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(rating).Error
}

// FindForUser returns nil, nil when the user has not rated the project
func (r *RatingRepo) FindForUser(ctx context.Context, userID uuid.UUID, projectID uint) (*models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Limit(1).
		Find(&ratings).Error
	if err != nil || len(ratings) == 0 {
		return nil, err
	}
	return &ratings[0], nil
}

// Average returns the mean rating of a project, 0 when it has none
func (r *RatingRepo) Average(ctx context.Context, projectID uint) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("project_id = ?", projectID).
		Scan(&avg).Error
	return avg, err
}
