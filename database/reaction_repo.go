package database

import (
	"context"

	"github.com/diyhub/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepo struct {
	db *gorm.DB
}

func NewReactionRepo(db *gorm.DB) *ReactionRepo {
	return &ReactionRepo{db}
}

// Upsert sets the user's reaction on target, replacing any earlier one
func (r *ReactionRepo) Upsert(ctx context.Context, target models.ReactionTarget, userID uuid.UUID, kind models.ReactionKind) error {
	reaction := models.Reaction{
		TargetID:     target.ID(),
		TargetType:   target.Kind(),
		UserID:       userID,
		ReactionType: kind,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "target_id"}, {Name: "target_type"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reaction_type", "updated_at"}),
	}).Create(&reaction).Error
}

// Delete removes the user's reaction on target. Removing a missing reaction is not an error.
func (r *ReactionRepo) Delete(ctx context.Context, target models.ReactionTarget, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ? AND user_id = ?", target.Kind(), target.ID(), userID).
		Delete(&models.Reaction{}).Error
}

// FindForUser returns nil, nil when the user has not reacted to target
func (r *ReactionRepo) FindForUser(ctx context.Context, target models.ReactionTarget, userID uuid.UUID) (*models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ? AND user_id = ?", target.Kind(), target.ID(), userID).
		Limit(1).
		Find(&reactions).Error
	if err != nil || len(reactions) == 0 {
		return nil, err
	}
	return &reactions[0], nil
}

// Counts aggregates the reactions on target. Kinds nobody used count as zero.
func (r *ReactionRepo) Counts(ctx context.Context, target models.ReactionTarget) (models.ReactionCounts, error) {
	var counts models.ReactionCounts
	var rows []struct {
		ReactionType models.ReactionKind
		Count        int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("reaction_type, COUNT(*) AS count").
		Where("target_type = ? AND target_id = ?", target.Kind(), target.ID()).
		Group("reaction_type").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}
	for _, row := range rows {
		counts.Add(row.ReactionType, row.Count)
	}
	return counts, nil
}

// LikesByProjects counts likes for many projects in one grouped query. Projects without
// likes are absent from the map.
func (r *ReactionRepo) LikesByProjects(ctx context.Context, projectIDs []uint) (map[uint]int64, error) {
	likes := make(map[uint]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return likes, nil
	}

	var rows []struct {
		TargetID uint
		Count    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("target_id, COUNT(*) AS count").
		Where("target_type = ? AND reaction_type = ? AND target_id IN ?", models.TargetProject, models.ReactionLike, projectIDs).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		likes[row.TargetID] = row.Count
	}
	return likes, nil
}
