package database

import (
	"context"
	"errors"

	"github.com/diyhub/backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// Add inserts a comment attached to target. The target is typed, so TargetType always holds
// an allowed kind.
func (r *CommentRepo) Add(ctx context.Context, target models.CommentTarget, comment *models.Comment) error {
	comment.TargetType = target.Kind()
	comment.TargetID = target.ID()
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID returns nil, nil when the comment does not exist
func (r *CommentRepo) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, "comment_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindTopLevel returns the comments of a target that are not replies, oldest first
func (r *CommentRepo) FindTopLevel(ctx context.Context, target models.CommentTarget) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ? AND parent_comment_id IS NULL", target.Kind(), target.ID()).
		Order("created_at ASC").
		Order("comment_id ASC").
		Find(&comments).Error
	return comments, err
}

// FindByTarget returns every comment of a target, replies included, oldest first
func (r *CommentRepo) FindByTarget(ctx context.Context, target models.CommentTarget) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", target.Kind(), target.ID()).
		Order("created_at ASC").
		Order("comment_id ASC").
		Find(&comments).Error
	return comments, err
}

// FindReplies returns the direct replies of a comment, oldest first
func (r *CommentRepo) FindReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	replies := []*models.Comment{}
	err := r.db.WithContext(ctx).
		Where("parent_comment_id = ?", commentID).
		Order("created_at ASC").
		Order("comment_id ASC").
		Find(&replies).Error
	return replies, err
}

// CountByTarget counts top-level comments and replies of a target
func (r *CommentRepo) CountByTarget(ctx context.Context, target models.CommentTarget) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("target_type = ? AND target_id = ?", target.Kind(), target.ID()).
		Count(&count).Error
	return count, err
}

// CountByTargets counts comments for many targets of one kind in a single grouped query.
// Targets without comments are absent from the map.
func (r *CommentRepo) CountByTargets(ctx context.Context, kind models.TargetKind, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		TargetID uint
		Count    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("target_id, COUNT(*) AS count").
		Where("target_type = ? AND target_id IN ?", kind, ids).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Count
	}
	return counts, nil
}
