package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is attached to a project or forum through (target_type, target_id). A non-nil
// ParentCommentID makes it a reply.
type Comment struct {
	ID              uint       `json:"comment_id" db:"comment_id" gorm:"column:comment_id;primaryKey;autoIncrement"`
	TargetID        uint       `json:"target_id" db:"target_id" gorm:"not null;index:idx_comments_target,priority:2"`
	TargetType      TargetKind `json:"target_type" db:"target_type" gorm:"type:varchar(16);not null;index:idx_comments_target,priority:1"`
	ParentCommentID *uint      `json:"parent_comment_id" db:"parent_comment_id" gorm:"index:idx_comments_parent"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id" gorm:"type:uuid;not null"`
	Content         string     `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
}

// IsReply reports whether the comment has a parent.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}

// Target returns the comment's target key. Rows are only ever written through a
// CommentTarget, so the kind is already valid.
func (c *Comment) Target() CommentTarget {
	return CommentTarget{kind: c.TargetType, id: c.TargetID}
}
