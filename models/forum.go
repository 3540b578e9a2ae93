package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Forum is a discussion thread opened by a user. Its comments use the "forum" target kind.
type Forum struct {
	ID        uint                        `json:"forum_id" db:"forum_id" gorm:"column:forum_id;primaryKey;autoIncrement"`
	Title     string                      `json:"forum_title" db:"forum_title" gorm:"column:forum_title;type:text;not null"`
	UserID    uuid.UUID                   `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index:idx_forums_user_id"`
	Tags      datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	CreatedAt time.Time                   `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	User      *User                       `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// NewForumTags normalizes forum tags with the same rules as project tags.
func NewForumTags(values []string) datatypes.JSONSlice[string] {
	tags := NewProjectTags(values)
	out := make(datatypes.JSONSlice[string], 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.Value)
	}
	return out
}

func normalizeTag(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
