package models

import (
	"time"

	"github.com/google/uuid"
)

// SkillLevel is the difficulty a project is tagged with.
type SkillLevel string

const (
	LevelEasy         SkillLevel = "easy"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// SkillLevels lists every accepted level in display order.
var SkillLevels = []SkillLevel{LevelEasy, LevelIntermediate, LevelAdvanced}

// ParseSkillLevel reports whether s is one of the accepted levels.
func ParseSkillLevel(s string) (SkillLevel, bool) {
	for _, level := range SkillLevels {
		if string(level) == s {
			return level, true
		}
	}
	return "", false
}

// Project represents a maker project with its cover image and tags
type Project struct {
	ID          uint         `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID    `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index:idx_projects_user_id"`
	Title       string       `json:"title" db:"title" gorm:"type:text;not null"`
	Level       SkillLevel   `json:"level" db:"level" gorm:"type:varchar(16);not null;index:idx_projects_level"`
	Description string       `json:"description" db:"description" gorm:"type:text;not null"`
	CoverImage  *string      `json:"cover_image" db:"cover_image" gorm:"type:text"`
	Views       int64        `json:"views" db:"views" gorm:"not null;default:0"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	Tags        []ProjectTag `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	User        *User        `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// TagValues returns the tag set as plain strings.
func (p *Project) TagValues() []string {
	values := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		values = append(values, tag.Value)
	}
	return values
}
