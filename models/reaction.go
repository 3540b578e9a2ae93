package models

import (
	"time"

	"github.com/google/uuid"
)

// ReactionKind is the flavour of a reaction.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
	ReactionLove    ReactionKind = "love"
)

// ParseReactionKind reports whether s is an accepted reaction.
func ParseReactionKind(s string) (ReactionKind, bool) {
	switch k := ReactionKind(s); k {
	case ReactionLike, ReactionDislike, ReactionLove:
		return k, true
	}
	return "", false
}

// Reaction is at most one per (target, user); the unique index is the upsert's conflict target.
type Reaction struct {
	ID           uint         `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	TargetID     uint         `json:"target_id" db:"target_id" gorm:"not null;uniqueIndex:idx_reactions_target_user,priority:1"`
	TargetType   TargetKind   `json:"target_type" db:"target_type" gorm:"type:varchar(16);not null;uniqueIndex:idx_reactions_target_user,priority:2"`
	UserID       uuid.UUID    `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reactions_target_user,priority:3"`
	ReactionType ReactionKind `json:"reaction_type" db:"reaction_type" gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
}

// ReactionCounts is the fixed-shape aggregate returned for a target.
type ReactionCounts struct {
	Like    int64 `json:"like"`
	Dislike int64 `json:"dislike"`
	Love    int64 `json:"love"`
}

// Add folds one grouped row into the counts; unknown kinds are ignored.
func (c *ReactionCounts) Add(kind ReactionKind, n int64) {
	switch kind {
	case ReactionLike:
		c.Like += n
	case ReactionDislike:
		c.Dislike += n
	case ReactionLove:
		c.Love += n
	}
}
