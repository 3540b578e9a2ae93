package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for one project.
type Rating struct {
	ID        uint      `json:"-" db:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_project,priority:1"`
	ProjectID uint      `json:"project_id" db:"project_id" gorm:"not null;uniqueIndex:idx_ratings_user_project,priority:2;index:idx_ratings_project_id"`
	Rating    int       `json:"rating" db:"rating" gorm:"type:integer;not null;check:chk_ratings_range,rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"-" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"-" db:"updated_at" gorm:"not null;autoUpdateTime"`
}

// ValidRating reports whether r is inside the accepted 1..5 range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// RoundAverage rounds half away from zero, so a 4.5 mean is shown as 5.
func RoundAverage(avg float64) int {
	return int(math.Round(avg))
}
