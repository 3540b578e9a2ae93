package models

import (
	"time"

	"gorm.io/datatypes"
)

// ConsultationTimeLayout is the wall-clock format consultations are scheduled in.
const ConsultationTimeLayout = "15:04"

// ConsultationDateLayout is the calendar date format consultations are scheduled on.
const ConsultationDateLayout = "2006-01-02"

// Consultation is a scheduled meeting; it has no target association.
type Consultation struct {
	ID          uint           `json:"consultation_id" db:"consultation_id" gorm:"column:consultation_id;primaryKey;autoIncrement"`
	Topic       string         `json:"topic" db:"topic" gorm:"type:text;not null"`
	MeetLink    string         `json:"meet_link" db:"meet_link" gorm:"type:text;not null"`
	Date        datatypes.Date `json:"date" db:"date" gorm:"not null"`
	Time        string         `json:"time" db:"time" gorm:"type:varchar(5);not null"`
	Description *string        `json:"description" db:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
}

// DateString renders the date in ConsultationDateLayout.
func (c *Consultation) DateString() string {
	return time.Time(c.Date).Format(ConsultationDateLayout)
}
