package database

import (
	"context"
	"errors"

	"github.com/diyhub/backend/models"
	"gorm.io/gorm"
)

type ConsultationRepo struct {
	db *gorm.DB
}

func NewConsultationRepo(db *gorm.DB) *ConsultationRepo {
	return &ConsultationRepo{db}
}

func (r *ConsultationRepo) Add(ctx context.Context, consultation *models.Consultation) error {
	return r.db.WithContext(ctx).Create(consultation).Error
}

// FindAll returns consultations in schedule order
func (r *ConsultationRepo) FindAll(ctx context.Context) ([]*models.Consultation, error) {
	consultations := []*models.Consultation{}
	err := r.db.WithContext(ctx).
		Order("date ASC").
		Order("time ASC").
		Order("consultation_id ASC").
		Find(&consultations).Error
	return consultations, err
}

// FindByID returns nil, nil when the consultation does not exist
func (r *ConsultationRepo) FindByID(ctx context.Context, id uint) (*models.Consultation, error) {
	var consultation models.Consultation
	err := r.db.WithContext(ctx).First(&consultation, "consultation_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &consultation, nil
}
