package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

type PatientGormRepository struct {
	db *gorm.DB
}

func NewPatientGormRepository(db *gorm.DB) *PatientGormRepository {
	return &PatientGormRepository{db: db}
}

func (r *PatientGormRepository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	patients := []models.Patient{}
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientGormRepository) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var p models.Patient
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PatientGormRepository) CreatePatient(ctx context.Context, p *models.Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PatientGormRepository) UpdatePatient(ctx context.Context, p *models.Patient) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(p).
		Select(
			"employee_number", "first_name", "last_name", "birth_date", "gender", "email",
			"house_num", "street", "barangay", "city", "activeness",
			"surgical_history", "surgery_details", "weight", "height",
			"diagnosis", "allergies", "medications",
			"image", "image_type", "image_key", "updated_at",
		).
		Updates(p)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *PatientGormRepository) DeletePatient(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Patient{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

var _ domain.Repository = (*PatientGormRepository)(nil)
