package patient

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

type ListPatients struct {
	repo domain.Repository
}

func NewListPatients(repo domain.Repository) *ListPatients {
	return &ListPatients{repo: repo}
}

func (uc *ListPatients) Execute(ctx context.Context) ([]models.Patient, error) {
	patients, err := uc.repo.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

type GetPatient struct {
	repo domain.Repository
}

func NewGetPatient(repo domain.Repository) *GetPatient {
	return &GetPatient{repo: repo}
}

func (uc *GetPatient) Execute(ctx context.Context, id uint) (*models.Patient, error) {
	if id == 0 {
		return nil, domain.ErrNotFound
	}
	return uc.repo.GetPatient(ctx, id)
}
