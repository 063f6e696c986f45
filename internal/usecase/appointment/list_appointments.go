package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(ctx context.Context) ([]models.Appointment, error) {
	apps, err := uc.repo.ListAppointments(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "list appointments", Err: err}
	}
	return apps, nil
}
