package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-portal/internal/audit"
	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {
	// ids start at 1
	if id == 0 {
		return &domain.NotFoundError{ID: id}
	}

	n, err := uc.repo.DeleteAppointment(ctx, id)
	if err != nil {
		return &domain.StorageError{Op: "delete appointment", Err: err}
	}
	if n == 0 {
		return &domain.NotFoundError{ID: id}
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
