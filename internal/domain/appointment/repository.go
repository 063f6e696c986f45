package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

type Repository interface {
	// ListAppointments returns every appointment ordered by id.
	ListAppointments(ctx context.Context) ([]models.Appointment, error)

	// CreateAppointment inserts ap and fills in its generated id.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// DeleteAppointment removes the row and reports how many rows matched.
	DeleteAppointment(ctx context.Context, id uint) (int64, error)
}
