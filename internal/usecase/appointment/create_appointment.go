package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-portal/internal/audit"
	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

type CreateAppointmentInput struct {
	Title string
	Start time.Time
	End   time.Time
}

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute validates and inserts one appointment. Overlapping appointments
// are accepted.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := domain.New(in.Title, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, &domain.StorageError{Op: "create appointment", Err: err}
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"start": ap.Start,
			"end":   ap.End,
		},
	})

	return ap, nil
}
