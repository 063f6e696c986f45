package patient

import (
	"context"
	"fmt"
	"io"

	"github.com/BruksfildServices01/clinic-portal/internal/audit"
	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/imagestore"
)

type UpdatePatientInput struct {
	ID     uint
	Fields domain.Fields
	// Image replaces the current picture when set.
	Image io.Reader
}

type UpdatePatient struct {
	repo   domain.Repository
	images imagestore.Store
	maxDim int
	audit  *audit.Dispatcher
}

func NewUpdatePatient(
	repo domain.Repository,
	images imagestore.Store,
	maxDim int,
	audit *audit.Dispatcher,
) *UpdatePatient {
	return &UpdatePatient{
		repo:   repo,
		images: images,
		maxDim: maxDim,
		audit:  audit,
	}
}

func (uc *UpdatePatient) Execute(ctx context.Context, in UpdatePatientInput) error {
	if in.ID == 0 {
		return domain.ErrNotFound
	}

	p, err := uc.repo.GetPatient(ctx, in.ID)
	if err != nil {
		return err
	}

	in.Fields.Apply(p)

	if in.Image != nil {
		if err := attachImage(ctx, uc.images, p, in.Image, uc.maxDim); err != nil {
			return err
		}
	}

	n, err := uc.repo.UpdatePatient(ctx, p)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "patient_updated",
		Entity:   "patient",
		EntityID: &p.ID,
	})
	return nil
}
