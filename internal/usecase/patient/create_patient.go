package patient

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BruksfildServices01/clinic-portal/internal/audit"
	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-portal/internal/imaging"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/imagestore"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

type CreatePatientInput struct {
	Fields domain.Fields
	// Image is optional.
	Image io.Reader
}

type CreatePatient struct {
	repo   domain.Repository
	images imagestore.Store
	maxDim int
	audit  *audit.Dispatcher
}

func NewCreatePatient(
	repo domain.Repository,
	images imagestore.Store,
	maxDim int,
	audit *audit.Dispatcher,
) *CreatePatient {
	return &CreatePatient{
		repo:   repo,
		images: images,
		maxDim: maxDim,
		audit:  audit,
	}
}

func (uc *CreatePatient) Execute(ctx context.Context, in CreatePatientInput) (*models.Patient, error) {
	p := &models.Patient{}
	in.Fields.Apply(p)

	if in.Image != nil {
		if err := attachImage(ctx, uc.images, p, in.Image, uc.maxDim); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.CreatePatient(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "patient_created",
		Entity:   "patient",
		EntityID: &p.ID,
		Metadata: map[string]any{"has_image": p.HasImage()},
	})

	return p, nil
}

func attachImage(ctx context.Context, store imagestore.Store, p *models.Patient, r io.Reader, maxDim int) error {
	img, err := imaging.Process(r, maxDim)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			return domain.ErrInvalidImage
		}
		return err
	}
	return store.Put(ctx, p, img)
}
