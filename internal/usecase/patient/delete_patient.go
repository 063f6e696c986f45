package patient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-portal/internal/audit"
	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/imagestore"
)

type DeletePatient struct {
	repo   domain.Repository
	images imagestore.Store
	audit  *audit.Dispatcher
	log    *zap.Logger
}

func NewDeletePatient(
	repo domain.Repository,
	images imagestore.Store,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeletePatient {
	return &DeletePatient{
		repo:   repo,
		images: images,
		audit:  audit,
		log:    log,
	}
}

func (uc *DeletePatient) Execute(ctx context.Context, id uint) error {
	if id == 0 {
		return domain.ErrNotFound
	}

	p, err := uc.repo.GetPatient(ctx, id)
	if err != nil {
		return err
	}

	n, err := uc.repo.DeletePatient(ctx, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	// the record is gone either way; an orphaned object is only logged
	if err := uc.images.Remove(ctx, p); err != nil {
		uc.log.Warn("remove patient image", zap.Uint("patient_id", id), zap.Error(err))
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "patient_deleted",
		Entity:   "patient",
		EntityID: &id,
	})
	return nil
}
