package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-portal/internal/dto"
	"github.com/BruksfildServices01/clinic-portal/internal/httperr"
	"github.com/BruksfildServices01/clinic-portal/internal/httpresp"
	"github.com/BruksfildServices01/clinic-portal/internal/imaging"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/imagestore"
	ucPatient "github.com/BruksfildServices01/clinic-portal/internal/usecase/patient"
)

const imageFormField = "image"

type PatientHandler struct {
	listUC   *ucPatient.ListPatients
	getUC    *ucPatient.GetPatient
	createUC *ucPatient.CreatePatient
	updateUC *ucPatient.UpdatePatient
	deleteUC *ucPatient.DeletePatient
	images   imagestore.Store
	log      *zap.Logger
}

func NewPatientHandler(
	listUC *ucPatient.ListPatients,
	getUC *ucPatient.GetPatient,
	createUC *ucPatient.CreatePatient,
	updateUC *ucPatient.UpdatePatient,
	deleteUC *ucPatient.DeletePatient,
	images imagestore.Store,
	log *zap.Logger,
) *PatientHandler {
	return &PatientHandler{
		listUC:   listUC,
		getUC:    getUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		images:   images,
		log:      log,
	}
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		h.log.Error("list patients", zap.Error(err))
		httperr.Internal(c, "storage_error", "Error fetching patients")
		return
	}

	out := make([]dto.Patient, 0, len(patients))
	for i := range patients {
		out = append(out, dto.FromPatient(&patients[i], h.images.URL(&patients[i])))
	}
	httpresp.OK(c, dto.PatientList{Patients: out})
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parsePatientID(c)
	if !ok {
		return
	}

	p, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get patient", err, "Error fetching patient")
		return
	}

	httpresp.OK(c, dto.FromPatient(p, h.images.URL(p)))
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req dto.PatientRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "validation_error", err.Error())
		return
	}

	img, closeImg, ok := h.openImage(c)
	if !ok {
		return
	}
	defer closeImg()

	p, err := h.createUC.Execute(c.Request.Context(), ucPatient.CreatePatientInput{
		Fields: req.Fields(),
		Image:  img,
	})
	if err != nil {
		h.fail(c, "create patient", err, "Error adding patient")
		return
	}

	httpresp.Created(c, dto.PatientCreated{
		Message:   "Patient added successfully",
		PatientID: p.ID,
	})
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parsePatientID(c)
	if !ok {
		return
	}

	var req dto.PatientRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "validation_error", err.Error())
		return
	}

	img, closeImg, ok := h.openImage(c)
	if !ok {
		return
	}
	defer closeImg()

	if err := h.updateUC.Execute(c.Request.Context(), ucPatient.UpdatePatientInput{
		ID:     id,
		Fields: req.Fields(),
		Image:  img,
	}); err != nil {
		h.fail(c, "update patient", err, "Error updating patient")
		return
	}

	httpresp.Message(c, "Patient updated successfully")
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parsePatientID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		h.fail(c, "delete patient", err, "Error deleting patient")
		return
	}

	httpresp.Message(c, "Patient deleted successfully")
}

// openImage returns the uploaded picture of a multipart request, or nil
// when there is none.
func (h *PatientHandler) openImage(c *gin.Context) (io.Reader, func(), bool) {
	noop := func() {}
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, noop, true
	}

	fh, err := c.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, true
		}
		httperr.BadRequest(c, "invalid_image", "Could not read the uploaded image.")
		return nil, noop, false
	}
	if fh.Size > imaging.MaxUploadBytes {
		httperr.BadRequest(c, "invalid_image", "The uploaded image is too large.")
		return nil, noop, false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not read the uploaded image.")
		return nil, noop, false
	}
	return f, func() { _ = f.Close() }, true
}

func (h *PatientHandler) fail(c *gin.Context, op string, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "patient_not_found", "Patient not found")
	case errors.Is(err, domain.ErrInvalidImage):
		httperr.BadRequest(c, "invalid_image", "The uploaded file is not a supported image.")
	default:
		h.log.Error(op, zap.Error(err))
		httperr.Internal(c, "storage_error", message)
	}
}

func parsePatientID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid patient id.")
		return 0, false
	}
	return uint(id), true
}
