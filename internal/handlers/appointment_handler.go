package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-portal/internal/dto"
	"github.com/BruksfildServices01/clinic-portal/internal/httperr"
	"github.com/BruksfildServices01/clinic-portal/internal/httpresp"
	"github.com/BruksfildServices01/clinic-portal/internal/infra/idempotency"
	ucAppointment "github.com/BruksfildServices01/clinic-portal/internal/usecase/appointment"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	listUC   *ucAppointment.ListAppointments
	createUC *ucAppointment.CreateAppointment
	deleteUC *ucAppointment.DeleteAppointment
	idem     idempotency.Store
	log      *zap.Logger
}

func NewAppointmentHandler(
	listUC *ucAppointment.ListAppointments,
	createUC *ucAppointment.CreateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	idem idempotency.Store,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		listUC:   listUC,
		createUC: createUC,
		deleteUC: deleteUC,
		idem:     idem,
		log:      log,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	apps, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		h.log.Error("list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.AppointmentListError{
			Error:        "storage_error",
			Message:      "Error fetching appointments",
			Appointments: []dto.Appointment{},
		})
		return
	}

	httpresp.OK(c, dto.AppointmentList{Appointments: dto.FromAppointments(apps)})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Invalid appointment payload.")
		return
	}

	ctx := c.Request.Context()
	key := c.GetHeader(IdempotencyKeyHeader)
	fp := fingerprint(req)
	if key != "" && h.idem != nil {
		res, err := h.idem.Begin(ctx, key, fp)
		if err != nil {
			// the store is a safeguard only; carry on without it
			h.log.Warn("idempotency begin", zap.Error(err))
			key = ""
		} else {
			switch res.State {
			case idempotency.StateDone:
				c.Data(res.Status, "application/json; charset=utf-8", res.Body)
				return
			case idempotency.StateInFlight:
				httperr.Conflict(c, "request_in_progress", "This appointment is already being created.")
				return
			case idempotency.StateMismatch:
				httperr.Write(c, http.StatusUnprocessableEntity, "idempotency_key_reused", "This key was already used for a different appointment.")
				return
			}
		}
	} else {
		key = ""
	}

	ap, err := h.createUC.Execute(ctx, ucAppointment.CreateAppointmentInput{
		Title: req.Title,
		Start: req.Start,
		End:   req.End,
	})
	if err != nil {
		h.release(c, key)

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			httperr.BadRequest(c, "validation_error", ve.Message)
			return
		}

		h.log.Error("create appointment", zap.Error(err))
		httperr.Internal(c, "storage_error", "Error creating appointment")
		return
	}

	body, err := json.Marshal(dto.FromAppointment(ap))
	if err != nil {
		h.release(c, key)
		httperr.Internal(c, "encode_error", "Error creating appointment")
		return
	}

	if key != "" {
		if err := h.idem.Complete(ctx, key, fp, http.StatusCreated, body); err != nil {
			h.log.Warn("idempotency complete", zap.Error(err))
		}
	}

	c.Data(http.StatusCreated, "application/json; charset=utf-8", body)
}

// fingerprint identifies a create request by its normalized fields, so
// offsets and surrounding blanks that store the same row compare equal.
func fingerprint(req dto.CreateAppointmentRequest) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		strings.TrimSpace(req.Title),
		req.Start.UTC().Truncate(time.Second).Format(time.RFC3339),
		req.End.UTC().Truncate(time.Second).Format(time.RFC3339),
	}, "\x00")))
	return hex.EncodeToString(sum[:])
}

func (h *AppointmentHandler) release(c *gin.Context, key string) {
	if key == "" {
		return
	}
	if err := h.idem.Release(c.Request.Context(), key); err != nil {
		h.log.Warn("idempotency release", zap.Error(err))
	}
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(id)); err != nil {
		if domain.IsNotFound(err) {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found")
			return
		}

		h.log.Error("delete appointment", zap.Error(err), zap.Uint64("id", id))
		httperr.Internal(c, "storage_error", "Error deleting appointment")
		return
	}

	httpresp.Message(c, "Appointment deleted successfully")
}
