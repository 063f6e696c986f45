package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

// Appointment is the wire form of an appointment. Times are UTC and
// encode as RFC 3339.
type Appointment struct {
	ID    uint      `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AppointmentList struct {
	Appointments []Appointment `json:"appointments"`
}

// AppointmentListError keeps an empty appointments array next to the
// error so a client can always render the list.
type AppointmentListError struct {
	Error        string        `json:"error"`
	Message      string        `json:"message"`
	Appointments []Appointment `json:"appointments"`
}

type CreateAppointmentRequest struct {
	Title string    `json:"title"`
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

func FromAppointment(ap *models.Appointment) Appointment {
	return Appointment{
		ID:    ap.ID,
		Title: ap.Title,
		Start: ap.Start.UTC(),
		End:   ap.End.UTC(),
	}
}

func FromAppointments(aps []models.Appointment) []Appointment {
	out := make([]Appointment, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}
