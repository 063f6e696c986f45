package appointment

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/clinic-portal/internal/models"
	"github.com/BruksfildServices01/clinic-portal/internal/timezone"
)

const MsgTitleRequired = "Appointment title is required"

var validate = validator.New()

type draft struct {
	Title string    `validate:"required"`
	Start time.Time `validate:"required"`
	End   time.Time `validate:"required"`
}

var fieldMessages = map[string]string{
	"title": MsgTitleRequired,
	"start": "Appointment start is required",
	"end":   "Appointment end is required",
}

// New builds a normalized appointment. Overlap with existing appointments
// is allowed.
func New(title string, start, end time.Time) (*models.Appointment, error) {
	d := draft{
		Title: strings.TrimSpace(title),
		Start: start,
		End:   end,
	}

	if err := validate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := strings.ToLower(fieldErrs[0].Field())
			return nil, &ValidationError{Field: field, Message: fieldMessages[field]}
		}
		return nil, &ValidationError{Message: err.Error()}
	}

	return &models.Appointment{
		Title: d.Title,
		Start: timezone.Normalize(d.Start),
		End:   timezone.Normalize(d.End),
	}, nil
}
