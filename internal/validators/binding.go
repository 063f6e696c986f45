package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/clinic-portal/internal/auth"
)

// Register adds the clinic-specific tags to gin's validator. Safe to call
// more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("clinic_role", func(fl validator.FieldLevel) bool {
		return auth.IsValidRole(fl.Field().String())
	})
}
