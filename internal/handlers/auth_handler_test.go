package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-portal/internal/dto"
	"github.com/BruksfildServices01/clinic-portal/internal/handlers"
	"github.com/BruksfildServices01/clinic-portal/internal/httperr"
)

func (s *testServer) register(t *testing.T, email, role string) string {
	t.Helper()
	rec := s.doJSON(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Dr. Reyes",
		"email":    email,
		"password": "s3cret!",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.AuthResponse](t, rec).Token
}

func TestAuth_RegisterLoginMe(t *testing.T) {
	s := newServer(t)

	s.register(t, "Reyes@Clinic.ph", "staff")

	rec := s.doJSON(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "reyes@clinic.ph",
		"password": "s3cret!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[dto.AuthResponse](t, rec)
	assert.Equal(t, "reyes@clinic.ph", resp.User.Email)
	assert.Equal(t, "staff", resp.User.Role)
	require.NotEmpty(t, resp.Token)

	rec = s.doJSON(t, http.MethodGet, "/api/me", nil, "Authorization", "Bearer "+resp.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"reyes@clinic.ph"`)
}

func TestAuth_DuplicateEmail(t *testing.T) {
	s := newServer(t)
	s.register(t, "doc@clinic.ph", "doctor")

	rec := s.doJSON(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Other",
		"email":    "doc@clinic.ph",
		"password": "another1",
		"role":     "staff",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email_already_registered", decode[httperr.HTTPError](t, rec).Code)
}

func TestAuth_RejectsUnknownRole(t *testing.T) {
	s := newServer(t)

	rec := s.doJSON(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Guard",
		"email":    "guard@clinic.ph",
		"password": "s3cret!",
		"role":     "janitor",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_WrongPassword(t *testing.T) {
	s := newServer(t)
	s.register(t, "doc@clinic.ph", "doctor")

	rec := s.doJSON(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "doc@clinic.ph",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.doJSON(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@clinic.ph",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MeRequiresToken(t *testing.T) {
	s := newServer(t)
	assert.Equal(t, http.StatusUnauthorized, s.doJSON(t, http.MethodGet, "/api/me", nil).Code)
}

func TestAuditLogs_AdminOnly(t *testing.T) {
	s := newServer(t)

	staff := s.register(t, "staff@clinic.ph", "staff")
	rec := s.doJSON(t, http.MethodGet, "/api/audit-logs", nil, "Authorization", "Bearer "+staff)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := s.register(t, "admin@clinic.ph", "admin")
	require.Equal(t, http.StatusCreated, s.doJSON(t, http.MethodPost, "/api/appointments", checkup()).Code)

	require.Eventually(t, func() bool {
		rec := s.doJSON(t, http.MethodGet, "/api/audit-logs?action=appointment_created", nil, "Authorization", "Bearer "+admin)
		return rec.Code == http.StatusOK && decode[handlers.AuditLogPage](t, rec).Total == 1
	}, 2*time.Second, 10*time.Millisecond)

	rec = s.doJSON(t, http.MethodGet, "/api/audit-logs?entity=patient", nil, "Authorization", "Bearer "+admin)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[handlers.AuditLogPage](t, rec)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Logs)
	assert.Equal(t, 50, page.Limit)
}
