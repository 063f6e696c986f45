package handlers_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-portal/internal/config"
	"github.com/BruksfildServices01/clinic-portal/internal/dto"
)

func multipartPatient(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/patients", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 128, 96))))
	return buf.Bytes()
}

func TestPatients_CreateMultipartWithImage(t *testing.T) {
	s := newServer(t)

	rec := s.do(multipartPatient(t, map[string]string{
		"first_name": "Maria",
		"last_name":  "Santos",
		"city":       "Cebu",
	}, pngImage(t)))
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[dto.PatientCreated](t, rec)
	assert.Equal(t, "Patient added successfully", created.Message)
	assert.Positive(t, created.PatientID)

	rec = s.doJSON(t, http.MethodGet, "/api/patients/"+itoa(created.PatientID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decode[dto.Patient](t, rec)
	assert.Equal(t, "Maria", p.FirstName)
	assert.Equal(t, "Active", p.Activeness)
	require.NotNil(t, p.Image)
	assert.True(t, strings.HasPrefix(*p.Image, "data:image/webp;base64,"))
}

func TestPatients_CreateRejectsBadImage(t *testing.T) {
	s := newServer(t)

	rec := s.do(multipartPatient(t, map[string]string{
		"first_name": "Maria",
		"last_name":  "Santos",
	}, []byte("not a picture")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.doJSON(t, http.MethodGet, "/api/patients", nil)
	assert.JSONEq(t, `{"patients":[]}`, rec.Body.String())
}

func TestPatients_CreateRequiresNames(t *testing.T) {
	s := newServer(t)

	rec := s.doJSON(t, http.MethodPost, "/api/patients", map[string]any{"first_name": "Maria"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatients_UpdateAndDelete(t *testing.T) {
	s := newServer(t)

	rec := s.doJSON(t, http.MethodPost, "/api/patients", map[string]any{
		"first_name": "Jose",
		"last_name":  "Rizal",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := itoa(decode[dto.PatientCreated](t, rec).PatientID)

	rec = s.doJSON(t, http.MethodPut, "/api/patients/"+id, map[string]any{
		"first_name": "Jose",
		"last_name":  "Rizal",
		"allergies":  "Penicillin",
		"activeness": "Inactive",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Patient updated successfully"}`, rec.Body.String())

	p := decode[dto.Patient](t, s.doJSON(t, http.MethodGet, "/api/patients/"+id, nil))
	assert.Equal(t, "Penicillin", p.Allergies)
	assert.Equal(t, "Inactive", p.Activeness)
	assert.Nil(t, p.Image)

	rec = s.doJSON(t, http.MethodDelete, "/api/patients/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.doJSON(t, http.MethodGet, "/api/patients/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatients_UnknownID(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusNotFound, s.doJSON(t, http.MethodGet, "/api/patients/77", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.doJSON(t, http.MethodDelete, "/api/patients/77", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.doJSON(t, http.MethodPut, "/api/patients/77", map[string]any{
		"first_name": "A",
		"last_name":  "B",
	}).Code)
	assert.Equal(t, http.StatusBadRequest, s.doJSON(t, http.MethodGet, "/api/patients/x", nil).Code)
}

func TestPatients_GuardedWhenAuthEnabled(t *testing.T) {
	s := newServer(t, func(c *config.Config) { c.AuthEnabled = true })

	rec := s.doJSON(t, http.MethodGet, "/api/patients", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.register(t, "doc@clinic.ph", "doctor")
	rec = s.doJSON(t, http.MethodGet, "/api/patients", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// appointments stay open
	assert.Equal(t, http.StatusOK, s.doJSON(t, http.MethodGet, "/api/appointments", nil).Code)
}
