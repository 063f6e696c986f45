// Package apiclient talks to the appointment endpoints and turns HTTP
// failures back into the appointment error kinds.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-portal/internal/dto"
	"github.com/BruksfildServices01/clinic-portal/internal/httperr"
	"github.com/BruksfildServices01/clinic-portal/internal/timezone"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API at baseURL. A nil hc uses a client with
// a 15 second timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) ListAppointments(ctx context.Context) ([]dto.Appointment, error) {
	var out dto.AppointmentList
	if err := c.do(ctx, "list appointments", http.MethodGet, "/api/appointments", nil, "", &out); err != nil {
		return nil, err
	}
	if out.Appointments == nil {
		out.Appointments = []dto.Appointment{}
	}
	return out.Appointments, nil
}

// CreateAppointment posts a new appointment. A non-empty key is sent as
// Idempotency-Key so a retried submission is not inserted twice.
func (c *Client) CreateAppointment(ctx context.Context, title string, start, end time.Time, key string) (dto.Appointment, error) {
	body := map[string]any{
		"title": title,
		"start": timezone.Normalize(start).Format(time.RFC3339),
		"end":   timezone.Normalize(end).Format(time.RFC3339),
	}

	var out dto.Appointment
	if err := c.do(ctx, "create appointment", http.MethodPost, "/api/appointments", body, key, &out); err != nil {
		return dto.Appointment{}, err
	}
	return out, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id uint) error {
	path := "/api/appointments/" + strconv.FormatUint(uint64(id), 10)
	err := c.do(ctx, "delete appointment", http.MethodDelete, path, nil, "", nil)
	if domain.IsNotFound(err) {
		return &domain.NotFoundError{ID: id}
	}
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, in any, key string, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &domain.StorageError{Op: op, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}

	if resp.StatusCode >= 300 {
		return statusError(op, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.StorageError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func statusError(op string, status int, raw []byte) error {
	var he httperr.HTTPError
	_ = json.Unmarshal(raw, &he)

	switch status {
	case http.StatusBadRequest:
		msg := he.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &domain.ValidationError{Message: msg}
	case http.StatusNotFound:
		return &domain.NotFoundError{}
	default:
		return &domain.StorageError{
			Op:  op,
			Err: fmt.Errorf("status %d: %s", status, strings.TrimSpace(he.Message)),
		}
	}
}
