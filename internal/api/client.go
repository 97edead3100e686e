// Package api is the typed client for the clinic server's JSON endpoints.
// Every response carries the flat {success, message, ...} envelope; a 200
// with success:false is surfaced as an upstream error carrying the server's
// message. No call is retried: a failure is terminal for that user action.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

const defaultTimeout = 15 * time.Second

// Client calls the clinic server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// New creates a clinic API client. The metrics set may be nil.
func New(baseURL string, log *logger.Logger, m *metrics.Metrics) *Client {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:  log.WithComponent("api"),
		metrics: m,
	}
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

type enveloped interface {
	OK() bool
	Note() string
}

type detailsResponse struct {
	httputil.Envelope
	Appointment model.AppointmentDetail `json:"appointment"`
	Patient     *model.PatientDetail    `json:"patient"`
}

type searchResponse struct {
	httputil.Envelope
	Appointments []model.SearchResult `json:"appointments"`
}

type listResponse struct {
	httputil.Envelope
	Appointments []model.Appointment `json:"appointments"`
}

type cancelResponse struct {
	httputil.Envelope
}

type updateResponse struct {
	httputil.Envelope
	NewValue string `json:"new_value"`
}

// AppointmentDetails fetches the appointment and patient panels for the
// doctor view.
func (c *Client) AppointmentDetails(ctx context.Context, appointmentID string) (*model.AppointmentDetail, *model.PatientDetail, error) {
	var out detailsResponse
	path := fmt.Sprintf("/doctor/appointments/%s/details", appointmentID)
	if err := c.do(ctx, "appointment_details", http.MethodGet, path, nil, &out); err != nil {
		return nil, nil, err
	}
	return &out.Appointment, out.Patient, nil
}

// SearchAppointments runs a server-side appointment search.
func (c *Client) SearchAppointments(ctx context.Context, query string) ([]model.SearchResult, error) {
	var out searchResponse
	body := model.SearchRequest{Query: query}
	if err := c.do(ctx, "search_appointments", http.MethodPost, "/patient/search-appointments", body, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// AppointmentsByDate lists the patient's appointments for an API-format date.
func (c *Client) AppointmentsByDate(ctx context.Context, date string) ([]model.Appointment, error) {
	var out listResponse
	body := model.DateRequest{Date: date}
	if err := c.do(ctx, "appointments_by_date", http.MethodPost, "/patient/appointments-by-date", body, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// CancelAppointment cancels one appointment by id.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID string) error {
	var out cancelResponse
	body := model.CancelRequest{AppointmentID: appointmentID}
	return c.do(ctx, "cancel_appointment", http.MethodPost, "/patient/appointments/cancel", body, &out)
}

// UpdateField saves one profile field and returns the canonical value the
// server stored. The endpoint and payload shape depend on the entity kind.
func (c *Client) UpdateField(ctx context.Context, entity model.EntityKind, entityID, field, value string) (string, error) {
	var out updateResponse
	switch entity {
	case model.EntityPatient:
		body := model.UpdatePatientRequest{PatientID: entityID, Field: field, Value: value}
		if err := c.do(ctx, "update_patient", http.MethodPost, "/patient/update", body, &out); err != nil {
			return "", err
		}
	case model.EntityDoctor:
		body := model.UpdateDoctorRequest{DoctorID: entityID, Field: field, Value: value}
		if err := c.do(ctx, "update_doctor", http.MethodPost, "/doctor/update", body, &out); err != nil {
			return "", err
		}
	default:
		return "", apperrors.BadRequest(fmt.Sprintf("unknown entity kind %q", entity), nil)
	}
	return out.NewValue, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Internal(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Internal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.count(op, "network_error")
		c.logger.Error(err, "clinic API request failed", "operation", op)
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	// The server reports application failures inside the envelope, usually
	// alongside a 4xx/5xx status. Prefer its message over a bare status code
	// when the body decodes.
	var decodeErr error
	if out != nil {
		decodeErr = json.NewDecoder(resp.Body).Decode(out)
	}

	if env, ok := out.(enveloped); ok && decodeErr == nil && !env.OK() {
		c.count(op, "upstream_error")
		return apperrors.Upstream(env.Note())
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.count(op, "http_error")
		return apperrors.HTTPStatus(resp.StatusCode)
	}
	if decodeErr != nil {
		c.count(op, "decode_error")
		return apperrors.Internal(decodeErr)
	}

	c.count(op, "success")
	return nil
}

func (c *Client) count(op, status string) {
	if c.metrics != nil {
		c.metrics.UpstreamRequests.WithLabelValues(op, status).Inc()
	}
}
