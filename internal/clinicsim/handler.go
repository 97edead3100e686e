package clinicsim

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-portal/pkg/dateform"
	"github.com/jwalitptl/clinic-portal/pkg/httputil"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/validator"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// Handler serves the clinic endpoints the portal consumes.
type Handler struct {
	store    *Store
	validate validator.Validator
	logger   *logger.Logger
}

// NewHandler creates a simulator handler over the given store.
func NewHandler(store *Store, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Handler{
		store:    store,
		validate: validator.New(),
		logger:   log.WithComponent("clinicsim"),
	}
}

// RegisterRoutes mounts the endpoints on the engine root; the portal calls
// them unprefixed.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctor/appointments/:id/details", h.AppointmentDetails)
	r.POST("/patient/search-appointments", h.SearchAppointments)
	r.POST("/patient/appointments-by-date", h.AppointmentsByDate)
	r.POST("/patient/appointments/cancel", h.CancelAppointment)
	r.POST("/patient/update", h.UpdatePatient)
	r.POST("/doctor/update", h.UpdateDoctor)
}

func (h *Handler) AppointmentDetails(c *gin.Context) {
	appt, ok := h.store.Appointment(c.Param("id"))
	if !ok {
		httputil.RespondWithError(c, http.StatusNotFound, "Appointment not found.")
		return
	}

	payload := gin.H{
		"appointment": gin.H{
			"date":        appt.Date,
			"description": appt.Description,
			"duration":    appt.DurationMinutes,
			"patient_id":  appt.PatientID,
			"room_id":     appt.RoomID,
		},
	}
	if patient, ok := h.store.Patient(appt.PatientID); ok {
		payload["patient"] = gin.H{
			"id":         patient.ID,
			"first_name": patient.FirstName,
			"last_name":  patient.LastName,
			"dob":        patient.DateOfBirth,
			"weight":     patient.Weight,
			"height":     patient.Height,
			"age":        patient.Age,
			"address":    patient.Address,
		}
	}
	httputil.RespondWithSuccess(c, payload)
}

func (h *Handler) SearchAppointments(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := h.validate.Validate(req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Missing search query.")
		return
	}

	results := make([]gin.H, 0)
	for _, a := range h.store.SearchAppointments(req.Query) {
		results = append(results, gin.H{
			"appointment_date": a.Date,
			"appointment_time": a.Time,
			"description":      a.Description,
		})
	}
	httputil.RespondWithSuccess(c, gin.H{"appointments": results})
}

func (h *Handler) AppointmentsByDate(c *gin.Context) {
	var req model.DateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if _, err := dateform.ParseAPIDate(req.Date); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		return
	}

	appointments := make([]gin.H, 0)
	for _, a := range h.store.AppointmentsByDate(req.Date) {
		row := gin.H{
			"appointment_id":   a.ID,
			"appointment_date": a.Date,
			"appointment_time": a.Time,
			"duration_minutes": a.DurationMinutes,
			"description":      a.Description,
			"room_id":          a.RoomID,
		}
		if doc, ok := h.store.Doctor(a.DoctorID); ok {
			row["doctor_firstname"] = doc.FirstName
			row["doctor_lastname"] = doc.LastName
		}
		appointments = append(appointments, row)
	}
	httputil.RespondWithSuccess(c, gin.H{"appointments": appointments})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	var req model.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := h.validate.Validate(req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Missing appointment id.")
		return
	}

	if !h.store.DeleteAppointment(req.AppointmentID) {
		httputil.RespondWithError(c, http.StatusNotFound, "Appointment not found.")
		return
	}
	h.logger.Info("appointment cancelled", "id", req.AppointmentID)
	httputil.RespondWithSuccess(c, gin.H{})
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := h.validate.Validate(req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Missing patient id or field.")
		return
	}

	newValue, err := h.store.UpdatePatientField(req.PatientID, req.Field, req.Value)
	if err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "Update successful", "new_value": newValue})
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := h.validate.Validate(req); err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, "Missing doctor id or field.")
		return
	}

	newValue, err := h.store.UpdateDoctorField(req.DoctorID, req.Field, req.Value)
	if err != nil {
		httputil.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "Update successful", "new_value": newValue})
}
