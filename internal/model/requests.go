package model

// EntityKind identifies which profile page an inline edit belongs to. The
// two id attributes are mutually exclusive per page.
type EntityKind string

const (
	EntityPatient EntityKind = "patient"
	EntityDoctor  EntityKind = "doctor"
)

// SearchRequest is the body of POST /patient/search-appointments.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

// DateRequest is the body of POST /patient/appointments-by-date.
type DateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// CancelRequest is the body of POST /patient/appointments/cancel.
type CancelRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required"`
}

// UpdatePatientRequest is the body of POST /patient/update.
type UpdatePatientRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
	Field     string `json:"field" validate:"required"`
	Value     string `json:"value"`
}

// UpdateDoctorRequest is the body of POST /doctor/update.
type UpdateDoctorRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Field    string `json:"field" validate:"required"`
	Value    string `json:"value"`
}
