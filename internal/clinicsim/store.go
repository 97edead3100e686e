// Package clinicsim is an in-memory stand-in for the clinic server, serving
// the six JSON endpoints the portal consumes. It exists for local
// development and integration tests; it has no authentication and no
// persistence.
package clinicsim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-portal/pkg/dateform"
)

const (
	appointmentPrefix = "appointment:"
	patientPrefix     = "patient:"
	doctorPrefix      = "doctor:"
)

// Appointment is a stored appointment record.
type Appointment struct {
	ID              string
	PatientID       string
	DoctorID        string
	Date            string
	Time            string
	DurationMinutes int
	Description     string
	RoomID          string
}

// Patient is a stored patient record.
type Patient struct {
	ID           string
	FirstName    string
	LastName     string
	DateOfBirth  string
	DateOfExpiry string
	Address      string
	Email        string
	Weight       float64
	Height       float64
	Age          int
}

// Doctor is a stored doctor record.
type Doctor struct {
	ID        string
	FirstName string
	LastName  string
	Address   string
	Email     string
}

// Store holds the simulator's records.
type Store struct {
	c *cache.Cache
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{c: cache.New(cache.NoExpiration, 0)}
}

// AddPatient stores a patient, assigning an id if absent.
func (s *Store) AddPatient(p Patient) Patient {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.c.SetDefault(patientPrefix+p.ID, p)
	return p
}

// AddDoctor stores a doctor, assigning an id if absent.
func (s *Store) AddDoctor(d Doctor) Doctor {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	s.c.SetDefault(doctorPrefix+d.ID, d)
	return d
}

// AddAppointment stores an appointment, assigning an id if absent.
func (s *Store) AddAppointment(a Appointment) Appointment {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.c.SetDefault(appointmentPrefix+a.ID, a)
	return a
}

// Patient looks up a patient by id.
func (s *Store) Patient(id string) (Patient, bool) {
	v, ok := s.c.Get(patientPrefix + id)
	if !ok {
		return Patient{}, false
	}
	return v.(Patient), true
}

// Doctor looks up a doctor by id.
func (s *Store) Doctor(id string) (Doctor, bool) {
	v, ok := s.c.Get(doctorPrefix + id)
	if !ok {
		return Doctor{}, false
	}
	return v.(Doctor), true
}

// Appointment looks up an appointment by id.
func (s *Store) Appointment(id string) (Appointment, bool) {
	v, ok := s.c.Get(appointmentPrefix + id)
	if !ok {
		return Appointment{}, false
	}
	return v.(Appointment), true
}

// DeleteAppointment removes an appointment, reporting whether it existed.
func (s *Store) DeleteAppointment(id string) bool {
	key := appointmentPrefix + id
	if _, ok := s.c.Get(key); !ok {
		return false
	}
	s.c.Delete(key)
	return true
}

func (s *Store) appointments() []Appointment {
	var out []Appointment
	for key, item := range s.c.Items() {
		if strings.HasPrefix(key, appointmentPrefix) {
			out = append(out, item.Object.(Appointment))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// AppointmentsByDate lists appointments on an API-format date, ordered by
// time.
func (s *Store) AppointmentsByDate(date string) []Appointment {
	var out []Appointment
	for _, a := range s.appointments() {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// SearchAppointments matches the query as a case-insensitive substring of
// the description or the doctor's name, ordered by date then time.
func (s *Store) SearchAppointments(query string) []Appointment {
	needle := strings.ToLower(query)
	var out []Appointment
	for _, a := range s.appointments() {
		haystack := strings.ToLower(a.Description)
		if doc, ok := s.Doctor(a.DoctorID); ok {
			haystack += " " + strings.ToLower(doc.FirstName+" "+doc.LastName)
		}
		if strings.Contains(haystack, needle) {
			out = append(out, a)
		}
	}
	return out
}

// patientFields is the update allow-list for patient pages.
var patientFields = map[string]bool{
	"first_name":     true,
	"last_name":      true,
	"address":        true,
	"email":          true,
	"date_of_birth":  true,
	"date_of_expiry": true,
}

// doctorFields is the update allow-list for doctor pages.
var doctorFields = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"address":    true,
	"email":      true,
}

// UpdatePatientField mutates one allow-listed patient field and returns the
// value to echo back. Date fields accept either layout, are normalized to
// the API format for storage, and are echoed in the display format.
func (s *Store) UpdatePatientField(id, field, value string) (string, error) {
	p, ok := s.Patient(id)
	if !ok {
		return "", fmt.Errorf("patient not found")
	}
	if !patientFields[field] {
		return "", fmt.Errorf("invalid field")
	}

	echo := value
	switch field {
	case "first_name":
		p.FirstName = value
	case "last_name":
		p.LastName = value
	case "address":
		p.Address = value
	case "email":
		p.Email = value
	case "date_of_birth", "date_of_expiry":
		normalized, err := dateform.FlexibleAPIDate(value)
		if err != nil {
			return "", fmt.Errorf("invalid date; use MM-DD-YYYY or YYYY-MM-DD format")
		}
		if field == "date_of_birth" {
			p.DateOfBirth = normalized
		} else {
			p.DateOfExpiry = normalized
		}
		echo, _ = dateform.ToDisplayDate(normalized)
	}

	s.c.SetDefault(patientPrefix+p.ID, p)
	return echo, nil
}

// UpdateDoctorField mutates one allow-listed doctor field.
func (s *Store) UpdateDoctorField(id, field, value string) (string, error) {
	d, ok := s.Doctor(id)
	if !ok {
		return "", fmt.Errorf("doctor not found")
	}
	if !doctorFields[field] {
		return "", fmt.Errorf("invalid field")
	}

	switch field {
	case "first_name":
		d.FirstName = value
	case "last_name":
		d.LastName = value
	case "address":
		d.Address = value
	case "email":
		d.Email = value
	}

	s.c.SetDefault(doctorPrefix+d.ID, d)
	return value, nil
}
