package model

import (
	"fmt"
	"strings"

	"github.com/jwalitptl/clinic-portal/pkg/dateform"
)

// Appointment is one row of the patient dashboard listing, as returned by
// POST /patient/appointments-by-date. Older server builds keyed the id as
// "id" instead of "appointment_id", so both are decoded and Key() picks
// whichever is set.
type Appointment struct {
	ID              string `json:"appointment_id"`
	AltID           string `json:"id,omitempty"`
	Date            string `json:"appointment_date"`
	Time            string `json:"appointment_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Description     string `json:"description"`
	DoctorFirstName string `json:"doctor_firstname"`
	DoctorLastName  string `json:"doctor_lastname"`
	RoomID          string `json:"room_id"`
}

// Key returns the appointment id, falling back to the legacy field.
func (a *Appointment) Key() string {
	if a.ID != "" {
		return a.ID
	}
	return a.AltID
}

// DoctorName renders "Dr. First Last" with missing parts trimmed away.
func (a *Appointment) DoctorName() string {
	return strings.TrimSpace(fmt.Sprintf("Dr. %s %s", strings.TrimSpace(a.DoctorFirstName), strings.TrimSpace(a.DoctorLastName)))
}

// Room renders the room label, with an N/A fallback.
func (a *Appointment) Room() string {
	if a.RoomID == "" {
		return "Room N/A"
	}
	return fmt.Sprintf("Room %s", a.RoomID)
}

// DescriptionOrDefault substitutes the placeholder for empty descriptions.
func (a *Appointment) DescriptionOrDefault() string {
	if a.Description == "" {
		return "No description"
	}
	return a.Description
}

// SearchText is the lowercase haystack the client-side filter matches
// against: description plus doctor first and last name.
func (a *Appointment) SearchText() string {
	return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%s %s %s", a.Description, a.DoctorFirstName, a.DoctorLastName)))
}

// TimeLabel renders the appointment time as a 12-hour clock value.
func (a *Appointment) TimeLabel() string {
	if a.Time == "" {
		return "N/A"
	}
	return dateform.Clock12(a.Time)
}

// DateLabel renders the appointment date as "Jan 2, 2006".
func (a *Appointment) DateLabel() string {
	if a.Date == "" {
		return "N/A"
	}
	return dateform.DisplayLong(a.Date)
}

// SearchResult is one row of the server-side appointment search response.
type SearchResult struct {
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Description     string `json:"description"`
}

// DateLabel renders the result date as "Monday, Jan 2".
func (r *SearchResult) DateLabel() string {
	return dateform.DisplayWeekday(r.AppointmentDate)
}

// TimeLabel renders the result time as a 12-hour clock value.
func (r *SearchResult) TimeLabel() string {
	return dateform.Clock12(r.AppointmentTime)
}
