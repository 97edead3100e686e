package clinicsim

import (
	"time"

	"github.com/jwalitptl/clinic-portal/pkg/dateform"
)

// Seed fills the store with a small, self-consistent clinic so the portal
// has something to show out of the box. Appointments land on today and the
// two following days.
func Seed(s *Store, now time.Time) {
	house := s.AddDoctor(Doctor{
		FirstName: "Gregory",
		LastName:  "House",
		Address:   "1 Princeton Plainsboro Dr",
		Email:     "ghouse@example.com",
	})
	wilson := s.AddDoctor(Doctor{
		FirstName: "James",
		LastName:  "Wilson",
		Address:   "1 Princeton Plainsboro Dr",
		Email:     "jwilson@example.com",
	})

	patient := s.AddPatient(Patient{
		FirstName:    "John",
		LastName:     "Smith",
		DateOfBirth:  "1990-01-15",
		DateOfExpiry: "2027-06-30",
		Address:      "42 Baker St",
		Email:        "jsmith@example.com",
		Weight:       180,
		Height:       70,
		Age:          36,
	})

	day := func(offset int) string {
		d := now.AddDate(0, 0, offset)
		return dateform.FormatYMD(d.Year(), d.Month(), d.Day())
	}

	s.AddAppointment(Appointment{
		PatientID:       patient.ID,
		DoctorID:        house.ID,
		Date:            day(0),
		Time:            "09:00:00",
		DurationMinutes: 30,
		Description:     "Annual checkup",
		RoomID:          "101",
	})
	s.AddAppointment(Appointment{
		PatientID:       patient.ID,
		DoctorID:        wilson.ID,
		Date:            day(0),
		Time:            "14:30:00",
		DurationMinutes: 45,
		Description:     "Oncology consult",
		RoomID:          "204",
	})
	s.AddAppointment(Appointment{
		PatientID:       patient.ID,
		DoctorID:        house.ID,
		Date:            day(1),
		Time:            "11:15:00",
		DurationMinutes: 60,
		Description:     "Diagnostics follow-up",
		RoomID:          "101",
	})
	s.AddAppointment(Appointment{
		PatientID:       patient.ID,
		DoctorID:        wilson.ID,
		Date:            day(2),
		Time:            "10:00:00",
		DurationMinutes: 30,
		Description:     "Blood work review",
		RoomID:          "115",
	})
}
