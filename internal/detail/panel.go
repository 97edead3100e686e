// Package detail drives the doctor view's appointment detail panels: pick
// a time slot, fetch its appointment and patient records, fill two display
// panels.
package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/clinic-portal/pkg/logger"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

const missing = "-"

// Service is the slice of the clinic API the panel needs.
type Service interface {
	AppointmentDetails(ctx context.Context, appointmentID string) (*model.AppointmentDetail, *model.PatientDetail, error)
}

// AppointmentView is the appointment panel's display fields, every one
// defaulted to "-" when the record omits it.
type AppointmentView struct {
	Date        string
	Description string
	Duration    string
	PatientID   string
	RoomID      string
}

// PatientView is the patient panel's display fields.
type PatientView struct {
	ID        string
	FirstName string
	LastName  string
	DOB       string
	Weight    string
	Height    string
	Age       string
	Address   string
}

// Panel is the detail panel state. Selection is exclusive: selecting a slot
// replaces the previous selection. Fetches are tokened so a slow response
// for an earlier selection cannot overwrite a later one.
type Panel struct {
	svc    Service
	logger *logger.Logger

	selectedID string
	fetchSeq   uint64

	Visible     bool
	Appointment AppointmentView
	Patient     PatientView
}

// New builds an empty, hidden panel.
func New(svc Service, log *logger.Logger) *Panel {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Panel{
		svc:    svc,
		logger: log.WithComponent("detail"),
	}
}

// SelectedID returns the currently selected appointment id.
func (p *Panel) SelectedID() string { return p.selectedID }

// Select marks the slot selected and fetches its details. Failures are
// logged and leave the panels untouched; there is deliberately no visible
// error state here, matching the page this replaces.
func (p *Panel) Select(ctx context.Context, appointmentID string) {
	token := p.beginSelect(appointmentID)
	appt, patient, err := p.svc.AppointmentDetails(ctx, appointmentID)
	p.completeSelect(token, appt, patient, err)
}

func (p *Panel) beginSelect(appointmentID string) uint64 {
	p.selectedID = appointmentID
	p.fetchSeq++
	return p.fetchSeq
}

func (p *Panel) completeSelect(token uint64, appt *model.AppointmentDetail, patient *model.PatientDetail, err error) {
	if token != p.fetchSeq {
		p.logger.Debug("discarding stale detail response", "token", token, "current", p.fetchSeq)
		return
	}
	if err != nil {
		p.logger.Error(err, "failed to fetch appointment details")
		return
	}

	p.Appointment = AppointmentView{
		Date:        orDash(appt.Date),
		Description: orDash(appt.Description),
		Duration:    unitOrDash(appt.Duration, "minutes"),
		PatientID:   orDash(appt.PatientID),
		RoomID:      orDash(appt.RoomID),
	}
	if patient == nil {
		patient = &model.PatientDetail{}
	}
	p.Patient = PatientView{
		ID:        orDash(patient.ID),
		FirstName: orDash(patient.FirstName),
		LastName:  orDash(patient.LastName),
		DOB:       orDash(patient.DOB),
		Weight:    measureOrDash(patient.Weight, "lb"),
		Height:    measureOrDash(patient.Height, "in"),
		Age:       intOrDash(patient.Age),
		Address:   orDash(patient.Address),
	}
	p.Visible = true
}

// Render draws both panels.
func (p *Panel) Render() string {
	if !p.Visible {
		return ""
	}
	var b strings.Builder
	b.WriteString("Appointment Information\n")
	fmt.Fprintf(&b, "  Date:        %s\n", p.Appointment.Date)
	fmt.Fprintf(&b, "  Description: %s\n", p.Appointment.Description)
	fmt.Fprintf(&b, "  Duration:    %s\n", p.Appointment.Duration)
	fmt.Fprintf(&b, "  Patient ID:  %s\n", p.Appointment.PatientID)
	fmt.Fprintf(&b, "  Room ID:     %s\n", p.Appointment.RoomID)
	b.WriteString("Patient Information\n")
	fmt.Fprintf(&b, "  ID:          %s\n", p.Patient.ID)
	fmt.Fprintf(&b, "  First name:  %s\n", p.Patient.FirstName)
	fmt.Fprintf(&b, "  Last name:   %s\n", p.Patient.LastName)
	fmt.Fprintf(&b, "  DOB:         %s\n", p.Patient.DOB)
	fmt.Fprintf(&b, "  Weight:      %s\n", p.Patient.Weight)
	fmt.Fprintf(&b, "  Height:      %s\n", p.Patient.Height)
	fmt.Fprintf(&b, "  Age:         %s\n", p.Patient.Age)
	fmt.Fprintf(&b, "  Address:     %s\n", p.Patient.Address)
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return missing
	}
	return s
}

func unitOrDash(n int, unit string) string {
	if n == 0 {
		return missing
	}
	return fmt.Sprintf("%d %s", n, unit)
}

func intOrDash(n int) string {
	if n == 0 {
		return missing
	}
	return fmt.Sprintf("%d", n)
}

func measureOrDash(v float64, unit string) string {
	if v == 0 {
		return missing
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".") + " " + unit
}
