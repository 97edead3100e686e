package detail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/clinic-portal/pkg/errors"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

type fakeService struct {
	appt    *model.AppointmentDetail
	patient *model.PatientDetail
	err     error
	ids     []string
}

func (f *fakeService) AppointmentDetails(_ context.Context, id string) (*model.AppointmentDetail, *model.PatientDetail, error) {
	f.ids = append(f.ids, id)
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.appt, f.patient, nil
}

func TestSelectPopulatesPanels(t *testing.T) {
	svc := &fakeService{
		appt:    &model.AppointmentDetail{Date: "2025-03-01", Description: "MRI review", Duration: 45, PatientID: "p1", RoomID: "3"},
		patient: &model.PatientDetail{ID: "p1", FirstName: "Lisa", LastName: "Cuddy", DOB: "1968-11-12", Weight: 130, Height: 66.5, Age: 57, Address: "221B"},
	}
	p := New(svc, nil)
	require.False(t, p.Visible)

	p.Select(context.Background(), "a9")

	assert.Equal(t, []string{"a9"}, svc.ids)
	assert.True(t, p.Visible)
	assert.Equal(t, "a9", p.SelectedID())
	assert.Equal(t, "45 minutes", p.Appointment.Duration)
	assert.Equal(t, "130 lb", p.Patient.Weight)
	assert.Equal(t, "66.5 in", p.Patient.Height)
	assert.Equal(t, "57", p.Patient.Age)

	out := p.Render()
	assert.Contains(t, out, "MRI review")
	assert.Contains(t, out, "Lisa")
}

func TestMissingFieldsDefaultToDash(t *testing.T) {
	svc := &fakeService{
		appt:    &model.AppointmentDetail{Description: "Walk-in"},
		patient: &model.PatientDetail{FirstName: "John"},
	}
	p := New(svc, nil)
	p.Select(context.Background(), "a1")

	assert.Equal(t, "-", p.Appointment.Date)
	assert.Equal(t, "-", p.Appointment.Duration)
	assert.Equal(t, "-", p.Appointment.RoomID)
	assert.Equal(t, "-", p.Patient.LastName)
	assert.Equal(t, "-", p.Patient.Weight)
	assert.Equal(t, "-", p.Patient.Age)
	assert.Equal(t, "John", p.Patient.FirstName)
}

func TestMissingPatientRecordRendersDashes(t *testing.T) {
	svc := &fakeService{
		appt: &model.AppointmentDetail{Date: "2025-03-01", Description: "Walk-in"},
	}
	p := New(svc, nil)
	p.Select(context.Background(), "a1")

	require.True(t, p.Visible)
	assert.Equal(t, PatientView{
		ID:        "-",
		FirstName: "-",
		LastName:  "-",
		DOB:       "-",
		Weight:    "-",
		Height:    "-",
		Age:       "-",
		Address:   "-",
	}, p.Patient)

	out := p.Render()
	assert.Contains(t, out, "First name:  -")
}

func TestSelectionIsExclusive(t *testing.T) {
	svc := &fakeService{appt: &model.AppointmentDetail{}, patient: &model.PatientDetail{}}
	p := New(svc, nil)

	p.Select(context.Background(), "a1")
	p.Select(context.Background(), "a2")
	assert.Equal(t, "a2", p.SelectedID())
}

func TestFetchFailureLeavesPanelsUntouched(t *testing.T) {
	svc := &fakeService{
		appt:    &model.AppointmentDetail{Description: "First"},
		patient: &model.PatientDetail{FirstName: "Lisa"},
	}
	p := New(svc, nil)
	p.Select(context.Background(), "a1")
	require.True(t, p.Visible)

	svc.err = apperrors.Network(assert.AnError)
	p.Select(context.Background(), "a2")

	// Selection moved, but the displayed data is still the old record and
	// no error is surfaced to the user.
	assert.Equal(t, "a2", p.SelectedID())
	assert.True(t, p.Visible)
	assert.Equal(t, "First", p.Appointment.Description)
}

func TestStaleResponseDiscarded(t *testing.T) {
	p := New(&fakeService{}, nil)

	tok1 := p.beginSelect("a1")
	tok2 := p.beginSelect("a2")

	p.completeSelect(tok2, &model.AppointmentDetail{Description: "Current"}, nil, nil)
	p.completeSelect(tok1, &model.AppointmentDetail{Description: "Stale"}, nil, nil)

	assert.Equal(t, "Current", p.Appointment.Description)
	assert.Equal(t, "a2", p.SelectedID())
}

func TestHiddenPanelRendersNothing(t *testing.T) {
	p := New(&fakeService{}, nil)
	assert.Empty(t, p.Render())
}
