package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/clinic-portal/pkg/errors"

	"github.com/jwalitptl/clinic-portal/internal/calendar"
	"github.com/jwalitptl/clinic-portal/internal/model"
)

type fakeService struct {
	byDate    map[string][]model.Appointment
	dates     []string
	cancelled []string
	cancelErr error
	listErr   error
}

func (f *fakeService) AppointmentsByDate(_ context.Context, date string) ([]model.Appointment, error) {
	f.dates = append(f.dates, date)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byDate[date], nil
}

func (f *fakeService) CancelAppointment(_ context.Context, id string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	for date, appts := range f.byDate {
		kept := appts[:0]
		for _, a := range appts {
			if a.Key() != id {
				kept = append(kept, a)
			}
		}
		f.byDate[date] = kept
	}
	return nil
}

func appt(id, desc, first, last string) model.Appointment {
	return model.Appointment{
		ID:              id,
		Date:            "2025-10-11",
		Time:            "09:00:00",
		DurationMinutes: 30,
		Description:     desc,
		DoctorFirstName: first,
		DoctorLastName:  last,
		RoomID:          "1",
	}
}

func newBoard(t *testing.T, svc Service, hooks Hooks) *Dashboard {
	t.Helper()
	cal := calendar.New(time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC))
	return New(cal, svc, hooks, nil)
}

func TestSelectDaySendsAPIDate(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{}}
	d := newBoard(t, svc, Hooks{})

	require.NoError(t, d.SelectDay(context.Background(), 11))
	require.NotEmpty(t, svc.dates)
	assert.Equal(t, "2025-10-11", svc.dates[len(svc.dates)-1])
	assert.Equal(t, "Oct 11", d.CurrentDateLabel())
}

func TestStartFetchesInitialDay(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{
		"2025-10-01": {appt("a1", "Checkup", "Gregory", "House")},
	}}
	d := newBoard(t, svc, Hooks{})
	d.Start(context.Background())

	assert.Equal(t, []string{"2025-10-01"}, svc.dates)
	assert.Len(t, d.Rows(), 1)
}

func TestFetchFailureRendersEmptyList(t *testing.T) {
	svc := &fakeService{listErr: apperrors.Network(assert.AnError)}
	d := newBoard(t, svc, Hooks{})
	d.Start(context.Background())

	assert.Empty(t, d.Rows())
	assert.Contains(t, d.RenderList(), "No appointments scheduled")
}

func TestFilter(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{
		"2025-10-01": {
			appt("a1", "Cardiology consult", "Gregory", "House"),
			appt("a2", "Dermatology", "James", "Wilson"),
		},
	}}
	d := newBoard(t, svc, Hooks{})
	d.Start(context.Background())

	d.Filter("wilson")
	require.Len(t, d.VisibleRows(), 1)
	assert.Equal(t, "a2", d.VisibleRows()[0].Appointment.Key())

	d.Filter("CARDIO")
	require.Len(t, d.VisibleRows(), 1)
	assert.Equal(t, "a1", d.VisibleRows()[0].Appointment.Key())

	d.Filter("no such thing")
	assert.Empty(t, d.VisibleRows())

	d.Filter("")
	assert.Len(t, d.VisibleRows(), 2)
}

func TestFilterDoesNotSurviveRerender(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{
		"2025-10-01": {appt("a1", "Cardiology", "Gregory", "House")},
		"2025-10-02": {appt("a2", "Dermatology", "James", "Wilson")},
	}}
	d := newBoard(t, svc, Hooks{})
	d.Start(context.Background())

	d.Filter("nothing matches")
	assert.Empty(t, d.VisibleRows())

	require.NoError(t, d.SelectDay(context.Background(), 2))
	assert.Len(t, d.VisibleRows(), 1, "re-rendered rows default to visible")
}

func TestCancelSuccessRefetchesAndDropsRow(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{
		"2025-10-01": {
			appt("a1", "Checkup", "Gregory", "House"),
			appt("a2", "Follow-up", "James", "Wilson"),
		},
	}}
	confirmed := 0
	d := newBoard(t, svc, Hooks{Confirm: func(string) bool { confirmed++; return true }})
	d.Start(context.Background())

	d.Cancel(context.Background(), "a1")

	assert.Equal(t, 1, confirmed)
	assert.Equal(t, []string{"a1"}, svc.cancelled)
	require.Len(t, d.Rows(), 1)
	assert.Equal(t, "a2", d.Rows()[0].Appointment.Key())
	// Success path re-fetched the selected day.
	assert.Equal(t, []string{"2025-10-01", "2025-10-01"}, svc.dates)
}

func TestCancelDeclinedDoesNothing(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{
		"2025-10-01": {appt("a1", "Checkup", "Gregory", "House")},
	}}
	d := newBoard(t, svc, Hooks{Confirm: func(string) bool { return false }})
	d.Start(context.Background())

	d.Cancel(context.Background(), "a1")
	assert.Empty(t, svc.cancelled)
	assert.Len(t, d.Rows(), 1)
}

func TestCancelFailureReenablesRowAndAlerts(t *testing.T) {
	svc := &fakeService{
		byDate:    map[string][]model.Appointment{"2025-10-01": {appt("a1", "Checkup", "Gregory", "House")}},
		cancelErr: apperrors.Upstream("appointment already started"),
	}
	var alerts []string
	d := newBoard(t, svc, Hooks{Alert: func(m string) { alerts = append(alerts, m) }})
	d.Start(context.Background())

	d.Cancel(context.Background(), "a1")

	require.Len(t, d.Rows(), 1)
	assert.False(t, d.Rows()[0].Cancelling)
	assert.Equal(t, "Cancel Appointment", d.Rows()[0].CancelLabel())
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "appointment already started")
	// Failure must not trigger a re-fetch.
	assert.Equal(t, []string{"2025-10-01"}, svc.dates)
}

func TestCancelUnknownRowIgnored(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{}}
	d := newBoard(t, svc, Hooks{})
	d.Start(context.Background())

	d.Cancel(context.Background(), "ghost")
	assert.Empty(t, svc.cancelled)
}

func TestStaleListResponseDiscarded(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{}}
	d := newBoard(t, svc, Hooks{})

	// Two overlapping fetches: the older one resolves last and must lose.
	oldTok, _ := d.beginFetch()
	newTok, _ := d.beginFetch()

	d.completeFetch(newTok, []model.Appointment{appt("new", "Current", "A", "B")}, nil)
	d.completeFetch(oldTok, []model.Appointment{appt("old", "Stale", "C", "D")}, nil)

	require.Len(t, d.Rows(), 1)
	assert.Equal(t, "new", d.Rows()[0].Appointment.Key())
}

func TestRenderCalendarMarksSelection(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{}}
	d := newBoard(t, svc, Hooks{})
	require.NoError(t, d.SelectDay(context.Background(), 11))

	out := d.RenderCalendar()
	assert.Contains(t, out, "October 2025")
	assert.Contains(t, out, "[11]")

	d.NextMonth()
	assert.NotContains(t, d.RenderCalendar(), "[", "selection hidden in other months")
	assert.Equal(t, "2025-10-11", d.Calendar().SelectedDate())
}

func TestRenderList(t *testing.T) {
	svc := &fakeService{byDate: map[string][]model.Appointment{
		"2025-10-01": {appt("a1", "Checkup", "Gregory", "House")},
	}}
	d := newBoard(t, svc, Hooks{})
	d.Start(context.Background())

	out := d.RenderList()
	assert.Contains(t, out, "9:00 AM (30 min)")
	assert.Contains(t, out, "Checkup")
	assert.Contains(t, out, "Dr. Gregory House")
	assert.Contains(t, out, "Room 1")
}
