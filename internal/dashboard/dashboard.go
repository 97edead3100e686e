// Package dashboard drives the patient dashboard: the month calendar, the
// selected day's appointment list, the client-side filter over that list,
// and appointment cancellation.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/logger"

	"github.com/jwalitptl/clinic-portal/internal/calendar"
	"github.com/jwalitptl/clinic-portal/internal/model"
)

const (
	cancelLabelIdle    = "Cancel Appointment"
	cancelLabelPending = "Cancelling..."
	confirmCancel      = "Are you sure you want to cancel this appointment?"
	emptyListMessage   = "No appointments scheduled"
)

// Service is the slice of the clinic API the dashboard needs.
type Service interface {
	AppointmentsByDate(ctx context.Context, date string) ([]model.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID string) error
}

// Hooks route user interaction out of the state machine. A nil Confirm
// auto-confirms; a nil Alert drops the notice.
type Hooks struct {
	Confirm func(prompt string) bool
	Alert   func(msg string)
}

// Row is one appointment in the day list. Hidden tracks the client-side
// filter; Cancelling disables the row's cancel action while a request is
// pending.
type Row struct {
	Appointment model.Appointment
	Hidden      bool
	Cancelling  bool
}

// CancelLabel is the cancel button text for the row's current state.
func (r *Row) CancelLabel() string {
	if r.Cancelling {
		return cancelLabelPending
	}
	return cancelLabelIdle
}

// Dashboard is the patient dashboard state: the calendar plus the day's
// appointment rows. It is confined to a single goroutine.
type Dashboard struct {
	cal    *calendar.State
	svc    Service
	hooks  Hooks
	logger *logger.Logger

	rows   []*Row
	filter string

	// fetchSeq tokens each list fetch so a response that resolves after a
	// newer selection is discarded instead of winning the race.
	fetchSeq uint64
}

// New builds a dashboard with today selected. Call Start to load the
// initial list.
func New(cal *calendar.State, svc Service, hooks Hooks, log *logger.Logger) *Dashboard {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Dashboard{
		cal:    cal,
		svc:    svc,
		hooks:  hooks,
		logger: log.WithComponent("dashboard"),
	}
}

// Start fetches the selected (initial) day's appointments, mirroring the
// page-load fetch.
func (d *Dashboard) Start(ctx context.Context) {
	d.refreshList(ctx)
}

// Calendar exposes the calendar state for rendering.
func (d *Dashboard) Calendar() *calendar.State { return d.cal }

// SelectDay selects a day in the displayed month and fetches its
// appointments.
func (d *Dashboard) SelectDay(ctx context.Context, day int) error {
	if err := d.cal.Select(day); err != nil {
		return err
	}
	d.refreshList(ctx)
	return nil
}

// PrevMonth pages the calendar back without touching the selection or list.
func (d *Dashboard) PrevMonth() { d.cal.PrevMonth() }

// NextMonth pages the calendar forward without touching the selection or
// list.
func (d *Dashboard) NextMonth() { d.cal.NextMonth() }

// CurrentDateLabel is the "Oct 11" header over the day list.
func (d *Dashboard) CurrentDateLabel() string { return d.cal.HeaderLabel() }

// YearLabel is the year header over the calendar.
func (d *Dashboard) YearLabel() string { return fmt.Sprintf("%d", d.cal.Year()) }

// beginFetch stamps a new fetch token for the currently selected date.
func (d *Dashboard) beginFetch() (uint64, string) {
	d.fetchSeq++
	return d.fetchSeq, d.cal.SelectedDate()
}

// completeFetch installs a fetch result unless a newer fetch has started.
// A fetch failure renders an empty list.
func (d *Dashboard) completeFetch(token uint64, appts []model.Appointment, err error) {
	if token != d.fetchSeq {
		d.logger.Debug("discarding stale appointment list", "token", token, "current", d.fetchSeq)
		return
	}
	if err != nil {
		d.logger.Error(err, "failed to fetch appointments")
		appts = nil
	}
	rows := make([]*Row, 0, len(appts))
	for _, a := range appts {
		rows = append(rows, &Row{Appointment: a})
	}
	d.rows = rows
	d.filter = ""
}

func (d *Dashboard) refreshList(ctx context.Context) {
	token, date := d.beginFetch()
	appts, err := d.svc.AppointmentsByDate(ctx, date)
	d.completeFetch(token, appts, err)
}

// Rows returns the full day list, including filtered-out rows.
func (d *Dashboard) Rows() []*Row { return d.rows }

// VisibleRows returns the rows the filter currently shows.
func (d *Dashboard) VisibleRows() []*Row {
	visible := make([]*Row, 0, len(d.rows))
	for _, r := range d.rows {
		if !r.Hidden {
			visible = append(visible, r)
		}
	}
	return visible
}

// Filter applies a case-insensitive substring match against each row's
// search text. An empty query shows everything. Rows are only hidden, never
// removed, and a list re-render resets them to visible.
func (d *Dashboard) Filter(query string) {
	d.filter = strings.ToLower(query)
	for _, r := range d.rows {
		r.Hidden = d.filter != "" && !strings.Contains(r.Appointment.SearchText(), d.filter)
	}
}

// Cancel cancels an appointment after confirmation. The row's action is
// disabled while the request is in flight; on success the day list is
// re-fetched so the row disappears, on failure the row is re-enabled and
// the failure surfaced via the alert hook.
func (d *Dashboard) Cancel(ctx context.Context, appointmentID string) {
	row := d.row(appointmentID)
	if row == nil {
		d.logger.Warn("cancel requested for unknown appointment", "id", appointmentID)
		return
	}
	if row.Cancelling {
		return
	}
	if d.hooks.Confirm != nil && !d.hooks.Confirm(confirmCancel) {
		return
	}

	row.Cancelling = true
	if err := d.svc.CancelAppointment(ctx, appointmentID); err != nil {
		row.Cancelling = false
		d.alert("Error cancelling appointment: " + apperrors.Message(err))
		return
	}
	d.refreshList(ctx)
}

func (d *Dashboard) row(appointmentID string) *Row {
	for _, r := range d.rows {
		if r.Appointment.Key() == appointmentID {
			return r
		}
	}
	return nil
}

func (d *Dashboard) alert(msg string) {
	if d.hooks.Alert != nil {
		d.hooks.Alert(msg)
	}
}

// RenderCalendar draws the month grid as text, one week per line, with the
// selected day bracketed.
func (d *Dashboard) RenderCalendar() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", d.cal.CursorLabel())
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")

	col := 0
	for _, cell := range d.cal.Grid() {
		switch {
		case cell.Empty:
			b.WriteString("    ")
		case cell.Selected:
			fmt.Fprintf(&b, "[%2d]", cell.Day)
		default:
			fmt.Fprintf(&b, " %2d ", cell.Day)
		}
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// RenderList draws the visible appointment rows, or the empty-state message.
func (d *Dashboard) RenderList() string {
	visible := d.VisibleRows()
	if len(visible) == 0 {
		return emptyListMessage + "\n"
	}

	var b strings.Builder
	for _, r := range visible {
		a := &r.Appointment
		fmt.Fprintf(&b, "%s (%d min)\n", a.TimeLabel(), a.DurationMinutes)
		fmt.Fprintf(&b, "  %s\n", a.DescriptionOrDefault())
		fmt.Fprintf(&b, "  %s • %s • %s\n", a.DateLabel(), a.DoctorName(), a.Room())
		fmt.Fprintf(&b, "  [%s] id=%s\n", r.CancelLabel(), a.Key())
	}
	return b.String()
}
