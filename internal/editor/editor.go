// Package editor is the click-to-edit profile field widget, unified from
// the per-page variants that used to drift apart: one component
// parameterized by entity kind and by which fields carry dates.
//
// Per row: Display -> (edit) -> Editing -> (submit) -> Saving -> Display on
// success or back to Editing on failure; Editing -> (cancel) -> Display
// reverts the input. Exactly one of the display text and the input box is
// visible at any time.
package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/clinic-portal/pkg/dateform"
	apperrors "github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/validator"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// Updater is the slice of the clinic API the editor needs.
type Updater interface {
	UpdateField(ctx context.Context, entity model.EntityKind, entityID, field, value string) (string, error)
}

// RowState is the edit lifecycle state of one row.
type RowState int

const (
	StateDisplay RowState = iota
	StateEditing
	StateSaving
)

func (s RowState) String() string {
	switch s {
	case StateDisplay:
		return "display"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// Field seeds one editable row.
type Field struct {
	Name  string
	Value string
}

// Config parameterizes the editor per page: which entity the page shows and
// which of its fields are dates shown as MM-DD-YYYY but stored as
// YYYY-MM-DD.
type Config struct {
	Entity     model.EntityKind
	EntityID   string
	DateFields []string
}

// Row is one editable field.
type Row struct {
	Field   string
	Display string
	Input   string
	State   RowState
	isDate  bool
}

// DisplayVisible reports whether the display text is the visible element.
func (r *Row) DisplayVisible() bool { return r.State == StateDisplay }

// InputVisible reports whether the input box is the visible element.
func (r *Row) InputVisible() bool { return r.State != StateDisplay }

// Editor manages the editable rows of one profile page.
type Editor struct {
	cfg      Config
	updater  Updater
	validate validator.Validator
	alert    func(msg string)
	logger   *logger.Logger

	rows  map[string]*Row
	order []string
}

// New builds an editor for the given page. The entity kind must be patient
// or doctor and the id must be present; pages never carry both ids.
func New(cfg Config, updater Updater, fields []Field, alert func(string), log *logger.Logger) (*Editor, error) {
	if cfg.Entity != model.EntityPatient && cfg.Entity != model.EntityDoctor {
		return nil, fmt.Errorf("unknown entity kind %q", cfg.Entity)
	}
	if cfg.EntityID == "" {
		return nil, fmt.Errorf("missing %s id", cfg.Entity)
	}
	if log == nil {
		log = logger.NewLogger(nil)
	}

	dates := make(map[string]bool, len(cfg.DateFields))
	for _, f := range cfg.DateFields {
		dates[f] = true
	}

	e := &Editor{
		cfg:      cfg,
		updater:  updater,
		validate: validator.New(),
		alert:    alert,
		logger:   log.WithComponent("editor"),
		rows:     make(map[string]*Row, len(fields)),
	}
	for _, f := range fields {
		if _, dup := e.rows[f.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", f.Name)
		}
		e.rows[f.Name] = &Row{
			Field:   f.Name,
			Display: f.Value,
			Input:   f.Value,
			State:   StateDisplay,
			isDate:  dates[f.Name],
		}
		e.order = append(e.order, f.Name)
	}
	return e, nil
}

// Row returns the named row, or nil.
func (e *Editor) Row(field string) *Row { return e.rows[field] }

// Rows returns the rows in page order.
func (e *Editor) Rows() []*Row {
	out := make([]*Row, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.rows[name])
	}
	return out
}

// BeginEdit switches a row into editing, seeding the input with the
// displayed value.
func (e *Editor) BeginEdit(field string) error {
	row, err := e.get(field)
	if err != nil {
		return err
	}
	if row.State != StateDisplay {
		return nil
	}
	row.Input = row.Display
	row.State = StateEditing
	return nil
}

// SetInput replaces the row's in-progress input value.
func (e *Editor) SetInput(field, value string) error {
	row, err := e.get(field)
	if err != nil {
		return err
	}
	if row.State != StateEditing {
		return fmt.Errorf("field %q is not being edited", field)
	}
	row.Input = value
	return nil
}

// Cancel abandons the edit (the Escape key): back to display, unsaved input
// reverted to the last displayed value.
func (e *Editor) Cancel(field string) error {
	row, err := e.get(field)
	if err != nil {
		return err
	}
	if row.State != StateEditing {
		return nil
	}
	row.Input = row.Display
	row.State = StateDisplay
	return nil
}

// Submit saves the row (the Enter key). Date fields are validated and
// converted to the API format before anything is sent; a malformed date
// never leaves the client. A failed save keeps the row in editing with the
// input intact so the user can correct and retry.
func (e *Editor) Submit(ctx context.Context, field string) error {
	row, err := e.get(field)
	if err != nil {
		return err
	}
	switch row.State {
	case StateSaving:
		// A save is already in flight for this row.
		return nil
	case StateDisplay:
		return fmt.Errorf("field %q is not being edited", field)
	}

	value := row.Input
	if row.isDate {
		converted, err := dateform.ToAPIDate(strings.TrimSpace(value))
		if err != nil {
			e.notify(fmt.Sprintf("Invalid date for %s. Please use MM-DD-YYYY format.", field))
			return nil
		}
		value = converted
	}

	if err := e.validateRequest(field, value); err != nil {
		e.notify("Error updating: " + err.Error())
		return nil
	}

	row.State = StateSaving
	newValue, err := e.updater.UpdateField(ctx, e.cfg.Entity, e.cfg.EntityID, field, value)
	if err != nil {
		row.State = StateEditing
		e.logger.Error(err, "field update failed", "field", field)
		if apperrors.IsUpstream(err) {
			e.notify("Error updating: " + apperrors.Message(err))
		} else {
			e.notify("A network error occurred. Please try again.")
		}
		return nil
	}

	display := newValue
	if row.isDate {
		if converted, err := dateform.ToDisplayDate(newValue); err == nil {
			display = converted
		}
	}
	row.Display = display
	row.Input = display
	row.State = StateDisplay
	return nil
}

func (e *Editor) validateRequest(field, value string) error {
	switch e.cfg.Entity {
	case model.EntityPatient:
		return e.validate.Validate(model.UpdatePatientRequest{
			PatientID: e.cfg.EntityID,
			Field:     field,
			Value:     value,
		})
	default:
		return e.validate.Validate(model.UpdateDoctorRequest{
			DoctorID: e.cfg.EntityID,
			Field:    field,
			Value:    value,
		})
	}
}

// Render draws every row, marking the one element visible per row.
func (e *Editor) Render() string {
	var b strings.Builder
	for _, row := range e.Rows() {
		if row.DisplayVisible() {
			fmt.Fprintf(&b, "%s: %s\n", row.Field, row.Display)
		} else {
			fmt.Fprintf(&b, "%s: <%s> (%s)\n", row.Field, row.Input, row.State)
		}
	}
	return b.String()
}

func (e *Editor) get(field string) (*Row, error) {
	row := e.rows[field]
	if row == nil {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	return row, nil
}

func (e *Editor) notify(msg string) {
	if e.alert != nil {
		e.alert(msg)
	}
}
