// Package calendar models the dashboard month grid: a cursor over the
// displayed month and a single selected date. The cursor and selection move
// independently so paging through months never loses the selected day.
package calendar

import (
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-portal/pkg/dateform"
)

// Cell is one slot of the rendered grid. Leading cells before the first of
// the month are empty placeholders keeping weekday columns aligned.
type Cell struct {
	Day      int
	Empty    bool
	Selected bool
}

// State is the calendar cursor plus the selected date.
type State struct {
	cursorYear  int
	cursorMonth time.Month

	selectedYear  int
	selectedMonth time.Month
	selectedDay   int
}

// New returns a calendar showing now's month with today selected.
func New(now time.Time) *State {
	return &State{
		cursorYear:    now.Year(),
		cursorMonth:   now.Month(),
		selectedYear:  now.Year(),
		selectedMonth: now.Month(),
		selectedDay:   now.Day(),
	}
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Grid returns the cells for the cursor month: weekday-offset placeholders
// followed by the month's days. At most one cell is selected, and only when
// the cursor is on the selection's month.
func (s *State) Grid() []Cell {
	firstWeekday := int(time.Date(s.cursorYear, s.cursorMonth, 1, 0, 0, 0, 0, time.UTC).Weekday())
	total := daysIn(s.cursorYear, s.cursorMonth)

	cells := make([]Cell, 0, firstWeekday+total)
	for i := 0; i < firstWeekday; i++ {
		cells = append(cells, Cell{Empty: true})
	}
	for day := 1; day <= total; day++ {
		cells = append(cells, Cell{
			Day:      day,
			Selected: day == s.selectedDay && s.cursorMonth == s.selectedMonth && s.cursorYear == s.selectedYear,
		})
	}
	return cells
}

// PrevMonth moves the cursor back one month. The selection stays put.
func (s *State) PrevMonth() {
	if s.cursorMonth == time.January {
		s.cursorMonth = time.December
		s.cursorYear--
		return
	}
	s.cursorMonth--
}

// NextMonth moves the cursor forward one month. The selection stays put.
func (s *State) NextMonth() {
	if s.cursorMonth == time.December {
		s.cursorMonth = time.January
		s.cursorYear++
		return
	}
	s.cursorMonth++
}

// Select picks a day in the cursor month.
func (s *State) Select(day int) error {
	if day < 1 || day > daysIn(s.cursorYear, s.cursorMonth) {
		return fmt.Errorf("day %d out of range for %s %d", day, s.cursorMonth, s.cursorYear)
	}
	s.selectedDay = day
	s.selectedMonth = s.cursorMonth
	s.selectedYear = s.cursorYear
	return nil
}

// SelectedDate returns the selection as an API date.
func (s *State) SelectedDate() string {
	return dateform.FormatYMD(s.selectedYear, s.selectedMonth, s.selectedDay)
}

// HeaderLabel renders the selection as "Jan 2" for the current-date header.
func (s *State) HeaderLabel() string {
	return fmt.Sprintf("%s %d", s.selectedMonth.String()[:3], s.selectedDay)
}

// CursorLabel renders the cursor month as "January 2006".
func (s *State) CursorLabel() string {
	return fmt.Sprintf("%s %d", s.cursorMonth, s.cursorYear)
}

// Year returns the cursor year for the year header.
func (s *State) Year() int {
	return s.cursorYear
}
