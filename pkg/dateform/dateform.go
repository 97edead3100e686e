// Package dateform holds the textual date and time formats the clinic API
// and the portal views exchange. The API speaks YYYY-MM-DD; profile pages
// display MM-DD-YYYY; appointment lists display 12-hour clock times and
// abbreviated month dates.
package dateform

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// APILayout is the storage/API date format.
	APILayout = "2006-01-02"
	// DisplayLayout is the profile-page date format.
	DisplayLayout = "01-02-2006"
)

// ErrInvalidDate is returned for strings that do not form a real calendar
// date in the expected layout.
type ErrInvalidDate struct {
	Input  string
	Layout string
}

func (e *ErrInvalidDate) Error() string {
	return fmt.Sprintf("invalid date %q for layout %s", e.Input, e.Layout)
}

// parseStrict splits s on dashes and rebuilds the date, rejecting anything
// the calendar would normalize away (02-30 rolling over to 03-01 and the
// like). time.Parse alone would do most of this, but reconstructing and
// comparing components keeps the check explicit.
func parseStrict(s string, yearIdx, monthIdx, dayIdx int) (time.Time, error) {
	fail := func(layout string) (time.Time, error) {
		return time.Time{}, &ErrInvalidDate{Input: s, Layout: layout}
	}
	layout := APILayout
	if yearIdx == 2 {
		layout = DisplayLayout
	}

	if len(s) != 10 || strings.Count(s, "-") != 2 {
		return fail(layout)
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return fail(layout)
	}
	year, err1 := strconv.Atoi(parts[yearIdx])
	month, err2 := strconv.Atoi(parts[monthIdx])
	day, err3 := strconv.Atoi(parts[dayIdx])
	if err1 != nil || err2 != nil || err3 != nil {
		return fail(layout)
	}
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return fail(layout)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return fail(layout)
	}
	return t, nil
}

// ParseAPIDate parses a YYYY-MM-DD string into a date.
func ParseAPIDate(s string) (time.Time, error) {
	return parseStrict(s, 0, 1, 2)
}

// ParseDisplayDate parses a MM-DD-YYYY string into a date.
func ParseDisplayDate(s string) (time.Time, error) {
	return parseStrict(s, 2, 0, 1)
}

// ToAPIDate converts MM-DD-YYYY to YYYY-MM-DD.
func ToAPIDate(display string) (string, error) {
	t, err := ParseDisplayDate(display)
	if err != nil {
		return "", err
	}
	return t.Format(APILayout), nil
}

// ToDisplayDate converts YYYY-MM-DD to MM-DD-YYYY.
func ToDisplayDate(api string) (string, error) {
	t, err := ParseAPIDate(api)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayLayout), nil
}

// FlexibleAPIDate accepts either layout and returns the API form. Edit
// widgets submit display-format dates; scripted callers send API format.
func FlexibleAPIDate(s string) (string, error) {
	if t, err := ParseAPIDate(s); err == nil {
		return t.Format(APILayout), nil
	}
	return ToAPIDate(s)
}

// FormatYMD renders a year/month/day triple as an API date.
func FormatYMD(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// Clock12 renders "HH:MM" or "HH:MM:SS" as a 12-hour clock time. Empty
// input yields the empty string; anything unparsable is passed through
// untouched so a bad value still shows up somewhere visible.
func Clock12(hhmm string) string {
	if hhmm == "" {
		return ""
	}
	parts := strings.Split(hhmm, ":")
	if len(parts) < 2 {
		return hhmm
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return hhmm
	}
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}

// DisplayLong renders an API date as "Jan 2, 2006". Unparsable input is
// passed through.
func DisplayLong(api string) string {
	t, err := ParseAPIDate(api)
	if err != nil {
		return api
	}
	return t.Format("Jan 2, 2006")
}

// DisplayWeekday renders an API date as "Monday, Jan 2" for the search
// results listing. Unparsable input is passed through.
func DisplayWeekday(api string) string {
	t, err := ParseAPIDate(api)
	if err != nil {
		return api
	}
	return t.Format("Monday, Jan 2")
}
