package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func selectedCount(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if c.Selected {
			n++
		}
	}
	return n
}

func TestNewSelectsToday(t *testing.T) {
	s := New(at(2025, time.October, 11))
	assert.Equal(t, "2025-10-11", s.SelectedDate())
	assert.Equal(t, "Oct 11", s.HeaderLabel())
	assert.Equal(t, 2025, s.Year())
	assert.Equal(t, 1, selectedCount(s.Grid()))
}

func TestGridShape(t *testing.T) {
	// October 2025 starts on a Wednesday: three leading placeholders.
	s := New(at(2025, time.October, 11))
	cells := s.Grid()
	require.Len(t, cells, 3+31)
	for i := 0; i < 3; i++ {
		assert.True(t, cells[i].Empty)
	}
	assert.Equal(t, 1, cells[3].Day)
	assert.Equal(t, 31, cells[len(cells)-1].Day)
}

func TestExactlyOneSelectedAfterAnySelect(t *testing.T) {
	s := New(at(2025, time.October, 11))
	for _, day := range []int{1, 15, 31, 11} {
		require.NoError(t, s.Select(day))
		cells := s.Grid()
		assert.Equal(t, 1, selectedCount(cells), "after selecting %d", day)
		assert.True(t, cells[3+day-1].Selected)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	s := New(at(2025, time.February, 1))
	assert.Error(t, s.Select(0))
	assert.Error(t, s.Select(29)) // 2025 is not a leap year
	assert.NoError(t, s.Select(28))
}

func TestMonthNavigationKeepsSelection(t *testing.T) {
	s := New(at(2025, time.October, 11))
	s.NextMonth()
	assert.Equal(t, "2025-10-11", s.SelectedDate())
	assert.Equal(t, 0, selectedCount(s.Grid()), "selection not visible in another month")

	s.PrevMonth()
	assert.Equal(t, 1, selectedCount(s.Grid()))
}

func TestMonthNavigationYearRollover(t *testing.T) {
	s := New(at(2025, time.December, 5))
	s.NextMonth()
	assert.Equal(t, 2026, s.Year())
	assert.Equal(t, "January 2026", s.CursorLabel())

	s.PrevMonth()
	s.PrevMonth()
	assert.Equal(t, 2025, s.Year())
	assert.Equal(t, "November 2025", s.CursorLabel())
}

func TestSelectInNavigatedMonth(t *testing.T) {
	s := New(at(2025, time.September, 30))
	s.NextMonth()
	require.NoError(t, s.Select(11))
	assert.Equal(t, "2025-10-11", s.SelectedDate())
}

func TestLeapFebruaryGrid(t *testing.T) {
	s := New(at(2024, time.February, 1))
	// February 2024 starts on a Thursday and has 29 days.
	cells := s.Grid()
	assert.Len(t, cells, 4+29)
}
