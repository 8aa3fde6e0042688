package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Edit is one atomic mutation of the display projection. Edits never touch a
// schedule in place: ApplyEdit copies the current snapshot, applies the edit,
// rederives the internal projection and returns a fresh snapshot. The caller
// keeps undo/redo as plain snapshot stacks.
type Edit interface {
	apply(display []DisplayEntry) ([]DisplayEntry, error)
}

// ApplyEdit produces the successor snapshot of s under e. On failure the
// input snapshot is still valid and unchanged.
func ApplyEdit(s *Schedule, e Edit, loc *time.Location) (*Schedule, error) {
	display := make([]DisplayEntry, len(s.Display))
	copy(display, s.Display)

	display, err := e.apply(display)
	if err != nil {
		return nil, err
	}

	internal, err := Rebuild(display, loc)
	if err != nil {
		return nil, err
	}
	return &Schedule{Display: display, Internal: internal}, nil
}

// SetCell assigns one cell of the grid.
type SetCell struct {
	Row   int
	Col   Column
	Value string
}

func (e SetCell) apply(display []DisplayEntry) ([]DisplayEntry, error) {
	if e.Row < 0 || e.Row >= len(display) {
		return nil, fmt.Errorf("row %d out of range", e.Row)
	}
	if e.Col < 0 || e.Col >= NumColumns {
		return nil, fmt.Errorf("column %d out of range", int(e.Col))
	}
	// Episode codes are either blank, a number, or a numeric A-B range.
	if e.Col == ColEpisodeNum && !validEpisodeNum(e.Value) {
		return nil, fmt.Errorf("invalid episode number: %q", e.Value)
	}
	display[e.Row].SetCell(e.Col, e.Value)
	return display, nil
}

// InsertRow inserts a blank row at the given position (len(display) appends).
type InsertRow struct {
	At int
}

func (e InsertRow) apply(display []DisplayEntry) ([]DisplayEntry, error) {
	if e.At < 0 || e.At > len(display) {
		return nil, fmt.Errorf("row %d out of range", e.At)
	}
	display = append(display, DisplayEntry{})
	copy(display[e.At+1:], display[e.At:])
	display[e.At] = DisplayEntry{}
	return display, nil
}

// DeleteRow removes the row at the given position.
type DeleteRow struct {
	At int
}

func (e DeleteRow) apply(display []DisplayEntry) ([]DisplayEntry, error) {
	if e.At < 0 || e.At >= len(display) {
		return nil, fmt.Errorf("row %d out of range", e.At)
	}
	return append(display[:e.At], display[e.At+1:]...), nil
}

// ShiftDates moves every valid date in the date column by Days calendar days.
type ShiftDates struct {
	Days int
}

func (e ShiftDates) apply(display []DisplayEntry) ([]DisplayEntry, error) {
	for i := range display {
		if !IsValidDate(display[i].Date) {
			continue
		}
		date, err := time.Parse("2.1.2006.", canonicalDate(display[i].Date))
		if err != nil {
			continue
		}
		display[i].Date = date.AddDate(0, 0, e.Days).Format(displayDateLayout)
	}
	return display, nil
}

// Replace substitutes every occurrence of Find across all cells.
type Replace struct {
	Find    string
	Replace string
}

func (e Replace) apply(display []DisplayEntry) ([]DisplayEntry, error) {
	if e.Find == "" {
		return display, nil
	}
	for i := range display {
		for col := Column(0); col < NumColumns; col++ {
			cell := display[i].Cell(col)
			if strings.Contains(cell, e.Find) {
				display[i].SetCell(col, strings.ReplaceAll(cell, e.Find, e.Replace))
			}
		}
	}
	return display, nil
}

// IncrementEpisodes raises every numeric episode code by one; A-B ranges
// increment both ends. Blank or non-numeric codes stay untouched. A nil Rows
// slice applies to all rows, otherwise only the listed ones.
type IncrementEpisodes struct {
	Rows []int
}

func (e IncrementEpisodes) apply(display []DisplayEntry) ([]DisplayEntry, error) {
	rows := e.Rows
	if rows == nil {
		rows = make([]int, len(display))
		for i := range rows {
			rows[i] = i
		}
	}
	for _, i := range rows {
		if i < 0 || i >= len(display) {
			return nil, fmt.Errorf("row %d out of range", i)
		}
		if next, ok := incrementEpisode(display[i].EpisodeNum); ok {
			display[i].EpisodeNum = next
		}
	}
	return display, nil
}

func incrementEpisode(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	if n, err := strconv.Atoi(code); err == nil {
		return strconv.Itoa(n + 1), true
	}
	parts := strings.Split(code, "-")
	if len(parts) == 2 {
		lo, err1 := strconv.Atoi(parts[0])
		hi, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil {
			return fmt.Sprintf("%d-%d", lo+1, hi+1), true
		}
	}
	return "", false
}

func validEpisodeNum(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return true
	}
	if _, err := strconv.Atoi(code); err == nil {
		return true
	}
	parts := strings.Split(code, "-")
	if len(parts) != 2 {
		return false
	}
	_, err1 := strconv.Atoi(parts[0])
	_, err2 := strconv.Atoi(parts[1])
	return err1 == nil && err2 == nil
}
