package schedule

import "strings"

// requiredColumns must be non-blank on every entry for the schedule to be
// exportable. A single blank invalidates the whole schedule, not just the row.
var requiredColumns = []Column{ColDate, ColTime, ColTitle}

// Validate gates export and save: it checks required fields and re-derived
// interval ordering over the current schedule state. The check is fail-fast,
// reporting only the first violation in index order; the schedule itself is
// left untouched and the session remains usable.
func Validate(s *Schedule) error {
	if s == nil || s.Len() == 0 {
		return &OverlapError{Index: 0, Next: -1}
	}

	for i := range s.Display {
		for _, col := range requiredColumns {
			if strings.TrimSpace(s.Display[i].Cell(col)) == "" {
				return &OverlapError{Index: i, Next: -1, Field: col.Caption()}
			}
		}
	}

	// Each derived interval must end strictly after it starts. Because every
	// stop is the next entry's start, this rejects any pair whose starts are
	// equal or out of order.
	for i := 0; i < len(s.Internal)-1; i++ {
		if !s.Internal[i].Start.Before(s.Internal[i].Stop) {
			return &OverlapError{Index: i, Next: i + 1}
		}
	}

	return nil
}
