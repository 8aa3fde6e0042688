package schedule

import (
	"fmt"
)

// FormatError reports a date or time string that matches no recognized shape,
// or denotes an impossible calendar date. Row is the operator-visible row
// number (1-indexed, offset by the header row); 0 when no single row applies.
type FormatError struct {
	Row  int
	Text string
}

func (e *FormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("invalid date/time format in row %d: %q", e.Row, e.Text)
	}
	return fmt.Sprintf("invalid date/time format: %q", e.Text)
}

// SchemaError reports a structurally unusable source: wrong column count or
// zero dated rows. Fatal to the whole load.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return e.Msg }

// AmbiguousTimeError reports a wall-clock time that the configured zone skips
// or doubles across a clock transition. The operation always fails rather
// than silently picking one interpretation.
type AmbiguousTimeError struct {
	Row  int
	Text string
	Kind string // "skipped" or "doubled"
}

func (e *AmbiguousTimeError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("ambiguous local time (%s by clock transition) in row %d: %q", e.Kind, e.Row, e.Text)
	}
	return fmt.Sprintf("ambiguous local time (%s by clock transition): %q", e.Kind, e.Text)
}

// OverlapError reports the first export-blocking violation found: either a
// derived interval that does not end strictly after it starts, or a required
// field left blank. Indices are 0-based schedule positions.
type OverlapError struct {
	Index int
	Next  int    // Index+1 for pair violations, -1 for field violations
	Field string // caption of the missing field, "" for pair violations
}

func (e *OverlapError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("required field %q is blank in entry %d", e.Field, e.Index)
	}
	if e.Next < 0 {
		return "schedule is empty"
	}
	return fmt.Sprintf("time overlap between entries %d and %d", e.Index, e.Next)
}
