package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// displayDateLayout and displayTimeLayout are the presentation formats of
	// the display projection.
	displayDateLayout = "02.01.2006."
	displayTimeLayout = "15:04"

	// headerOffset converts a 0-based filtered row index into the operator's
	// row numbering (1-indexed, one header row above the data).
	headerOffset = 2
)

// instantShape double-checks every derived instant against a strict textual
// form before the projections are emitted.
var instantShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}[+-]\d{2}:\d{2}$`)

const instantLayout = "2006-01-02 15:04:05-07:00"

// Normalize consumes raw spreadsheet rows and produces the two aligned
// projections of the schedule. Rows whose first cell is not a recognizable
// date are silently dropped; everything else follows the fixed 7-column
// layout. The input is never mutated.
func Normalize(rows [][]string, loc *time.Location) (*Schedule, error) {
	logger := zap.L()

	// Keep only rows that begin a program entry.
	dated := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 && IsValidDate(row[0]) {
			dated = append(dated, row)
		}
	}
	if len(dated) == 0 {
		return nil, &SchemaError{Msg: "no rows starting with a date"}
	}
	logger.Debug("Filtered dated rows.", zap.Int("rows", len(dated)))

	// The logical column count is decided by the widest dated row. Missing
	// trailing cells are padded as blanks and caught later by the required
	// field checks.
	width := 0
	for _, row := range dated {
		if len(row) > width {
			width = len(row)
		}
	}
	if width < NumColumns {
		return nil, &SchemaError{
			Msg: fmt.Sprintf("source must have at least %d columns, but only has %d", NumColumns, width),
		}
	} else if width > NumColumns {
		logger.Warn("Source has extra columns. Only the first ones will be used.",
			zap.Int("columns", width), zap.Int("kept", NumColumns))
	}

	display := make([]DisplayEntry, len(dated))
	for i, row := range dated {
		cells := make([]string, NumColumns)
		copy(cells, row)

		display[i] = DisplayEntry{
			Date:       canonicalDate(cells[ColDate]),
			StartTime:  canonicalTime(cells[ColTime]),
			Title:      cells[ColTitle],
			Category:   cells[ColCategory],
			EpisodeNum: cells[ColEpisodeNum],
			Repeat:     cells[ColRepeat],
			Desc:       cells[ColDescription],
		}
	}

	internal, err := buildInternal(display, loc, false)
	if err != nil {
		return nil, err
	}

	// Reformat date and time from the derived instants so the display
	// projection is uniformly padded regardless of the source shape.
	for i := range display {
		display[i].Date = internal[i].Start.Format(displayDateLayout)
		display[i].StartTime = internal[i].Start.Format(displayTimeLayout)
	}

	return &Schedule{Display: display, Internal: internal}, nil
}

// Rebuild recomputes the internal projection from a (possibly edited)
// display projection. Every start instant is reparsed and every stop is
// rederived from the full sequence. Unlike a file load, rows with blank date
// or time cells are tolerated: they keep null instants, are skipped at
// emission, and block the export gate through the required-field checks.
func Rebuild(display []DisplayEntry, loc *time.Location) ([]Entry, error) {
	return buildInternal(display, loc, true)
}

func buildInternal(display []DisplayEntry, loc *time.Location, lenient bool) ([]Entry, error) {
	entries := make([]Entry, len(display))
	for i, d := range display {
		entries[i] = Entry{
			Title:      d.Title,
			Desc:       d.Desc,
			Category:   d.Category,
			EpisodeNum: d.EpisodeNum,
		}

		date, clock := canonicalDate(d.Date), canonicalTime(d.StartTime)
		if lenient && (date == "" || clock == "") {
			continue
		}
		start, err := ParseDateTime(date, clock, loc)
		if err != nil {
			return nil, withRow(err, i+headerOffset)
		}
		entries[i].Start = start
	}

	entries = DeriveStops(entries, loc)

	// Defensive double-check of every derived instant.
	for i, e := range entries {
		if e.Start.IsZero() {
			continue
		}
		if !instantShape.MatchString(e.Start.Format(instantLayout)) {
			return nil, &FormatError{Row: i + headerOffset, Text: e.Start.String()}
		}
		if !e.Stop.IsZero() && !instantShape.MatchString(e.Stop.Format(instantLayout)) {
			return nil, &FormatError{Row: i + headerOffset, Text: e.Stop.String()}
		}
	}

	return entries, nil
}

// canonicalDate strips whitespace and gives dot-form dates their trailing
// dot. Slash and ISO forms carry their shape tag already and pass untouched.
func canonicalDate(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.ContainsAny(s, "/-") && !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// canonicalTime strips whitespace and treats dots as colon substitutes.
func canonicalTime(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		s = strings.ReplaceAll(s, ".", ":")
	}
	return s
}

// withRow stamps the operator-visible row number onto a parse error.
func withRow(err error, row int) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Row = row
		return fe
	}
	var ae *AmbiguousTimeError
	if errors.As(err, &ae) {
		ae.Row = row
		return ae
	}
	return err
}
