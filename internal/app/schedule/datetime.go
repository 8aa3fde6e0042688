package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The three date shapes a source cell may use. The first pattern also decides
// whether a raw row is a program entry at all.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})\.?$`), // D.M.YYYY or D.M.YYYY.
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`),      // D/M/YYYY
	regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`),          // YYYY-MM-DD
}

// dateLayouts are tried in fixed order; the first one that parses wins.
var dateLayouts = []string{"2.1.2006.", "2/1/2006", "2006-01-02"}

// IsValidDate reports whether text matches one of the recognized date shapes
// and denotes a real calendar date. It doubles as the row filter: a raw row
// belongs to the schedule only if its first cell satisfies this predicate.
func IsValidDate(text string) bool {
	text = strings.TrimSpace(text)

	for i, pattern := range datePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		var day, month, year int
		if i == 2 {
			year, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			day, _ = strconv.Atoi(m[3])
		} else {
			day, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			year, _ = strconv.Atoi(m[3])
		}

		// Reject combinations the pattern cannot (e.g. Feb 30, month 13).
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return d.Year() == year && d.Month() == time.Month(month) && d.Day() == day
	}
	return false
}

// ParseDateTime combines a date string and a time string into a single
// instant localized in loc. Dots in the time string act as colon substitutes.
// Shapes that do not parse fail with FormatError; wall-clock times that loc
// skips or doubles across a clock transition fail with AmbiguousTimeError.
func ParseDateTime(dateText, timeText string, loc *time.Location) (time.Time, error) {
	dateText = strings.TrimSpace(dateText)
	timeText = strings.TrimSpace(timeText)

	var date time.Time
	var err error
	for _, layout := range dateLayouts {
		if date, err = time.Parse(layout, dateText); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, &FormatError{Text: dateText}
	}

	clock, err := time.Parse("15:04", strings.ReplaceAll(timeText, ".", ":"))
	if err != nil {
		return time.Time{}, &FormatError{Text: dateText + " " + timeText}
	}

	return localize(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), loc, dateText+" "+timeText)
}

// localize builds the instant for a wall-clock time in loc and refuses times
// that do not exist (skipped) or exist twice (doubled) around a transition.
func localize(year int, month time.Month, day, hour, minute int, loc *time.Location, text string) (time.Time, error) {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)

	if t.Year() != year || t.Month() != month || t.Day() != day || t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, &AmbiguousTimeError{Text: text, Kind: "skipped"}
	}

	// The same wall clock one hour away means the zone replays this time.
	if other := t.Add(-time.Hour); other.Day() == day && other.Hour() == hour && other.Minute() == minute {
		return time.Time{}, &AmbiguousTimeError{Text: text, Kind: "doubled"}
	}
	if other := t.Add(time.Hour); other.Day() == day && other.Hour() == hour && other.Minute() == minute {
		return time.Time{}, &AmbiguousTimeError{Text: text, Kind: "doubled"}
	}

	return t, nil
}
