package schedule

import "time"

// Entry is the internal projection of one program: the fields needed to emit
// XMLTV. Start and Stop are zone-aware instants; Stop is never authoritative
// state, it is rederived from the whole sequence after every mutation.
type Entry struct {
	Start      time.Time
	Stop       time.Time
	Title      string
	Desc       string
	Category   string
	EpisodeNum string
}

// DisplayEntry is the display projection of one program: the string-formatted
// fields the operator sees and edits, in the shared column order.
type DisplayEntry struct {
	Date       string // DD.MM.YYYY.
	StartTime  string // HH:MM
	Title      string
	Category   string
	EpisodeNum string
	Repeat     string
	Desc       string
}

// Cell returns the value of the given column.
func (d *DisplayEntry) Cell(col Column) string {
	switch col {
	case ColDate:
		return d.Date
	case ColTime:
		return d.StartTime
	case ColTitle:
		return d.Title
	case ColCategory:
		return d.Category
	case ColEpisodeNum:
		return d.EpisodeNum
	case ColRepeat:
		return d.Repeat
	case ColDescription:
		return d.Desc
	}
	return ""
}

// SetCell assigns the value of the given column.
func (d *DisplayEntry) SetCell(col Column, value string) {
	switch col {
	case ColDate:
		d.Date = value
	case ColTime:
		d.StartTime = value
	case ColTitle:
		d.Title = value
	case ColCategory:
		d.Category = value
	case ColEpisodeNum:
		d.EpisodeNum = value
	case ColRepeat:
		d.Repeat = value
	case ColDescription:
		d.Desc = value
	}
}

// Schedule holds the two aligned projections of the same logical rows, in
// chronological broadcast order. A Schedule is an immutable snapshot: edits
// produce a fresh one via ApplyEdit, they never mutate in place.
type Schedule struct {
	Display  []DisplayEntry
	Internal []Entry
}

// Clone returns a deep copy of the snapshot.
func (s *Schedule) Clone() *Schedule {
	c := &Schedule{
		Display:  make([]DisplayEntry, len(s.Display)),
		Internal: make([]Entry, len(s.Internal)),
	}
	copy(c.Display, s.Display)
	copy(c.Internal, s.Internal)
	return c
}

// Len returns the number of entries.
func (s *Schedule) Len() int { return len(s.Display) }
