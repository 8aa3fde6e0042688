package schedule

import "time"

// lastStopHour pins the synthesized stop of the final program: broadcast
// days end at 07:00 local time on the next calendar day.
const lastStopHour = 7

// DeriveStops computes the stop instant of every entry as the start instant
// of the following entry; the last entry stops at 07:00 on the next calendar
// day after its own start. The function is pure and idempotent: it assumes
// the sequence is already in start-time order and never sorts.
func DeriveStops(entries []Entry, loc *time.Location) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	for i := range out {
		if out[i].Start.IsZero() {
			// Nothing to derive from; the entry keeps null instants and is
			// skipped at emission.
			out[i].Stop = time.Time{}
			continue
		}
		if i < len(out)-1 {
			out[i].Stop = out[i+1].Start
			continue
		}
		start := out[i].Start.In(loc)
		out[i].Stop = time.Date(start.Year(), start.Month(), start.Day()+1, lastStopHour, 0, 0, 0, loc)
	}
	return out
}
