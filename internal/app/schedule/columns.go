package schedule

// Column identifies one of the seven positional columns every source
// spreadsheet must carry. The same ordering is shared by the normalizer, the
// edit model, the Excel writer and the XMLTV converter, so the positional
// meaning is defined exactly once.
type Column int

const (
	ColDate Column = iota
	ColTime
	ColTitle
	ColCategory
	ColEpisodeNum
	ColRepeat
	ColDescription

	// NumColumns is the required logical column count.
	NumColumns = 7
)

// DisplayCaptions are the grid headers shown to the operator and written to
// the saved workbook, in column order.
var DisplayCaptions = [NumColumns]string{
	"DATE",
	"START TIME",
	"NAZIV EMISIJE",
	"CATEGORY",
	"EPISODE NUMBER",
	"P/R",
	"OPIS emisije",
}

func (c Column) Caption() string {
	if c < 0 || int(c) >= NumColumns {
		return ""
	}
	return DisplayCaptions[c]
}
