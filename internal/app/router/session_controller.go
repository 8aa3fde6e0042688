package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/excel"
	"github.com/oslobodiboze/RASPOREDnew/internal/app/schedule"
)

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

// scheduleRow mirrors one display entry over the wire.
type scheduleRow struct {
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	EpisodeNum string `json:"episodeNum"`
	Repeat     string `json:"repeat"`
	Desc       string `json:"desc"`
}

type scheduleResponse struct {
	Rows  []scheduleRow `json:"rows"`
	Valid bool          `json:"valid"`
	Error string        `json:"error,omitempty"`
}

type editRequest struct {
	Op      string `json:"op" binding:"required"`
	Row     *int   `json:"row,omitempty"`
	Col     *int   `json:"col,omitempty"`
	Value   string `json:"value,omitempty"`
	Days    int    `json:"days,omitempty"`
	Find    string `json:"find,omitempty"`
	Replace string `json:"replace,omitempty"`
	Rows    []int  `json:"rows,omitempty"`
}

// LoadSchedule reads a workbook from disk and replaces the session contents.
// Load errors surface as a whole; no partial schedule is ever kept.
func LoadSchedule(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := excel.ReadRows(req.Path)
	if err != nil {
		logger.Error("Failed to read workbook.", zap.String("path", req.Path), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err = session.Load(rows); err != nil {
		logger.Error("Failed to normalize schedule.", zap.String("path", req.Path), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Schedule loaded.", zap.String("path", req.Path))
	GetSchedule(c)
}

// GetSchedule returns the display projection of the current snapshot.
func GetSchedule(c *gin.Context) {
	snap, err := session.Snapshot()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	resp := scheduleResponse{Rows: make([]scheduleRow, snap.Len())}
	for i, d := range snap.Display {
		resp.Rows[i] = scheduleRow{
			Date:       d.Date,
			StartTime:  d.StartTime,
			Title:      d.Title,
			Category:   d.Category,
			EpisodeNum: d.EpisodeNum,
			Repeat:     d.Repeat,
			Desc:       d.Desc,
		}
	}
	if verr := schedule.Validate(snap); verr != nil {
		resp.Error = verr.Error()
	} else {
		resp.Valid = true
	}

	c.PureJSON(http.StatusOK, &resp)
}

// EditSchedule applies one atomic edit and returns the successor state.
func EditSchedule(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edit, err := buildEdit(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = session.Apply(edit); err != nil {
		if errors.Is(err, ErrNoSchedule) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Warn("Edit rejected.", zap.String("op", req.Op), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	GetSchedule(c)
}

func buildEdit(req editRequest) (schedule.Edit, error) {
	switch req.Op {
	case "setCell":
		if req.Row == nil || req.Col == nil {
			return nil, errors.New("setCell requires row and col")
		}
		return schedule.SetCell{Row: *req.Row, Col: schedule.Column(*req.Col), Value: req.Value}, nil
	case "insertRow":
		if req.Row == nil {
			return nil, errors.New("insertRow requires row")
		}
		return schedule.InsertRow{At: *req.Row}, nil
	case "deleteRow":
		if req.Row == nil {
			return nil, errors.New("deleteRow requires row")
		}
		return schedule.DeleteRow{At: *req.Row}, nil
	case "shiftDates":
		return schedule.ShiftDates{Days: req.Days}, nil
	case "replace":
		return schedule.Replace{Find: req.Find, Replace: req.Replace}, nil
	case "incrementEpisodes":
		return schedule.IncrementEpisodes{Rows: req.Rows}, nil
	}
	return nil, errors.New("unknown edit op: " + req.Op)
}

// UndoEdit restores the previous snapshot.
func UndoEdit(c *gin.Context) {
	if !session.Undo() {
		c.JSON(http.StatusConflict, gin.H{"error": "nothing to undo"})
		return
	}
	GetSchedule(c)
}

// RedoEdit reapplies the last undone snapshot.
func RedoEdit(c *gin.Context) {
	if !session.Redo() {
		c.JSON(http.StatusConflict, gin.H{"error": "nothing to redo"})
		return
	}
	GetSchedule(c)
}

// ValidateSchedule runs the export gate without exporting.
func ValidateSchedule(c *gin.Context) {
	if err := session.Validate(); err != nil {
		if errors.Is(err, ErrNoSchedule) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"valid": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// SaveSchedule writes the display projection back to a workbook. The export
// gate applies: an invalid schedule blocks the save but keeps all edits.
func SaveSchedule(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := session.Snapshot()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err = schedule.Validate(snap); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err = excel.WriteDisplay(req.Path, snap.Display, conf.ColumnWidths); err != nil {
		logger.Error("Failed to save workbook.", zap.String("path", req.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Schedule saved.", zap.String("path", req.Path), zap.Int("rows", snap.Len()))
	c.JSON(http.StatusOK, gin.H{"rows": snap.Len()})
}
