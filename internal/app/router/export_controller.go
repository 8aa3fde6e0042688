package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/schedule"
	"github.com/oslobodiboze/RASPOREDnew/internal/app/xmltv"
)

const xmltvGzipFilename = "raspored.xml.gz"

// exportSnapshot takes the immutable snapshot the export reads, gated by the
// overlap/required-field validation. Edits arriving after this point do not
// affect the response.
func exportSnapshot(c *gin.Context) (*xmltv.TV, bool) {
	snap, err := session.Snapshot()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}

	if err = schedule.Validate(snap); err != nil {
		var oe *schedule.OverlapError
		if errors.As(err, &oe) {
			logger.Warn("Export blocked by validation.", zap.Error(err))
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return nil, false
	}

	tv, err := xmltv.Convert(snap.Internal, conf.ChannelMeta())
	if err != nil {
		logger.Error("Failed to convert schedule to XMLTV.", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return tv, true
}

// GetXMLTV emits the current schedule as an XMLTV document.
func GetXMLTV(c *gin.Context) {
	tv, ok := exportSnapshot(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Status(http.StatusOK)
	if err := xmltv.Write(tv, c.Writer); err != nil {
		logger.Error("Failed to write XMLTV response.", zap.Error(err))
	}
}

// GetXMLTVGzip emits the same document as a gzip attachment.
func GetXMLTVGzip(c *gin.Context) {
	tv, ok := exportSnapshot(c)
	if !ok {
		return
	}

	c.Header("Transfer-Encoding", "gzip")
	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", xmltvGzipFilename))
	c.Status(http.StatusOK)

	if err := xmltv.WriteGzip(tv, c.Writer); err != nil {
		logger.Error("Failed to write gzip XMLTV response.", zap.Error(err))
	}
}
