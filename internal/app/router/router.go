package router

import (
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/config"
)

var (
	logger *zap.Logger

	conf    *config.Config
	session *Session
)

// NewEngine builds the gin engine serving the edit session and the XMLTV
// feed. initialRows, when non-nil, preloads the session from a workbook
// given on the command line.
func NewEngine(cfg *config.Config, initialRows [][]string) (*gin.Engine, error) {
	logger = zap.L()

	gin.SetMode(gin.ReleaseMode)

	conf = cfg
	session = NewSession(cfg.Location)

	if initialRows != nil {
		if err := session.Load(initialRows); err != nil {
			return nil, err
		}
	}

	r := gin.New()

	r.Use(ginzap.Ginzap(logger, "", false))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	// edit session
	r.POST("/schedule/load", LoadSchedule)
	r.GET("/schedule", GetSchedule)
	r.POST("/schedule/edit", EditSchedule)
	r.POST("/schedule/undo", UndoEdit)
	r.POST("/schedule/redo", RedoEdit)
	r.GET("/schedule/validate", ValidateSchedule)
	r.POST("/schedule/save", SaveSchedule)

	// export
	r.GET("/xmltv", GetXMLTV)
	r.GET("/xmltv.gz", GetXMLTVGzip)

	return r, nil
}
