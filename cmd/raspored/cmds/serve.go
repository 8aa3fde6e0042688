package cmds

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/excel"
	"github.com/oslobodiboze/RASPOREDnew/internal/app/router"
)

var (
	servePort int
	serveFile string
)

func NewServeCLI() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP edit session server and the XMLTV feed endpoints.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.Validate(); err != nil {
				return err
			}

			var rows [][]string
			if serveFile != "" {
				var err error
				if rows, err = excel.ReadRows(serveFile); err != nil {
					return err
				}
			}

			r, err := router.NewEngine(conf, rows)
			if err != nil {
				return err
			}
			return r.Run(fmt.Sprintf(":%d", servePort))
		},
	}

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "HTTP listen port")
	serveCmd.Flags().StringVarP(&serveFile, "input", "i", "", "schedule workbook to preload into the edit session")

	return serveCmd
}
