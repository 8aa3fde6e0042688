package cmds

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/excel"
	"github.com/oslobodiboze/RASPOREDnew/internal/app/schedule"
	"github.com/oslobodiboze/RASPOREDnew/internal/app/xmltv"
	"github.com/oslobodiboze/RASPOREDnew/internal/pkg/util"
)

var (
	convertInput   string
	convertOutput  string
	skipValidation bool
)

func NewConvertCLI() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Converts a schedule workbook into a validated XMLTV file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.L()

			if err := conf.Validate(); err != nil {
				return err
			}

			rows, err := excel.ReadRows(convertInput)
			if err != nil {
				return err
			}

			sched, err := schedule.Normalize(rows, conf.Location)
			if err != nil {
				return err
			}
			logger.Sugar().Infof("Normalized %d program entries from %s.", sched.Len(), convertInput)

			// The export gate: required fields and interval ordering.
			if err = schedule.Validate(sched); err != nil {
				return err
			}

			tv, err := xmltv.Convert(sched.Internal, conf.ChannelMeta())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err = xmltv.Write(tv, &buf); err != nil {
				return err
			}

			if !skipValidation {
				dtdPath, err := resolveDTDPath()
				if err != nil {
					return err
				}
				if err = xmltv.EnsureDTD(cmd.Context(), conf.DTD.URL, dtdPath); err != nil {
					return err
				}
				if err = xmltv.ValidateAgainstDTD(buf.Bytes(), dtdPath); err != nil {
					return err
				}
				logger.Info("XMLTV document validated against the DTD.")
			}

			outPath := convertOutput
			if outPath == "" {
				outPath = strings.TrimSuffix(convertInput, filepath.Ext(convertInput)) + ".xml"
			}
			if err = os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				logger.Error("Failed to write XMLTV file.", zap.Error(err))
				return err
			}

			logger.Sugar().Infof("A total of %d programmes have been written to the file %s.", len(tv.Programmes), outPath)
			return nil
		},
	}

	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "path to the schedule workbook (.xlsx)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "path of the XMLTV file to write; defaults to the input name with an .xml extension")
	convertCmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "emit without validating against the XMLTV DTD")

	_ = convertCmd.MarkFlagRequired("input")

	return convertCmd
}

// resolveDTDPath anchors a relative DTD cache path at the executable dir.
func resolveDTDPath() (string, error) {
	if filepath.IsAbs(conf.DTD.Path) {
		return conf.DTD.Path, nil
	}
	currDir, err := util.ExecutableDir()
	if err != nil {
		return "", err
	}
	p := conf.DTD.Path
	if p == "" {
		p = "xmltv.dtd"
	}
	return filepath.Join(currDir, p), nil
}
