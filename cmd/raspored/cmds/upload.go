package cmds

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oslobodiboze/RASPOREDnew/internal/pkg/ftpx"
)

var uploadFile string

func NewUploadCLI() *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Uploads an exported XMLTV file to the configured FTP server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.Validate(); err != nil {
				return err
			}

			creds, err := conf.FTPCredentials()
			if err != nil {
				return err
			}

			if err = ftpx.Upload(cmd.Context(), creds, uploadFile); err != nil {
				zap.L().Error("FTP upload failed.", zap.Error(err))
				return err
			}
			return nil
		},
	}

	uploadCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "path of the XMLTV file to upload")

	_ = uploadCmd.MarkFlagRequired("file")

	return uploadCmd
}
