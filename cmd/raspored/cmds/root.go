package cmds

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/config"
	"github.com/oslobodiboze/RASPOREDnew/internal/pkg/logging"
	"github.com/oslobodiboze/RASPOREDnew/internal/pkg/util"
)

var (
	cfgFile string

	conf *config.Config
)

func init() {
	cobra.OnInitialize(initConfig)
}

func NewRootCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "raspored",
		Short:         "Converts a broadcast program schedule workbook into a validated XMLTV feed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(NewConvertCLI())
	rootCmd.AddCommand(NewServeCLI())
	rootCmd.AddCommand(NewUploadCLI())
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to the YAML config file")

	return rootCmd
}

// initConfig loads the config file, writing a default one next to the
// executable on first run, and installs the global logger.
func initConfig() {
	var err error
	var fPath string

	if cfgFile != "" {
		fPath = cfgFile
	} else {
		cfgHome, err := util.ExecutableDir()
		cobra.CheckErr(err)

		fPath = filepath.Join(cfgHome, "config.yml")

		if _, err = os.Stat(fPath); os.IsNotExist(err) {
			err = config.CreateDefaultCfg(fPath)
			cobra.CheckErr(err)
		}
	}

	conf, err = config.Load(fPath)
	cobra.CheckErr(err)

	if conf.Log != nil {
		cobra.CheckErr(logging.InitLogger(conf.Log))
	}
}
