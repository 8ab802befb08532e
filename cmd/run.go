package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"htprobe.dev/pkg/htprobe/internal/domain"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

var runSubjectFlag string
var runSizeFlag string
var runSuiteFileFlag string
var runCaptureFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [suites...]",
		Short: "Run verification suites against the subject",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := m.ParseSize(viper.GetString(sizeConfigKey))
			if err != nil {
				return err
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Suites:      args,
				SuiteFile:   m.Path(runSuiteFileFlag),
				Exclude:     viper.GetStringSlice(excludeConfigKey),
				Reports:     m.Path(viper.GetString(outputFlagName)),
				Subject:     viper.GetString(subjectConfigKey),
				Size:        size,
				CaseTimeout: viper.GetDuration(caseTimeoutConfigKey),
				InitTimeout: viper.GetDuration(initTimeoutConfigKey),
				Capture:     viper.GetBool(captureConfigKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runSubjectFlag, subjectFlagName, viper.GetString(subjectConfigKey), "subject binary name or path")
	bindFlagToConfig(cmd.Flags().Lookup(subjectFlagName), subjectConfigKey)

	cmd.Flags().StringVar(&runSizeFlag, sizeFlagName, viper.GetString(sizeConfigKey), "terminal size as COLSxROWS")
	bindFlagToConfig(cmd.Flags().Lookup(sizeFlagName), sizeConfigKey)

	cmd.Flags().Duration(timeoutFlagName, DefaultCaseTimeout, "per-case timeout")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), caseTimeoutConfigKey)

	cmd.Flags().BoolVar(&runCaptureFlag, captureFlagName, viper.GetBool(captureConfigKey), "capture raw event lines per case under the reports dir")
	bindFlagToConfig(cmd.Flags().Lookup(captureFlagName), captureConfigKey)

	cmd.Flags().StringVarP(&runSuiteFileFlag, suiteFileFlagName, "f", "", "load suites from a YAML file instead of built-ins")
}
