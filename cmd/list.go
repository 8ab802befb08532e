package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"htprobe.dev/pkg/htprobe/internal/domain"
	m "htprobe.dev/pkg/htprobe/internal/model"
)

var listSuiteFileFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [suites...]",
		Short: "List suites and case counts",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				Suites:    args,
				SuiteFile: m.Path(listSuiteFileFlag),
				Exclude:   viper.GetStringSlice(excludeConfigKey),
			})
		},
	}

	cmd.Flags().StringVarP(&listSuiteFileFlag, suiteFileFlagName, "f", "", "load suites from a YAML file instead of built-ins")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
