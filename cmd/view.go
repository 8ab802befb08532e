package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"htprobe.dev/pkg/htprobe/internal/domain"
	m "htprobe.dev/pkg/htprobe/internal/model"
	pkg "htprobe.dev/pkg/htprobe/pkg"
)

var viewEventsFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the most recent report or a captured event log",
		Long: `Render the most recently saved verification report. With --events,
replay a per-case capture log of raw subject event lines instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if viewEventsFlag != "" {
				capture, err := pkg.OpenCaptureLog[string](viewEventsFlag)
				if err != nil {
					return err
				}

				return capture.Range(func(_ uint64, line string) error {
					cmd.Println(line)
					return nil
				})
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	cmd.Flags().StringVar(&viewEventsFlag, "events", "", "path to a captured event log to replay")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
