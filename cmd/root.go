// Package cmd provides the root command and CLI setup for htprobe.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"htprobe.dev/pkg/htprobe/internal/adapter"
	"htprobe.dev/pkg/htprobe/internal/controller"
	"htprobe.dev/pkg/htprobe/internal/domain"
)

var subjectAdapter adapter.SubjectAdapter
var signalAdapter adapter.SignalAdapter
var scriptFS adapter.ScriptFSAdapter
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns filters cases by description regex for applicable commands.
var excludePatterns []string

// verboseFlag raises the log level to debug.
var verboseFlag bool

// plainFlag forces the line-oriented UI even on a terminal.
var plainFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	subjectAdapter = adapter.NewLocalSubjectAdapter()
	signalAdapter = adapter.NewLocalSignalAdapter()
	scriptFS = adapter.NewLocalScriptFSAdapter()
	reportStore = adapter.NewReportStore()
}

const suitesHelp = `Built-in suites:
  exit-codes   normal exit code reporting
  signals      signal termination reporting
  lifecycle    control channel and descendant semantics
  sweep        exhaustive exit codes 0-255 (opt-in)`

const rootLongDescription = `htprobe is a validation harness for a headless terminal subject process.
It launches the subject, consumes its event stream, correlates lifecycle
events with OS process state, delivers signals, and verifies that exit
codes and signal numbers are reported correctly.

` + suitesHelp

const runLongDescription = `Run verification suites against the subject (default: all built-ins).

` + suitesHelp

const listLongDescription = `List suites and the number of cases in each.

` + suitesHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "htprobe",
		Short: "Headless terminal subject verification harness",
		Long:  rootLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))

			// An already-wired workflow is kept as is.
			if workflow != nil {
				return
			}

			interactive := controller.IsTTY(os.Stdout) && !viper.GetBool(plainConfigKey)
			ui = controller.NewUI(cmd.Root(), interactive)
			workflow = domain.NewWorkflow(subjectAdapter, signalAdapter, scriptFS, reportStore, ui)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for verification reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude cases matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVar(&plainFlag, plainFlagName, viper.GetBool(plainConfigKey), "force plain line output instead of the live view")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(plainFlagName), plainConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
