package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/englishbay/zoomreport/internal/logging"
)

var logLevel string

// rootCmd represents the base command for the zoomreport application
var rootCmd = &cobra.Command{
	Use:   "zoomreport",
	Short: "Generates attendance reports from Zoom meetings",
	Long: `zoomreport retrieves meetings and participants from the Zoom API,
collapses repeated join/leave sessions into one attendance record per
participant, saves the result as an Excel report and optionally emails it.

It can run as:
  - An interactive CLI tool (default)
  - A non-interactive scheduled job via the cron command`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(os.Stderr, logLevel)
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "zoomreport version %s\n" .Version}}`)

	// If no subcommand is provided, run the report command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "report")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newCronCmd())
	rootCmd.AddCommand(newEmailTestCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
