// Package cmd provides the command-line interface of motionsim.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables that provide flag defaults. They can also be set in
// a .env file in the working directory.
const (
	envRecord      = "MOTIONSIM_RECORD"
	envMonitorPort = "MOTIONSIM_MONITOR_PORT"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "motionsim",
	Short: "motionsim simulates rate-limited actuators.",
	Long: `motionsim simulates actuators that move toward commanded targets ` +
		`under velocity and acceleration limits. It can run scenario files, ` +
		`evaluate single controller steps and sanitize node names.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Registered exit handlers run before the process exits.
func Execute() {
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
