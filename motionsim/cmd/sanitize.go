package cmd

import (
	"fmt"

	"github.com/sarchlab/motionsim/naming"
	"github.com/spf13/cobra"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize <name>...",
	Short: "Print names rewritten as valid node names.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			fmt.Fprintln(cmd.OutOrStdout(), naming.SanitizedNodeName(name))
		}
	},
}

func init() {
	rootCmd.AddCommand(sanitizeCmd)
}
