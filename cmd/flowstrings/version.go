// Version command for the flowstrings CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberlink/flowstrings/pkg/flowstrings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the flowstrings version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "flowstrings", flowstrings.Version)
	},
}
