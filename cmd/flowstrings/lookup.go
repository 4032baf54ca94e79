// Lookup command: resolve one dotted path to its display string.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <strings.json> <path>",
	Short: "Resolve a dotted path to its display string",
	Long: `Lookup prints the literal string at a dotted path such as
config.step.user.data.host. Reference tokens are resolved through the
common registry.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(args[0])
		if err != nil {
			return err
		}

		value, err := c.Lookup(args[1])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"path":  args[1],
				"value": value,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}
